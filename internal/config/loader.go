package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the configuration file looked up in the root directory.
const FileName = ".sdoc"

// Loader provides configuration loading.
type Loader interface {
	// Load reads defaults, then the config file, then SDOC_* environment
	// variables (env wins).
	Load() (*Config, error)
}

type loader struct {
	rootDir string
	file    string
}

// NewLoader returns a Loader looking for .sdoc.yaml in rootDir. A non-empty
// file overrides the lookup and must exist.
func NewLoader(rootDir, file string) Loader {
	return &loader{rootDir: rootDir, file: file}
}

func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.file != "" {
		v.SetConfigFile(l.file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	v.SetEnvPrefix("SDOC")
	v.AutomaticEnv()
	// SDOC_WATCH_DEBOUNCE, SDOC_SOURCES_INCLUDE, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("stylesheet")
	v.BindEnv("output")
	v.BindEnv("isolate_files")
	v.BindEnv("sources.include")
	v.BindEnv("sources.ignore")
	v.BindEnv("watch.debounce")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("stylesheet", defaults.Stylesheet)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("isolate_files", defaults.IsolateFiles)
	v.SetDefault("sources.include", defaults.Sources.Include)
	v.SetDefault("sources.ignore", defaults.Sources.Ignore)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
}
