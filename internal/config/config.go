package config

import "time"

// Config is the complete sdoc configuration. It can be loaded from
// .sdoc.yaml with SDOC_* environment variable overrides.
type Config struct {
	Stylesheet   string        `yaml:"stylesheet" mapstructure:"stylesheet"`       // href of the page stylesheet
	Output       string        `yaml:"output" mapstructure:"output"`               // output file, empty or "-" for stdout
	IsolateFiles bool          `yaml:"isolate_files" mapstructure:"isolate_files"` // process each input on its own
	Sources      SourcesConfig `yaml:"sources" mapstructure:"sources"`
	Watch        WatchConfig   `yaml:"watch" mapstructure:"watch"`
}

// SourcesConfig selects files when an input argument is a directory.
type SourcesConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns, relative to the directory
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Stylesheet: "apidoc.css",
		Sources: SourcesConfig{
			Include: []string{
				"**/*.c",
				"**/*.h",
				"**/*.cc",
				"**/*.cpp",
				"**/*.hpp",
				"**/*.go",
				"**/*.java",
				"**/*.js",
				"**/*.ts",
				"**/*.sas",
			},
			Ignore: []string{
				".git/**",
				"vendor/**",
				"node_modules/**",
				"build/**",
			},
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
	}
}
