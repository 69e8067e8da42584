package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentflare-ai/sdoc/internal/config"
	"github.com/agentflare-ai/sdoc/internal/docco"
	"github.com/agentflare-ai/sdoc/internal/extract"
	"github.com/agentflare-ai/sdoc/internal/sources"
	"github.com/agentflare-ai/sdoc/internal/watch"
)

var (
	// ErrUsage is returned when neither or both of -api and -docco are given.
	ErrUsage = errors.New("usage: sdoc -api|-docco <file>...")

	// ErrNoInput is returned when no input file is named.
	ErrNoInput = errors.New("missing input files")
)

type options struct {
	api        bool
	docco      bool
	html       bool
	outputPath string
	configPath string
	stylesheet string
	isolate    bool
	packages   bool
	watch      bool
	verbose    bool
}

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	opts   options
	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
	log     *log.Logger
}

func run(argv []string, stdout io.Writer) error {
	return runContext(context.Background(), argv, stdout, os.Stderr)
}

func runContext(ctx context.Context, argv []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	args := normalizeLegacyArgs(argv)
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func (app *cliApp) execute(ctx context.Context, positionals []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := app.opts
	if opts.api == opts.docco {
		return ErrUsage
	}
	if len(positionals) == 0 {
		return ErrNoInput
	}
	if opts.html && !opts.docco {
		return errors.New("-html can only be used with -docco")
	}

	logOut := io.Discard
	if opts.verbose || opts.watch {
		logOut = app.stderr
	}
	app.log = log.New(logOut, "sdoc: ", 0)

	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}
	if opts.watch && (cfg.Output == "" || cfg.Output == "-") {
		return errors.New("-watch requires -o <file>")
	}

	paths, err := app.resolveInputs(ctx, cfg, positionals)
	if err != nil {
		return err
	}
	app.log.Printf("%d input file(s)", len(paths))

	if err := app.generate(cfg, paths); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	w, err := watch.New(paths, cfg.Watch.Debounce, app.log)
	if err != nil {
		return err
	}
	defer w.Close()
	app.log.Printf("watching %d file(s), writing %s", len(paths), cfg.Output)
	return w.Run(ctx, func(changed []string) error {
		app.log.Printf("changed: %s", strings.Join(changed, ", "))
		return app.generate(cfg, paths)
	})
}

// loadConfig reads .sdoc.yaml (or -config) and applies command line
// overrides on top.
func (app *cliApp) loadConfig() (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.NewLoader(wd, app.opts.configPath).Load()
	if err != nil {
		return nil, err
	}
	if app.flagChanged("stylesheet") {
		cfg.Stylesheet = app.opts.stylesheet
	}
	if app.flagChanged("output") {
		cfg.Output = app.opts.outputPath
	}
	if app.flagChanged("isolate") {
		cfg.IsolateFiles = app.opts.isolate
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (app *cliApp) flagChanged(name string) bool {
	return app.changed != nil && app.changed(name)
}

func (app *cliApp) resolveInputs(ctx context.Context, cfg *config.Config, args []string) ([]string, error) {
	if app.opts.packages {
		paths, err := sources.PackageFiles(ctx, "", args)
		if err != nil {
			return nil, fmt.Errorf("load packages: %w", err)
		}
		if len(paths) == 0 {
			return nil, ErrNoInput
		}
		return paths, nil
	}
	collector, err := sources.NewCollector(cfg.Sources.Include, cfg.Sources.Ignore)
	if err != nil {
		return nil, err
	}
	paths, err := collector.Expand(args)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrNoInput
	}
	return paths, nil
}

// generate reads the inputs and writes the page for the selected mode.
func (app *cliApp) generate(cfg *config.Config, paths []string) error {
	files, err := sources.Read(paths)
	if err != nil {
		return err
	}
	inputs := sources.Join(files, cfg.IsolateFiles)

	var out bytes.Buffer
	if app.opts.api {
		err = app.generateAPI(&out, cfg, inputs)
	} else {
		err = app.generateDocco(&out, cfg, inputs, files)
	}
	if err != nil {
		return err
	}
	if err := writeOutput(cfg.Output, app.stdout, out.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

func (app *cliApp) generateAPI(w io.Writer, cfg *config.Config, inputs [][]byte) error {
	var md []byte
	for i, in := range inputs {
		res := extract.Extract(in)
		app.log.Printf("input %d: %d block(s), %d header(s)", i, res.Blocks, len(res.Headers))
		if res.Unterminated {
			app.log.Printf("input %d: unterminated comment block", i)
		}
		md = append(md, res.Markdown...)
	}
	return newPageWriter(cfg.Stylesheet).writeAPIPage(w, md)
}

func (app *cliApp) generateDocco(w io.Writer, cfg *config.Config, inputs [][]byte, files []sources.File) error {
	var sections []*docco.Section
	for _, in := range inputs {
		sections = append(sections, docco.Split(in)...)
	}
	app.log.Printf("%d section(s)", len(sections))
	if !app.opts.html {
		return writeDoccoReport(w, sections)
	}
	title := "sdoc"
	if len(files) > 0 {
		title = filepath.Base(files[0].Path)
	}
	return newPageWriter(cfg.Stylesheet).writeDoccoPage(w, title, sections)
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var legacyLongFlagSet = map[string]struct{}{
	"api":        {},
	"docco":      {},
	"html":       {},
	"output":     {},
	"config":     {},
	"stylesheet": {},
	"isolate":    {},
	"packages":   {},
	"watch":      {},
	"verbose":    {},
}

func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, arg)
			converted = append(converted, args[i+1:]...)
			if i != len(args)-1 {
				modified = true
			}
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || arg == "-" {
			converted = append(converted, arg)
			continue
		}
		if len(arg) == 2 {
			converted = append(converted, arg)
			continue
		}
		if idx := strings.Index(arg, "="); idx > 0 {
			name := arg[1:idx]
			if _, ok := legacyLongFlagSet[name]; ok {
				converted = append(converted, "--"+name+arg[idx:])
				modified = true
				continue
			}
		}
		name := arg[1:]
		if _, ok := legacyLongFlagSet[name]; ok {
			converted = append(converted, "--"+name)
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified && len(converted) == len(args) {
		return args
	}
	return converted
}
