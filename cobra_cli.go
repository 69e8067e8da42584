package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentflare-ai/sdoc/internal/config"
	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

const rootLongDesc = `
sdoc extracts API documentation from /** ... */ comment blocks and renders it as an
HTML page with a navigation pane, or splits sources into documentation and code sections
in the style of docco.

  • -api renders the comment blocks as Markdown; "### name ###" and "#### name ####"
    headers are annotated with anchors and classes
  • -docco splits "*" and "%*" comment lines from the code that follows them
  • Inputs may be files, directories (filtered by .sdoc.yaml globs) or Go packages
  • Shell completion and Markdown CLI reference generation are built in

Single-dash long flags (-api, -docco, -isolate ...) are accepted as well.
`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "sdoc -api|-docco [flags] <file>...",
		Short:         "Render API comment blocks as HTML documentation",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.BoolVar(&app.opts.api, "api", false, "extract /** */ blocks and render an API page")
	flags.BoolVar(&app.opts.docco, "docco", false, "split inputs into documentation and code sections")
	flags.BoolVar(&app.opts.html, "html", false, "with -docco, render the sections as an HTML page")
	flags.StringVarP(&app.opts.outputPath, "output", "o", "", "write output to file instead of stdout")
	flags.StringVar(&app.opts.configPath, "config", "", "config file (default .sdoc.yaml in the working directory)")
	flags.StringVar(&app.opts.stylesheet, "stylesheet", "", "stylesheet href of the generated page (default apidoc.css)")
	flags.BoolVar(&app.opts.isolate, "isolate", false, "process each input file separately instead of concatenating them")
	flags.BoolVar(&app.opts.packages, "packages", false, "treat arguments as Go package patterns")
	flags.BoolVar(&app.opts.watch, "watch", false, "regenerate the output file whenever an input changes")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "log progress to stderr")
	app.changed = func(name string) bool { return flags.Changed(name) }

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.execute(ctx, args)
	}

	registerCompletions(cmd)
	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

// sourceExtensions lists the file extensions offered when completing input
// arguments, taken from the default source globs.
func sourceExtensions() []string {
	var exts []string
	for _, p := range config.Default().Sources.Include {
		if ext, ok := strings.CutPrefix(p, "**/*."); ok {
			exts = append(exts, ext)
		}
	}
	return exts
}

// registerCompletions teaches the shell completion which files each flag and
// argument expects.
func registerCompletions(cmd *cobra.Command) {
	cmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if packages, _ := cmd.Flags().GetBool("packages"); packages {
			return nil, cobra.ShellCompDirectiveFilterDirs
		}
		return sourceExtensions(), cobra.ShellCompDirectiveFilterFileExt
	}
	_ = cmd.MarkFlagFilename("stylesheet", "css")
	_ = cmd.MarkFlagFilename("config", "yaml", "yml")
	_ = cmd.MarkFlagFilename("output", "html", "htm", "txt")
}

var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const longDesc = `Generate shell completion scripts for sdoc.

Besides flag names the scripts complete input files by the source extensions sdoc
reads by default (.c, .h, .go, .sas, ...), directories after -packages, stylesheets
for -stylesheet and YAML files for -config.

  # bash
  sdoc completion bash > /usr/local/etc/bash_completion.d/sdoc

  # zsh
  sdoc completion zsh > "${fpath[1]}/_sdoc"

  # fish
  sdoc completion fish | source

  # PowerShell
  sdoc completion powershell | Out-String | Invoke-Expression
`
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		gen, ok := completionGenerators[args[0]]
		if !ok {
			return fmt.Errorf("unsupported shell %q", args[0])
		}
		return gen(root, cmd.OutOrStdout())
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate reference docs for the sdoc CLI",
		Long: strings.TrimSpace(`
Write one page per sdoc command, documenting -api, -docco and the other flags,
into directory (default docs/cli). Pages are Markdown, or man pages with
--format man.

Examples:

  sdoc gen-docs ./docs/cli
  sdoc gen-docs --format man ./man/man1
`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&format, "format", "markdown", "page format: markdown or man")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := filepath.Join("docs", "cli")
		if len(args) == 1 && args[0] != "" {
			target = args[0]
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		switch format {
		case "markdown":
			return cobradoc.GenMarkdownTree(root, target)
		case "man":
			header := &cobradoc.GenManHeader{
				Title:   "SDOC",
				Section: "1",
				Source:  "sdoc " + Version,
				Manual:  "sdoc manual",
			}
			return cobradoc.GenManTree(root, header, target)
		default:
			return fmt.Errorf("unsupported format %q (want markdown or man)", format)
		}
	}
	return cmd
}
