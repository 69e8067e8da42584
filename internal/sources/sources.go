// Package sources turns command line arguments into the input buffer the
// extractor and splitter work on.
package sources

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/tools/go/packages"
)

// File is one input file and its content.
type File struct {
	Path string
	Data []byte
}

// Read loads every path in order. The first file that cannot be read
// aborts the whole read.
func Read(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to open input file %q: %w", path, err)
		}
		files = append(files, File{Path: path, Data: data})
	}
	return files, nil
}

// Concat joins the file contents in order without a separator.
func Concat(files []File) []byte {
	n := 0
	for _, f := range files {
		n += len(f.Data)
	}
	buf := make([]byte, 0, n)
	for _, f := range files {
		buf = append(buf, f.Data...)
	}
	return buf
}

type compiledPattern struct {
	pattern string
	glob    glob.Glob
	// root matches files directly in the walked directory for "**/" patterns.
	root glob.Glob
}

// Collector expands directory arguments into the files they contain.
type Collector struct {
	include []compiledPattern
	ignore  []compiledPattern
}

// NewCollector compiles the include and ignore glob patterns. Patterns are
// matched against slash separated paths relative to the walked directory.
func NewCollector(include, ignore []string) (*Collector, error) {
	c := &Collector{}
	var err error
	if c.include, err = compile(include); err != nil {
		return nil, err
	}
	if c.ignore, err = compile(ignore); err != nil {
		return nil, err
	}
	return c, nil
}

func compile(patterns []string) ([]compiledPattern, error) {
	out := make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		cp := compiledPattern{pattern: p, glob: g}
		if rest, ok := strings.CutPrefix(p, "**/"); ok {
			if cp.root, err = glob.Compile(rest, '/'); err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
			}
		}
		out = append(out, cp)
	}
	return out, nil
}

func matchAny(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
		if cp.root != nil && !strings.Contains(path, "/") && cp.root.Match(path) {
			return true
		}
	}
	return false
}

// Expand returns the input paths for args. Regular files are kept as
// given, directories are replaced by their matching files in lexical
// order.
func (c *Collector) Expand(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// Missing files are reported by Read.
			paths = append(paths, arg)
			continue
		}
		found, err := c.walk(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func (c *Collector) walk(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if matchAny(rel+"/", c.ignore) {
				return filepath.SkipDir
			}
			return nil
		}
		if matchAny(rel, c.ignore) || !matchAny(rel, c.include) {
			return nil
		}
		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return found, nil
}

// PackageFiles resolves Go package patterns to their Go source files.
// Packages keep the order of patterns, files are sorted per package and
// each file appears once.
func PackageFiles(ctx context.Context, dir string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		cfg := &packages.Config{
			Context: ctx,
			Dir:     dir,
			Mode:    packages.NeedName | packages.NeedFiles,
		}
		pkgs, err := packages.Load(cfg, pattern)
		if err != nil {
			return nil, err
		}
		if len(pkgs) == 0 {
			return nil, fmt.Errorf("no Go packages matched %q", pattern)
		}
		sort.Slice(pkgs, func(i, j int) bool {
			return pkgs[i].PkgPath < pkgs[j].PkgPath
		})
		for _, pkg := range pkgs {
			if len(pkg.Errors) > 0 {
				return nil, fmt.Errorf("%s", pkg.Errors[0])
			}
			goFiles := append([]string{}, pkg.GoFiles...)
			sort.Strings(goFiles)
			for _, f := range goFiles {
				if !seen[f] {
					seen[f] = true
					files = append(files, f)
				}
			}
		}
	}
	return files, nil
}

// Join returns the concatenated input, or the per-file buffers when
// isolate is set.
func Join(files []File, isolate bool) [][]byte {
	if !isolate {
		return [][]byte{Concat(files)}
	}
	out := make([][]byte, len(files))
	for i, f := range files {
		out[i] = f.Data
	}
	return out
}
