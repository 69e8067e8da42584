// # sdoc
//
// `sdoc` turns specially marked comments in source files into an HTML API
// reference. Every `/** ... */` block is copied out as Markdown; everything
// outside those blocks is ignored. Headers inside a block get annotated on
// the way so the rendered page has stable anchors and CSS hooks:
//
//   - `### Name ###` becomes `### Name {#Name}`; the anchor is the first
//     identifier after a leading `&` or `%` if one is present, so
//     `### constructor &NewGreeter ###` links as `#NewGreeter`.
//   - `#### returns ####` becomes `#### returns {.returns}`.
//
// Latin-1 umlauts and `ß` are re-encoded to UTF-8; every other byte is
// copied as is.
//
// Key capabilities:
//
//   - `-api` renders the extracted Markdown into a page with a `Doc` pane
//     and a `Nav` pane holding the table of contents.
//   - `-docco` splits comment lines (`*` or SAS `%*`) from the code that
//     follows them and prints the documentation sections, or renders them
//     side by side with `-html`.
//   - inputs are files, directories filtered by the `sources` globs in
//     `.sdoc.yaml`, or Go package patterns with `-packages`.
//   - `-isolate` keeps comment blocks from spanning two input files.
//   - `-watch` regenerates the `-o` file whenever an input changes.
//   - a Cobra-powered CLI with `--help`, `--version`, shell completion and a
//     `gen-docs` helper.
//
// ## Usage
//
//	sdoc -api|-docco [flags] <file>...
//
// Examples:
//
//   - Render the API page of a C library:
//
//     sdoc -api -o docs/api.html src/slice.c src/buf.c
//
//   - Render every source under a directory:
//
//     sdoc -api -o docs/api.html ./src
//
//   - Document a Go package:
//
//     sdoc -api -packages -o docs/api.html ./internal/example
//
//   - Print the sections of a SAS program:
//
//     sdoc -docco macros.sas
//
// ## Configuration
//
// `.sdoc.yaml` in the working directory (or `--config FILE`) sets defaults
// that flags override:
//
//	stylesheet: apidoc.css
//	output: docs/api.html
//	isolate_files: false
//	sources:
//	  include: ["**/*.c", "**/*.h"]
//	  ignore: ["build/**"]
//	watch:
//	  debounce: 300ms
//
// Every key can also be set from the environment, for example
// `SDOC_STYLESHEET` or `SDOC_WATCH_DEBOUNCE`.
package main
