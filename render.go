package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/agentflare-ai/sdoc/internal/docco"
	"github.com/agentflare-ai/sdoc/internal/markdown"
	"github.com/yuin/goldmark/util"
)

// ErrRender is returned when a page cannot be rendered or written.
var ErrRender = errors.New("render failed")

type pageWriter struct {
	md         *markdown.Renderer
	stylesheet string
}

func newPageWriter(stylesheet string) *pageWriter {
	return &pageWriter{md: markdown.New(), stylesheet: stylesheet}
}

func (p *pageWriter) writeHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "<!DOCTYPE html>\n")
	fmt.Fprintf(w, "<html><meta charset='utf-8'>\n")
	fmt.Fprintf(w, "<head>")
	if title != "" {
		fmt.Fprintf(w, "<title>%s</title>", util.EscapeHTML([]byte(title)))
	}
	fmt.Fprintf(w, "<link href=\"%s\" rel=\"stylesheet\" type=\"text/css\">", util.EscapeHTML([]byte(p.stylesheet)))
	fmt.Fprintf(w, "</head><body>")
}

// writeAPIPage renders the annotated Markdown into the Doc pane and its
// table of contents into the Nav pane.
func (p *pageWriter) writeAPIPage(w io.Writer, md []byte) error {
	body, err := p.md.Body(md)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	p.writeHeader(w, "")
	fmt.Fprintf(w, "<div id=\"Doc\">\n")
	w.Write(body)
	fmt.Fprintf(w, "</div>\n")
	fmt.Fprintf(w, "<div id=\"Nav\">\n")
	w.Write(p.md.TOC(md))
	fmt.Fprintf(w, "</div>\n")
	fmt.Fprintf(w, "</body></html>\n")
	return nil
}

// writeDoccoPage renders sections side by side, documentation on the left
// and code on the right.
func (p *pageWriter) writeDoccoPage(w io.Writer, title string, sections []*docco.Section) error {
	p.writeHeader(w, title)
	fmt.Fprintf(w, "<div id=\"container\">\n")
	fmt.Fprintf(w, "<table cellpadding=\"0\" cellspacing=\"0\">\n<tbody>\n")
	for i, s := range sections {
		doc, err := p.md.Body(s.Doc.Bytes())
		if err != nil {
			return fmt.Errorf("%w: section %d: %v", ErrRender, i, err)
		}
		fmt.Fprintf(w, "<tr id=\"section-%d\">\n", i)
		fmt.Fprintf(w, "<td class=\"docs\">\n")
		w.Write(doc)
		fmt.Fprintf(w, "</td>\n")
		fmt.Fprintf(w, "<td class=\"code\"><pre>%s</pre></td>\n", util.EscapeHTML(s.Code.Bytes()))
		fmt.Fprintf(w, "</tr>\n")
	}
	fmt.Fprintf(w, "</tbody>\n</table>\n</div>\n")
	fmt.Fprintf(w, "</body></html>\n")
	return nil
}

// writeDoccoReport prints the section count and every documentation
// section as plain text.
func writeDoccoReport(w io.Writer, sections []*docco.Section) error {
	fmt.Fprintf(w, "found %d/%d sections\n", len(sections), len(sections))
	for i, s := range sections {
		fmt.Fprintf(w, "section %d:\n", i)
		w.Write(s.Doc.Bytes())
	}
	return nil
}
