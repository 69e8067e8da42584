// Package markdown renders extracted API documentation to HTML.
//
// Headers may carry attribute annotations ("### Name {#id}",
// "#### returns {.returns}") which become id and class attributes of the
// generated header tags. The same source can also be rendered as a
// table of contents linking to every header.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer converts Markdown to HTML. A Renderer is safe for concurrent
// use.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with header attributes, automatic header ids,
// tables, strikethrough and hard line wraps enabled. Raw HTML in the
// source is passed through.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough),
			goldmark.WithParserOptions(
				parser.WithAttribute(),
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
				html.WithUnsafe(),
			),
		),
	}
}

// Body renders src as an HTML fragment.
func (r *Renderer) Body(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(headerAttributes(src), &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Heading is a header found while building a table of contents.
type Heading struct {
	Level int
	ID    string
	Title string
}

// Headings returns the headers of src in document order.
func (r *Renderer) Headings(src []byte) []Heading {
	src = headerAttributes(src)
	doc := r.md.Parser().Parse(text.NewReader(src))
	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		var id string
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		out = append(out, Heading{
			Level: h.Level,
			ID:    id,
			Title: string(headingText(h, src)),
		})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// TOC renders the headers of src as nested lists of links, one list level
// per header level.
func (r *Renderer) TOC(src []byte) []byte {
	var buf bytes.Buffer
	level := 0
	for _, h := range r.Headings(src) {
		switch {
		case h.Level > level:
			for ; level < h.Level; level++ {
				buf.WriteString("<ul>\n<li>\n")
			}
		case h.Level < level:
			buf.WriteString("</li>\n")
			for ; level > h.Level; level-- {
				buf.WriteString("</ul>\n</li>\n")
			}
			buf.WriteString("<li>\n")
		default:
			buf.WriteString("</li>\n<li>\n")
		}
		buf.WriteString(`<a href="#`)
		buf.Write(util.EscapeHTML([]byte(h.ID)))
		buf.WriteString(`">`)
		buf.Write(util.EscapeHTML([]byte(h.Title)))
		buf.WriteString("</a>\n")
	}
	for ; level > 0; level-- {
		buf.WriteString("</li>\n</ul>\n")
	}
	return buf.Bytes()
}

func headingText(h *ast.Heading, src []byte) []byte {
	var buf bytes.Buffer
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			buf.Write(n.Segment.Value(src))
		case *ast.String:
			buf.Write(n.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.Bytes()
}
