package text

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gmtext "github.com/yuin/goldmark/text"
)

var frontMatter = regexp.MustCompile(`(?s)\A---\r?\n.*?\r?\n---[ \t]*(\r?\n|\z)`)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// StripMarkdown renders Markdown source as flat readable text: link text is
// kept, images, raw HTML and YAML front matter are dropped, and every block
// ends with a space so words never run together.
func StripMarkdown(src []byte) string {
	src = frontMatter.ReplaceAll(src, nil)
	doc := markdown.Parser().Parse(gmtext.NewReader(src))

	var b bytes.Buffer
	walkErr := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Image, *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			writeLines(&b, node, src)
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			b.Write(node.Label(src))
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.ThematicBreak:
			b.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})
	if walkErr != nil {
		// The walker never returns errors; fall back to the raw source.
		return collapse(string(src))
	}
	return collapse(html.UnescapeString(b.String()))
}

func writeLines(b *bytes.Buffer, n ast.Node, src []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
		b.WriteByte(' ')
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
