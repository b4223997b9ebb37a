// Package markdown flattens Markdown documents into the plain-text token
// stream the search index tokenizes. Markup and raw HTML never reach the
// output; formula bodies are preserved verbatim because their symbols are
// useful search terms.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Flattener renders Markdown to plain text. It is a pure function of its
// input and safe for concurrent use.
type Flattener struct {
	md goldmark.Markdown
}

// NewFlattener creates a Flattener with the formula extensions installed.
func NewFlattener() *Flattener {
	return &Flattener{
		md: goldmark.New(goldmark.WithExtensions(&formulaExtension{})),
	}
}

// Flatten returns the visible tokens of the document in order, joined by
// single spaces. Block formula bodies are spliced in between the
// surrounding flattened chunks; text after a closing delimiter re-enters
// block processing.
func (f *Flattener) Flatten(source string) (string, error) {
	rest := normalizeLineEndings(source)
	var parts []string

	for rest != "" {
		before, body, after, ok := nextBlockFormula(rest)
		if !ok {
			chunk, err := f.flattenBlocks(rest)
			if err != nil {
				return "", err
			}
			parts = appendToken(parts, chunk)
			break
		}

		chunk, err := f.flattenBlocks(before)
		if err != nil {
			return "", err
		}
		parts = appendToken(parts, chunk)
		parts = appendToken(parts, body)
		rest = after
	}

	return strings.Join(parts, " "), nil
}

func appendToken(parts []string, s string) []string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return parts
	}
	return append(parts, s)
}

// nextBlockFormula finds the first block formula in s. The opening $$ must
// sit at the start of the input or directly after a blank line; the body
// may contain escaped dollars but the first unescaped dollar must start the
// closing $$.
func nextBlockFormula(s string) (before, body, after string, ok bool) {
	for i := 0; i+1 < len(s); i++ {
		if s[i] != '$' || s[i+1] != '$' {
			continue
		}
		if !atBlockStart(s, i) {
			continue
		}
		bodyEnd, end, found := scanFormulaBody(s, i+2)
		if !found {
			continue
		}
		return s[:i], s[i+2 : bodyEnd], s[end:], true
	}
	return "", "", "", false
}

func atBlockStart(s string, i int) bool {
	if i == 0 {
		return true
	}
	return i >= 2 && s[i-1] == '\n' && s[i-2] == '\n'
}

// scanFormulaBody scans a formula body starting right after the opening $$.
// It returns the body end offset and the offset past the closing $$.
func scanFormulaBody(s string, start int) (bodyEnd, end int, ok bool) {
	j := start
	for j < len(s) {
		switch s[j] {
		case '\\':
			if j+1 < len(s) && s[j+1] == '$' {
				j += 2
				continue
			}
			j++
		case '$':
			if j == start {
				return 0, 0, false
			}
			if j+1 < len(s) && s[j+1] == '$' {
				return j, j + 2, true
			}
			return 0, 0, false
		default:
			j++
		}
	}
	return 0, 0, false
}

// flattenBlocks parses one formula-free chunk and collects its visible
// text.
func (f *Flattener) flattenBlocks(chunk string) (string, error) {
	if strings.TrimSpace(chunk) == "" {
		return "", nil
	}

	source := []byte(normalizeLists(chunk))
	doc := f.md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	err := gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gast.Text:
			// Escapes and entities live verbatim in text segments; goldmark
			// resolves them only in its HTML writer.
			writeToken(&b, resolveText(node.Segment.Value(source)))
		case *InlineFormula:
			writeToken(&b, string(node.Value()))
		case *gast.CodeBlock:
			writeCodeLines(&b, node, source)
			return gast.WalkSkipChildren, nil
		case *gast.FencedCodeBlock:
			writeCodeLines(&b, node, source)
			return gast.WalkSkipChildren, nil
		case *gast.AutoLink:
			writeToken(&b, string(node.URL(source)))
		case *gast.RawHTML, *gast.HTMLBlock:
			// Tags and block HTML are dropped. Text between inline tags
			// lives in sibling Text nodes and stays in the stream.
			return gast.WalkSkipChildren, nil
		case *gast.String:
			// Character entities resolve to String nodes; they collapse
			// to nothing.
			return gast.WalkSkipChildren, nil
		}
		return gast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// resolveText rewrites backslash escapes to the escaped character and drops
// character entity references outright.
func resolveText(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			if i+1 < len(raw) && isPunctuation(raw[i+1]) {
				b.WriteByte(raw[i+1])
				i++
				continue
			}
			b.WriteByte('\\')
		case '&':
			if end, ok := entityEnd(raw, i); ok {
				b.WriteByte(' ')
				i = end
				continue
			}
			b.WriteByte('&')
		default:
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

func isPunctuation(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}

// entityEnd reports the index of the closing semicolon when raw[start:]
// opens a character entity reference.
func entityEnd(raw []byte, start int) (int, bool) {
	i := start + 1
	if i < len(raw) && raw[i] == '#' {
		i++
	}
	runStart := i
	for i < len(raw) && i-start < 32 {
		c := raw[i]
		if c == ';' {
			if i == runStart {
				return 0, false
			}
			return i, true
		}
		if !isAlphanumeric(c) {
			return 0, false
		}
		i++
	}
	return 0, false
}

func isAlphanumeric(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func writeToken(b *strings.Builder, s string) {
	for _, field := range strings.Fields(s) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(field)
	}
}

func writeCodeLines(b *strings.Builder, node gast.Node, source []byte) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		writeToken(b, string(segment.Value(source)))
	}
}
