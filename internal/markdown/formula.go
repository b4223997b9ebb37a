package markdown

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindInlineFormula is the node kind of inline formulas.
var KindInlineFormula = gast.NewNodeKind("InlineFormula")

// InlineFormula is an atomic inline span delimited by single dollars. The
// body is kept verbatim and never inline-processed further.
type InlineFormula struct {
	gast.BaseInline
	value []byte
}

// NewInlineFormula creates an InlineFormula with the given raw body.
func NewInlineFormula(value []byte) *InlineFormula {
	copied := make([]byte, len(value))
	copy(copied, value)
	return &InlineFormula{value: copied}
}

// Kind returns KindInlineFormula.
func (n *InlineFormula) Kind() gast.NodeKind { return KindInlineFormula }

// Value returns the raw formula body.
func (n *InlineFormula) Value() []byte { return n.value }

// Dump dumps the node to stdout for debugging.
func (n *InlineFormula) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{"Value": string(n.value)}, nil)
}

// inlineFormulaParser parses $...$ runs. The delimiters must not be
// backslash-escaped, the body must be non-empty, escaped dollars are body
// content, and newlines end the attempt.
type inlineFormulaParser struct{}

func newInlineFormulaParser() parser.InlineParser {
	return &inlineFormulaParser{}
}

// Trigger returns the characters that start an inline formula.
func (p *inlineFormulaParser) Trigger() []byte {
	return []byte{'$'}
}

// Parse parses an inline formula at the reader position.
func (p *inlineFormulaParser) Parse(_ gast.Node, block text.Reader, _ parser.Context) gast.Node {
	if block.PrecendingCharacter() == '\\' {
		return nil
	}

	line, _ := block.PeekLine()
	for i := 1; i < len(line); i++ {
		switch line[i] {
		case '\n':
			return nil
		case '$':
			if line[i-1] == '\\' {
				continue
			}
			if i == 1 {
				return nil
			}
			node := NewInlineFormula(line[1:i])
			block.Advance(i + 1)
			return node
		}
	}
	return nil
}

// formulaExtension registers the inline formula parser. Block formulas are
// split off before parsing (see Flatten) because their grammar crosses
// goldmark's line-oriented block protocol.
type formulaExtension struct{}

// Extend registers the formula parsers on a goldmark instance.
func (e *formulaExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(newInlineFormulaParser(), 500),
	))
}
