package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlattenPlainText(t *testing.T) {
	f := NewFlattener()

	got, err := f.Flatten("Hello world")
	require.NoError(t, err)
	require.Equal(t, "Hello world", got)
}

func TestFlattenStripsMarkup(t *testing.T) {
	f := NewFlattener()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "heading",
			source: "# Title\n\nBody text",
			want:   "Title Body text",
		},
		{
			name:   "emphasis",
			source: "some *emphasized* and **bold** words",
			want:   "some emphasized and bold words",
		},
		{
			name:   "link keeps text drops url",
			source: "see [the docs](https://example.com/docs) here",
			want:   "see the docs here",
		},
		{
			name:   "image keeps alt text",
			source: "before ![alt text](pic.png) after",
			want:   "before alt text after",
		},
		{
			name:   "blockquote",
			source: "> quoted line\n\nplain",
			want:   "quoted line plain",
		},
		{
			name:   "thematic break",
			source: "above\n\n---\n\nbelow",
			want:   "above below",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Flatten(tt.source)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFlattenAutoLinkKeepsURL(t *testing.T) {
	f := NewFlattener()

	got, err := f.Flatten("visit <https://example.com/page> now")
	require.NoError(t, err)
	require.Equal(t, "visit https://example.com/page now", got)
}

func TestFlattenCodeBlocks(t *testing.T) {
	f := NewFlattener()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "fenced code keeps content",
			source: "before\n\n```\nfunc main() {}\n```\n\nafter",
			want:   "before func main() {} after",
		},
		{
			name:   "fence info string dropped",
			source: "```go\nx := 1\n```",
			want:   "x := 1",
		},
		{
			name:   "indented code keeps content",
			source: "before\n\n    indented code line\n\nafter",
			want:   "before indented code line after",
		},
		{
			name:   "inline code",
			source: "use the `flatten` helper",
			want:   "use the flatten helper",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Flatten(tt.source)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFlattenDropsHTML(t *testing.T) {
	f := NewFlattener()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "inline tags keep inner text",
			source: "a <b>bold</b> word",
			want:   "a bold word",
		},
		{
			name:   "html block dropped",
			source: "<div>\nhidden\n</div>\n\nvisible",
			want:   "visible",
		},
		{
			name:   "character entity collapses",
			source: "five &gt; three",
			want:   "five three",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Flatten(tt.source)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFlattenInlineFormula(t *testing.T) {
	f := NewFlattener()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "body kept verbatim",
			source: "Euler: $e^{i\\pi}+1=0$ holds",
			want:   "Euler: e^{i\\pi}+1=0 holds",
		},
		{
			name:   "markup inside formula is not processed",
			source: "$a_*b_*c$",
			want:   "a_*b_*c",
		},
		{
			name:   "escaped opening dollar is literal",
			source: "price \\$5 only",
			want:   "price $5 only",
		},
		{
			name:   "unclosed dollar stays literal",
			source: "costs $5 today",
			want:   "costs $5 today",
		},
		{
			name:   "empty body is not a formula",
			source: "a $$ b",
			want:   "a $$ b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Flatten(tt.source)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFlattenBlockFormula(t *testing.T) {
	f := NewFlattener()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "at document start",
			source: "$$x^2 + y^2 = z^2$$",
			want:   "x^2 + y^2 = z^2",
		},
		{
			name:   "after blank line",
			source: "intro\n\n$$\\sum_{i=1}^n i$$\n\noutro",
			want:   "intro \\sum_{i=1}^n i outro",
		},
		{
			name:   "multiline body",
			source: "$$a = 1\nb = 2$$",
			want:   "a = 1 b = 2",
		},
		{
			name:   "text after closing is processed as markdown",
			source: "$$E = mc^2$$\n\n# After\n\ntext",
			want:   "E = mc^2 After text",
		},
		{
			name:   "two blocks",
			source: "$$a$$\n\nmiddle\n\n$$b$$",
			want:   "a middle b",
		},
		{
			name:   "mid paragraph double dollar is not a block",
			source: "inline $$ run here",
			want:   "inline $$ run here",
		},
		{
			name:   "escaped dollar inside body",
			source: "$$cost \\$5 total$$",
			want:   "cost \\$5 total",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Flatten(tt.source)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFlattenListAfterSingleNewline(t *testing.T) {
	f := NewFlattener()

	// A list directly after a text line still becomes a list, so every
	// item surfaces as its own token run.
	got, err := f.Flatten("Shopping:\n- milk\n- bread")
	require.NoError(t, err)
	require.Equal(t, "Shopping: milk bread", got)
}

func TestFlattenWhitespaceCollapses(t *testing.T) {
	f := NewFlattener()

	got, err := f.Flatten("a\tb\n\nc   d")
	require.NoError(t, err)
	require.Equal(t, "a b c d", got)
}

func TestFlattenEmptyInput(t *testing.T) {
	f := NewFlattener()

	got, err := f.Flatten("")
	require.NoError(t, err)
	require.Equal(t, "", got)

	got, err = f.Flatten("   \n\n  ")
	require.NoError(t, err)
	require.Equal(t, "", got)
}
