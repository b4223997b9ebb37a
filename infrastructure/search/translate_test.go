package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslateQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single term",
			input: "hello",
			want:  `"hello"`,
		},
		{
			name:  "terms are anded",
			input: "hello world",
			want:  `"hello" AND "world"`,
		},
		{
			name:  "quoted phrase",
			input: `"exact phrase" extra`,
			want:  `"exact phrase" AND "extra"`,
		},
		{
			name:  "negated term",
			input: "apple -banana",
			want:  `"apple" NOT "banana"`,
		},
		{
			name:  "negated phrase",
			input: `apple -"rotten core"`,
			want:  `"apple" NOT "rotten core"`,
		},
		{
			name:  "punctuation splits into a phrase",
			input: `e^{i\pi}`,
			want:  `"e i pi"`,
		},
		{
			name:  "fts operators are neutralized",
			input: "cats AND dogs",
			want:  `"cats" AND "AND" AND "dogs"`,
		},
		{
			name:  "only negation matches nothing",
			input: "-banana",
			want:  "",
		},
		{
			name:  "only punctuation matches nothing",
			input: "!!! ???",
			want:  "",
		},
		{
			name:  "unterminated quote",
			input: `"dangling phrase`,
			want:  `"dangling phrase"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, translateQuery(tt.input))
		})
	}
}
