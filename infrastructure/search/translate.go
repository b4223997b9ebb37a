package search

import (
	"strings"
	"unicode"
)

type queryTerm struct {
	text    string
	phrase  bool
	negated bool
}

// translateQuery converts websearch-style input ("quoted phrases" and
// -negated terms, everything else ANDed) into an FTS5 MATCH expression.
// Returns "" when no positive term survives sanitisation; such a query
// matches nothing.
func translateQuery(input string) string {
	var positive, negative []string
	for _, term := range scanTerms(input) {
		words := termWords(term.text)
		if len(words) == 0 {
			continue
		}
		// Everything is quoted so bare tokens cannot collide with FTS5
		// operators or column names.
		expr := `"` + strings.Join(words, " ") + `"`
		if term.negated {
			negative = append(negative, expr)
		} else {
			positive = append(positive, expr)
		}
	}
	if len(positive) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.Join(positive, " AND "))
	for _, expr := range negative {
		b.WriteString(" NOT ")
		b.WriteString(expr)
	}
	return b.String()
}

// scanTerms splits the input into terms, honouring double-quoted phrases
// and a leading minus for negation.
func scanTerms(input string) []queryTerm {
	var terms []queryTerm
	runes := []rune(input)
	i := 0
	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		if i >= len(runes) {
			break
		}

		var term queryTerm
		if runes[i] == '-' {
			term.negated = true
			i++
		}
		if i < len(runes) && runes[i] == '"' {
			term.phrase = true
			i++
			start := i
			for i < len(runes) && runes[i] != '"' {
				i++
			}
			term.text = string(runes[start:i])
			if i < len(runes) {
				i++ // closing quote
			}
		} else {
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) {
				i++
			}
			term.text = string(runes[start:i])
		}
		if term.text != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// termWords reduces a term to the letter/digit runs the unicode61 tokenizer
// would produce, so punctuation in the query cannot break MATCH syntax.
func termWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
