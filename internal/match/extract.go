package match

import (
	"strings"
	"unicode"
)

// Terms splits free text into deduplicated lowercase tokens, preserving
// first-appearance order. Tokens of length <= 1 are dropped. Splitting
// happens on whitespace and the punctuation class , . ; : / ( ) + -
//
// Exact lexical tokens only; no stemming or synonym expansion. Richer
// matchers plug in through the Scorer interface instead of here.
func Terms(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), isSeparator)
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) <= 1 {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// TermSet indexes a term list for membership checks.
func TermSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}

func isSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case ',', '.', ';', ':', '/', '(', ')', '+', '-':
		return true
	}
	return false
}
