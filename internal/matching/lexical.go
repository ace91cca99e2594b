// internal/matching/lexical.go
package matching

import (
	"strings"
	"unicode"
)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "in": {},
	"is": {}, "it": {}, "of": {}, "on": {}, "or": {}, "our": {}, "that": {},
	"the": {}, "to": {}, "we": {}, "with": {}, "you": {}, "your": {},
}

// LexicalScorer measures term-frequency-weighted vocabulary overlap between
// candidate and job text. Bounded [0,1] by construction: it is the ratio of
// shared weighted terms to the job's total term weight.
type LexicalScorer struct{}

func NewLexicalScorer() *LexicalScorer {
	return &LexicalScorer{}
}

// Score tokenizes both texts and returns the overlap ratio. Either side
// empty after stopword filtering yields 0.
func (s *LexicalScorer) Score(candidateText, jobText string) Score {
	candidateTF := termFrequencies(candidateText)
	jobTF := termFrequencies(jobText)

	if len(candidateTF) == 0 || len(jobTF) == 0 {
		return 0
	}

	var overlap, total float64
	for term, jobCount := range jobTF {
		total += float64(jobCount)
		if candidateCount, ok := candidateTF[term]; ok {
			if candidateCount < jobCount {
				overlap += float64(candidateCount)
			} else {
				overlap += float64(jobCount)
			}
		}
	}

	return NewScore(overlap / total)
}

func termFrequencies(text string) map[string]int {
	tf := make(map[string]int)
	for _, token := range tokenize(text) {
		tf[token]++
	}
	return tf
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) < 2 {
			continue
		}
		if _, stop := stopwords[field]; stop {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}
