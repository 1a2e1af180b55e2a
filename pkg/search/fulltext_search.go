package search

import (
	"fmt"
	"strings"
)

// Search returns the nodes containing every word of query, best first.
func (di *DescriptionIndex) Search(query string) []SearchResult {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return []SearchResult{}
	}
	return di.scoreResults(di.searchAND(tokens), tokens)
}

// SearchPhrase returns the nodes containing the words of phrase in order
// and next to each other.
func (di *DescriptionIndex) SearchPhrase(phrase string) []SearchResult {
	terms := tokenize(phrase)
	if len(terms) == 0 {
		return []SearchResult{}
	}

	matching := make(map[string]bool)
	for nodeID := range di.index[terms[0]] {
		if di.containsPhrase(nodeID, terms) {
			matching[nodeID] = true
		}
	}
	return di.scoreResults(matching, terms)
}

func (di *DescriptionIndex) containsPhrase(nodeID string, terms []string) bool {
	for _, pos := range di.index[terms[0]][nodeID] {
		match := true
		for i := 1; i < len(terms); i++ {
			if !containsInt(di.index[terms[i]][nodeID], pos+i) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// SearchBoolean evaluates one of "a AND b", "a OR b" or "a NOT b". The
// operator must be upper case; a query without one is a plain Search.
func (di *DescriptionIndex) SearchBoolean(query string) []SearchResult {
	var matches map[string]bool
	var terms []string

	switch {
	case strings.Contains(query, " AND "):
		terms = tokenize(strings.ReplaceAll(query, " AND ", " "))
		matches = di.searchAND(terms)
	case strings.Contains(query, " OR "):
		terms = tokenize(strings.ReplaceAll(query, " OR ", " "))
		matches = di.searchOR(terms)
	case strings.Contains(query, " NOT "):
		parts := strings.SplitN(query, " NOT ", 2)
		terms = tokenize(parts[0])
		matches = di.searchNOT(terms, tokenize(parts[1]))
	default:
		return di.Search(query)
	}

	return di.scoreResults(matches, terms)
}

func (di *DescriptionIndex) searchAND(terms []string) map[string]bool {
	var result map[string]bool
	for i, term := range terms {
		termNodes := make(map[string]bool)
		for nodeID := range di.index[term] {
			if i == 0 || result[nodeID] {
				termNodes[nodeID] = true
			}
		}
		result = termNodes
	}
	if result == nil {
		result = make(map[string]bool)
	}
	return result
}

func (di *DescriptionIndex) searchOR(terms []string) map[string]bool {
	result := make(map[string]bool)
	for _, term := range terms {
		for nodeID := range di.index[term] {
			result[nodeID] = true
		}
	}
	return result
}

func (di *DescriptionIndex) searchNOT(include, exclude []string) map[string]bool {
	result := make(map[string]bool)
	if len(include) == 0 {
		return result
	}
	excluded := di.searchOR(exclude)
	for nodeID := range di.searchAND(include) {
		if !excluded[nodeID] {
			result[nodeID] = true
		}
	}
	return result
}

// SearchFuzzy returns the nodes containing a word within maxDistance edits
// of any word of query.
func (di *DescriptionIndex) SearchFuzzy(query string, maxDistance int) []SearchResult {
	queryTerms := tokenize(query)
	matches := make(map[string]bool)
	var matchedTerms []string

	for term := range di.index {
		for _, q := range queryTerms {
			if levenshteinDistance(q, term) <= maxDistance {
				matchedTerms = append(matchedTerms, term)
				for nodeID := range di.index[term] {
					matches[nodeID] = true
				}
				break
			}
		}
	}

	return di.scoreResults(matches, matchedTerms)
}

// SearchInField is Search restricted to one field.
func (di *DescriptionIndex) SearchInField(field Field, query string) []SearchResult {
	tokens := tokenize(query)
	postings, ok := di.fields[field]
	if len(tokens) == 0 || !ok {
		return []SearchResult{}
	}

	matches := make(map[string]bool)
	for nodeID := range di.searchAND(tokens) {
		inField := true
		for _, term := range tokens {
			if _, ok := postings[term][nodeID]; !ok {
				inField = false
				break
			}
		}
		if inField {
			matches[nodeID] = true
		}
	}
	return di.scoreResults(matches, tokens)
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// Mode selects how Query matches.
type Mode string

const (
	ModeWords   Mode = "words"
	ModePhrase  Mode = "phrase"
	ModeBoolean Mode = "boolean"
	ModeFuzzy   Mode = "fuzzy"
)

// DefaultFuzzyDistance is the edit distance ModeFuzzy tolerates.
const DefaultFuzzyDistance = 2

// ParseMode returns the mode named s. The empty string is ModeWords.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case "":
		return ModeWords, nil
	case ModeWords, ModePhrase, ModeBoolean, ModeFuzzy:
		return m, nil
	default:
		return "", fmt.Errorf("unknown search mode %q (want words, phrase, boolean or fuzzy)", s)
	}
}

// ParseField returns the field named s. The empty string means every field.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(s)); f {
	case "", FieldName, FieldDesc:
		return f, nil
	default:
		return "", fmt.Errorf("unknown search field %q (want name or desc)", s)
	}
}

// Query runs query in the given mode. A non-empty field restricts the
// search to that field and is only supported in ModeWords.
func (di *DescriptionIndex) Query(mode Mode, field Field, query string) ([]SearchResult, error) {
	if field != "" {
		if mode != ModeWords {
			return nil, fmt.Errorf("field %q can only be searched in %s mode", field, ModeWords)
		}
		return di.SearchInField(field, query), nil
	}

	switch mode {
	case ModePhrase:
		return di.SearchPhrase(query), nil
	case ModeBoolean:
		return di.SearchBoolean(query), nil
	case ModeFuzzy:
		return di.SearchFuzzy(query, DefaultFuzzyDistance), nil
	default:
		return di.Search(query), nil
	}
}
