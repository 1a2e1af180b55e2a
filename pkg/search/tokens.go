// Package search groups start node candidates for the search panel and
// provides full-text search over node names and descriptions through
// DescriptionIndex.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/stoewer/go-strcase"

	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

var stopWords = map[string]struct{}{
	"at": {}, "in": {}, "on": {}, "by": {}, "the": {},
	"and": {}, "or": {}, "of": {}, "from": {}, "to": {},
}

// Group is every candidate whose name contains Token.
type Group struct {
	Token   string
	Members []string
}

// Tokenize splits the name part of a composite node id into lower-case
// words. Case changes, underscores and digits separate words; stop words and
// repeats are dropped.
func Tokenize(id string) []string {
	snake := strcase.SnakeCase(storage.SplitNodeID(id))
	words := strings.FieldsFunc(snake, func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	tokens := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		tokens = append(tokens, w)
	}
	return tokens
}

// GroupByTokens groups ids by the tokens of their names. A candidate
// appears in one group per token. Groups are ordered by size, largest first;
// equal sizes keep the order in which their token first appeared.
func GroupByTokens(ids []string) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, id := range ids {
		for _, tok := range Tokenize(id) {
			i, ok := index[tok]
			if !ok {
				i = len(groups)
				index[tok] = i
				groups = append(groups, Group{Token: tok})
			}
			groups[i].Members = append(groups[i].Members, id)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Members) > len(groups[j].Members)
	})
	return groups
}

// Match returns the ids whose node name contains query, ignoring case. An
// empty query matches everything.
func Match(ids []string, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	matches := []string{}
	for _, id := range ids {
		if strings.Contains(strings.ToLower(storage.SplitNodeID(id)), query) {
			matches = append(matches, id)
		}
	}
	return matches
}
