package search

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// scoreResults calculates TF-IDF scores and returns results best first.
// Equal scores keep graph insertion order.
func (di *DescriptionIndex) scoreResults(nodeIDs map[string]bool, queryTokens []string) []SearchResult {
	results := make([]SearchResult, 0, len(nodeIDs))

	for nodeID := range nodeIDs {
		node, err := di.graph.GetNode(nodeID)
		if err != nil {
			continue
		}
		results = append(results, SearchResult{
			NodeID: nodeID,
			Score:  di.calculateScore(nodeID, queryTokens),
			Node:   node,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return di.order[results[i].NodeID] < di.order[results[j].NodeID]
	})

	return results
}

// calculateScore calculates TF-IDF score for a node
func (di *DescriptionIndex) calculateScore(nodeID string, queryTokens []string) float64 {
	score := 0.0

	for _, term := range queryTokens {
		tf := float64(len(di.index[term][nodeID]))

		df := float64(di.docFreq[term])
		idf := 1.0
		if df > 0 && di.totalDocs > 0 {
			// Add 1 to avoid log(1) = 0 for terms in all documents
			idf = math.Log(float64(di.totalDocs+1) / (df + 1))
		}

		score += tf * (1.0 + idf)
	}

	return score
}

// tokenize splits text into lower-case words of letters and digits
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
