package search

import (
	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// Field is an indexed part of a node.
type Field string

const (
	FieldName Field = "name"
	FieldDesc Field = "desc"
)

// DescriptionIndex provides full-text search over node names and
// descriptions. It is built once from a graph and never changes afterwards,
// so concurrent searches need no locking.
type DescriptionIndex struct {
	graph *storage.Graph

	// Inverted index: term -> node ID -> positions
	index map[string]map[string][]int

	// Per field postings for field restricted searches
	fields map[Field]map[string]map[string]struct{}

	// Document frequency: term -> number of nodes containing it
	docFreq map[string]int

	// Graph insertion order of each indexed node, breaks score ties
	order map[string]int

	totalDocs int
}

// SearchResult represents a search result with score
type SearchResult struct {
	NodeID string        `json:"id"`
	Score  float64       `json:"score"`
	Node   *storage.Node `json:"-"`
}
