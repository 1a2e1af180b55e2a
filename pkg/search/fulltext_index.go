package search

import (
	"strings"

	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// NewDescriptionIndex indexes every node of g. Names are split into words
// the same way Tokenize does; descriptions are split on anything that is not
// a letter or digit, with the escaped "\n" separators treated as spaces.
func NewDescriptionIndex(g *storage.Graph) *DescriptionIndex {
	di := &DescriptionIndex{
		graph: g,
		index: make(map[string]map[string][]int),
		fields: map[Field]map[string]map[string]struct{}{
			FieldName: {},
			FieldDesc: {},
		},
		docFreq: make(map[string]int),
		order:   make(map[string]int),
	}
	for _, node := range g.Nodes() {
		di.indexNode(node)
	}
	return di
}

func (di *DescriptionIndex) indexNode(node *storage.Node) {
	nameTokens := Tokenize(node.ID)
	descTokens := tokenize(strings.ReplaceAll(node.Desc, `\n`, " "))
	if len(nameTokens) == 0 && len(descTokens) == 0 {
		return
	}
	di.order[node.ID] = len(di.order)

	seen := make(map[string]bool)
	add := func(field Field, term string, pos int) {
		if di.index[term] == nil {
			di.index[term] = make(map[string][]int)
		}
		di.index[term][node.ID] = append(di.index[term][node.ID], pos)

		if di.fields[field][term] == nil {
			di.fields[field][term] = make(map[string]struct{})
		}
		di.fields[field][term][node.ID] = struct{}{}

		// Document frequency counts a node once per term
		if !seen[term] {
			di.docFreq[term]++
			seen[term] = true
		}
	}

	for i, term := range nameTokens {
		add(FieldName, term, i)
	}
	// The gap keeps phrases from spanning name and description
	offset := len(nameTokens) + 1
	for i, term := range descTokens {
		add(FieldDesc, term, offset+i)
	}

	di.totalDocs++
}

// Len returns the number of indexed nodes.
func (di *DescriptionIndex) Len() int {
	return di.totalDocs
}
