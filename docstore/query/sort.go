package query

import (
	"sort"

	"github.com/printshop/docstore/types"
)

// sortDocuments stable-sorts documents by the given clauses. Stability
// matters: the input arrives in ascending-identifier order, so equal
// sort keys keep that order and every listing is deterministic.
func sortDocuments(docs []types.Document, orderBy []types.OrderClause) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, clause := range orderBy {
			valI := valueToString(docs[i][clause.Field])
			valJ := valueToString(docs[j][clause.Field])

			if valI < valJ {
				return !clause.Descending
			}
			if valI > valJ {
				return clause.Descending
			}
		}
		return false
	})
}
