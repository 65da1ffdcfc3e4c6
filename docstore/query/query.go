// Package query evaluates filter, sort, and pagination over documents.
// It operates on already-typed values only; coercing raw caller input
// is the facades' job.
package query

import (
	"github.com/printshop/docstore/types"
)

// Processor executes queries against a sequence of documents.
type Processor interface {
	// Execute filters, sorts, and paginates the given documents.
	Execute(docs []types.Document, opts types.ListOptions) ([]types.Document, error)

	// Matches checks a single document against a filter map.
	Matches(doc types.Document, filters map[string]any) bool
}

type processor struct {
	schema *types.Schema
}

// NewProcessor creates a query processor for one schema.
func NewProcessor(schema *types.Schema) Processor {
	return &processor{schema: schema}
}

// Execute runs the query pipeline: filter, stable sort, then
// offset/limit. The input is expected in the store's natural
// ascending-identifier order; because the sort is stable, that order
// breaks ties for any later sort key.
func (p *processor) Execute(docs []types.Document, opts types.ListOptions) ([]types.Document, error) {
	result := make([]types.Document, 0, len(docs))
	for _, doc := range docs {
		if p.matchesFilters(doc, opts.Filters) {
			result = append(result, doc)
		}
	}

	if len(opts.OrderBy) > 0 {
		sortDocuments(result, opts.OrderBy)
	}

	return paginate(result, opts.Offset, opts.Limit), nil
}

// paginate applies skip then take. Offsets past the end produce an
// empty page; limit 0 is an empty page, not "no limit"; a negative
// limit disables the cap.
func paginate(docs []types.Document, offset, limit int) []types.Document {
	if offset > 0 {
		if offset >= len(docs) {
			return []types.Document{}
		}
		docs = docs[offset:]
	}
	if limit >= 0 && limit < len(docs) {
		docs = docs[:limit]
	}
	return docs
}

// Matches implements the Processor interface method.
func (p *processor) Matches(doc types.Document, filters map[string]any) bool {
	return p.matchesFilters(doc, filters)
}
