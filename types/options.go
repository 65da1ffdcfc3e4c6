package types

// ListOptions configures a filtered, sorted, paginated listing.
type ListOptions struct {
	// Filters maps field names to predicates, combined with implicit
	// AND. A value is either a literal (exact equality, or containment
	// when the stored field is an array) or an ElemMatch directive.
	// An empty or nil map matches every document.
	Filters map[string]any

	// OrderBy specifies the sort order. The sort is stable, so ties
	// keep the store's natural ascending-identifier order.
	OrderBy []OrderClause

	// Offset is the number of matched documents to skip.
	// Negative values are treated as 0.
	Offset int

	// Limit is the maximum number of documents to return.
	// Zero returns an empty page; negative means no limit.
	Limit int
}

// OrderClause is a single sort key.
type OrderClause struct {
	Field      string
	Descending bool
}

// ElemMatch is an array-element-match predicate: it holds when any
// element of the filtered array field has Field equal to Value.
type ElemMatch struct {
	Field string
	Value any
}

// NewListOptions returns ListOptions with an empty filter map and no
// limit.
func NewListOptions() ListOptions {
	return ListOptions{
		Filters: make(map[string]any),
		Limit:   -1,
	}
}
