package query

import (
	"github.com/printshop/docstore/types"
)

// matchesFilters checks a document against every filter key, combined
// with implicit AND. Supported predicates:
//
//   - literal against a scalar field: exact equality
//   - literal against an array field: containment (any element equal)
//   - types.ElemMatch: any element of the array field is an object
//     whose named subfield equals the given value
//
// There is no OR, negation, or range matching; the facades never build
// anything beyond the above.
func (p *processor) matchesFilters(doc types.Document, filters map[string]any) bool {
	if len(filters) == 0 {
		return true
	}

	for field, predicate := range filters {
		docValue, exists := doc[field]
		if !exists {
			return false
		}

		switch pred := predicate.(type) {
		case types.ElemMatch:
			if !matchesElem(docValue, pred) {
				return false
			}
		default:
			if !matchesLiteral(docValue, predicate) {
				return false
			}
		}
	}
	return true
}

// matchesLiteral is exact equality for scalars and containment for
// arrays, mirroring how a document database treats equality against an
// array field.
func matchesLiteral(docValue, want any) bool {
	if elems, ok := asElements(docValue); ok {
		for _, elem := range elems {
			if valueToString(elem) == valueToString(want) {
				return true
			}
		}
		return false
	}
	return valueToString(docValue) == valueToString(want)
}

// matchesElem checks whether any element of an array field is an object
// whose pred.Field equals pred.Value. A non-array field never matches.
func matchesElem(docValue any, pred types.ElemMatch) bool {
	elems, ok := asElements(docValue)
	if !ok {
		return false
	}
	for _, elem := range elems {
		obj, ok := asObject(elem)
		if !ok {
			continue
		}
		if sub, exists := obj[pred.Field]; exists && valueToString(sub) == valueToString(pred.Value) {
			return true
		}
	}
	return false
}

func asElements(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, true
	case []types.Document:
		out := make([]any, len(v))
		for i, d := range v {
			out[i] = d
		}
		return out, true
	}
	return nil, false
}

func asObject(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case types.Document:
		return v, true
	}
	return nil, false
}
