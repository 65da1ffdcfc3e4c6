package docstore

import (
	"fmt"

	"github.com/printshop/docstore/types"
)

// Populate returns a denormalized view of doc in which the named
// reference field's identifier (or list of identifiers) is replaced by
// the referenced document(s) from the target collection. Identifiers
// that no longer resolve are dropped silently: the store enforces no
// referential integrity on delete, so a dangling reference is an
// expected state, not a failure. The stored document is never mutated;
// only the returned clone carries the expansion.
func (c *Collection) Populate(doc types.Document, field string) (types.Document, error) {
	spec, ok := c.schema.Field(field)
	if !ok {
		return nil, fmt.Errorf("%s: unknown field %q", c.Name(), field)
	}
	if spec.Type != types.Reference {
		return nil, fmt.Errorf("%s: field %q is not a reference", c.Name(), field)
	}
	target, ok := c.store.Collection(spec.Ref)
	if !ok {
		return nil, fmt.Errorf("%s: reference target collection %q is not defined", c.Name(), spec.Ref)
	}

	view := doc.Clone()
	switch value := view[field].(type) {
	case string:
		if ref, found := target.lookup(value); found {
			view[field] = ref
		} else {
			delete(view, field)
		}
	case []any:
		view[field] = resolveAll(target, value)
	case []string:
		ids := make([]any, len(value))
		for i, id := range value {
			ids[i] = id
		}
		view[field] = resolveAll(target, ids)
	case nil:
		// Field unset; nothing to expand.
	default:
		return nil, fmt.Errorf("%s: field %q does not hold identifiers", c.Name(), field)
	}
	return view, nil
}

func resolveAll(target *Collection, ids []any) []any {
	resolved := make([]any, 0, len(ids))
	for _, raw := range ids {
		id, ok := raw.(string)
		if !ok {
			continue
		}
		if ref, found := target.lookup(id); found {
			resolved = append(resolved, ref)
		}
	}
	return resolved
}
