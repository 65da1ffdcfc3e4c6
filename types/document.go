package types

// IDField is the identifier key every stored document carries.
// It is unique within a collection and is the store's natural sort key.
const IDField = "_id"

// Document is a single schema-conformant record: a mapping from field
// name to value. Values are the JSON-compatible kinds (string, float64,
// bool, map[string]any, []any) plus whatever Go scalars a caller passes
// in before the document round-trips through persistence.
type Document map[string]any

// ID returns the document identifier, or "" if unset.
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Clone returns a deep copy of the document. Nested maps and slices are
// copied recursively, so mutating the clone never touches the original.
// The store hands out clones exclusively; no caller ever holds a
// reference into stored data.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies a single document value.
func CloneValue(v any) any {
	switch val := v.(type) {
	case Document:
		return val.Clone()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = CloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = CloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case []Document:
		out := make([]Document, len(val))
		for i, e := range val {
			out[i] = e.Clone()
		}
		return out
	default:
		return v
	}
}
