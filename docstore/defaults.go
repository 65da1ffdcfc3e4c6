package docstore

import "github.com/printshop/docstore/types"

// ApplyDefaults builds the document that will be validated and stored
// from the caller's partial field set: recognized fields are deep-copied
// over, unrecognized fields are dropped, and every unset field with a
// declared default gets one. Generated defaults (the identifier) are
// invoked here, at creation time, never at schema-definition time.
func ApplyDefaults(schema *types.Schema, fields types.Document) types.Document {
	return buildLevel(schema.Fields(), map[string]any(fields.Clone()))
}

func buildLevel(specs []types.FieldSpec, src map[string]any) types.Document {
	doc := make(types.Document, len(specs))

	for i := range specs {
		spec := &specs[i]
		value, present := src[spec.Name]
		if present {
			doc[spec.Name] = pruneValue(spec, value)
			continue
		}
		switch spec.DefaultKind {
		case types.DefaultLiteral:
			doc[spec.Name] = types.CloneValue(spec.Default)
		case types.DefaultGenerated:
			doc[spec.Name] = spec.Generate()
		}
	}
	return doc
}

// pruneValue drops unrecognized keys from nested objects and array
// elements, and applies subfield defaults to objects that are present.
// Values of unexpected shape pass through untouched; validation, not
// pruning, is where shape errors are reported.
func pruneValue(spec *types.FieldSpec, value any) any {
	if len(spec.Fields) == 0 {
		return value
	}

	switch spec.Type {
	case types.Object:
		if obj, ok := value.(map[string]any); ok {
			return buildLevel(spec.Fields, obj)
		}
		if obj, ok := value.(types.Document); ok {
			return buildLevel(spec.Fields, obj)
		}
	case types.Array:
		elems, ok := value.([]any)
		if !ok {
			return value
		}
		out := make([]any, len(elems))
		for i, elem := range elems {
			if obj, isMap := elem.(map[string]any); isMap {
				out[i] = buildLevel(spec.Fields, obj)
			} else if obj, isDoc := elem.(types.Document); isDoc {
				out[i] = buildLevel(spec.Fields, obj)
			} else {
				out[i] = elem
			}
		}
		return out
	}
	return value
}
