// Package validation checks schemas and documents for consistency.
// Schema specs are validated once at definition time; documents are
// validated on every create and every edit before a write is committed.
package validation

import (
	"fmt"
	"strings"

	"github.com/printshop/docstore/types"
)

// ValidateSpecs checks a schema's field declarations for consistency.
// It is called when a schema is defined, never on the write path.
func ValidateSpecs(fields []types.FieldSpec) error {
	if len(fields) == 0 {
		return fmt.Errorf("at least one field must be declared")
	}
	return validateSpecLevel(fields, "")
}

func validateSpecLevel(fields []types.FieldSpec, path string) error {
	seen := make(map[string]bool)
	for i := range fields {
		spec := &fields[i]
		name := qualify(path, spec.Name)

		if spec.Name == "" {
			if path == "" {
				return fmt.Errorf("field name cannot be empty")
			}
			return fmt.Errorf("field name cannot be empty under %s", path)
		}
		if seen[spec.Name] {
			return fmt.Errorf("duplicate field name: %s", name)
		}
		seen[spec.Name] = true

		if err := validateEnum(spec, name); err != nil {
			return err
		}
		if err := validateDefault(spec, name); err != nil {
			return err
		}

		switch spec.Type {
		case types.Reference:
			if spec.Ref == "" {
				return fmt.Errorf("field %s: reference fields must name a target collection", name)
			}
		case types.Object, types.Array:
			if len(spec.Fields) > 0 {
				if err := validateSpecLevel(spec.Fields, name); err != nil {
					return err
				}
			}
		default:
			if len(spec.Fields) > 0 {
				return fmt.Errorf("field %s: only object and array fields may declare subfields", name)
			}
		}
		if spec.Ref != "" && spec.Type != types.Reference {
			return fmt.Errorf("field %s: only reference fields may set a target collection", name)
		}
	}
	return nil
}

func validateEnum(spec *types.FieldSpec, name string) error {
	if len(spec.Enum) == 0 {
		return nil
	}
	valuesSeen := make(map[string]bool)
	for _, v := range spec.Enum {
		if v == "" {
			return fmt.Errorf("field %s: enum values cannot be empty", name)
		}
		if valuesSeen[v] {
			return fmt.Errorf("field %s: duplicate enum value %q", name, v)
		}
		valuesSeen[v] = true
	}
	return nil
}

func validateDefault(spec *types.FieldSpec, name string) error {
	switch spec.DefaultKind {
	case types.DefaultNone:
		if spec.Default != nil || spec.Generate != nil {
			return fmt.Errorf("field %s: default value set without a default kind", name)
		}
	case types.DefaultLiteral:
		if spec.Default == nil {
			return fmt.Errorf("field %s: literal default requires a value", name)
		}
		if len(spec.Enum) > 0 && !enumContains(spec.Enum, fmt.Sprintf("%v", spec.Default)) {
			return fmt.Errorf("field %s: default value %v is not in the list of valid values", name, spec.Default)
		}
	case types.DefaultGenerated:
		if spec.Generate == nil {
			return fmt.Errorf("field %s: generated default requires a generator", name)
		}
	default:
		return fmt.Errorf("field %s: invalid default kind %d", name, spec.DefaultKind)
	}
	return nil
}

// ValidateDocument checks a document against its schema and returns the
// first violation found, walking fields in declaration order: required
// presence, enum membership, then recursion into nested object and
// array fields. The violation is always a *types.ValidationError whose
// Field is the dotted path of the offending field.
func ValidateDocument(schema *types.Schema, doc types.Document) error {
	return validateLevel(schema.Fields(), map[string]any(doc), "")
}

func validateLevel(specs []types.FieldSpec, obj map[string]any, path string) error {
	for i := range specs {
		spec := &specs[i]
		name := qualify(path, spec.Name)
		value, present := obj[spec.Name]

		if !present || isEmptyValue(value) {
			if spec.Required {
				return &types.ValidationError{Field: name, Reason: "is required"}
			}
			// An absent object still owes its required subfields, so the
			// violation surfaces with a full path like "urls.regular".
			if spec.Type == types.Object && hasRequired(spec.Fields) {
				if err := validateLevel(spec.Fields, map[string]any{}, name); err != nil {
					return err
				}
			}
			continue
		}

		if len(spec.Enum) > 0 {
			sv := fmt.Sprintf("%v", value)
			if !enumContains(spec.Enum, sv) {
				return &types.ValidationError{
					Field:  name,
					Reason: fmt.Sprintf("value %q is not one of %s", sv, strings.Join(spec.Enum, "|")),
				}
			}
		}

		if err := validateValue(spec, value, name); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(spec *types.FieldSpec, value any, name string) error {
	switch spec.Type {
	case types.String:
		if _, ok := value.(string); !ok {
			return &types.ValidationError{Field: name, Reason: "expected a string"}
		}
	case types.Number:
		if !isNumeric(value) {
			return &types.ValidationError{Field: name, Reason: "expected a number"}
		}
	case types.Object:
		m, ok := asMap(value)
		if !ok {
			return &types.ValidationError{Field: name, Reason: "expected an object"}
		}
		return validateLevel(spec.Fields, m, name)
	case types.Array:
		elems, ok := asSlice(value)
		if !ok {
			return &types.ValidationError{Field: name, Reason: "expected an array"}
		}
		for idx, elem := range elems {
			elemName := fmt.Sprintf("%s.%d", name, idx)
			if len(spec.Fields) > 0 {
				m, ok := asMap(elem)
				if !ok {
					return &types.ValidationError{Field: elemName, Reason: "expected an object"}
				}
				if err := validateLevel(spec.Fields, m, elemName); err != nil {
					return err
				}
			} else if isEmptyValue(elem) {
				return &types.ValidationError{Field: elemName, Reason: "entries cannot be empty"}
			}
		}
	case types.Reference:
		return validateReference(value, name)
	}
	return nil
}

// validateReference accepts a single identifier or a list of
// identifiers; every entry must be a non-empty string.
func validateReference(value any, name string) error {
	switch v := value.(type) {
	case string:
		if v == "" {
			return &types.ValidationError{Field: name, Reason: "is required"}
		}
	case []string:
		for idx, id := range v {
			if id == "" {
				return &types.ValidationError{Field: fmt.Sprintf("%s.%d", name, idx), Reason: "entries cannot be empty"}
			}
		}
	case []any:
		for idx, e := range v {
			id, ok := e.(string)
			if !ok || id == "" {
				return &types.ValidationError{Field: fmt.Sprintf("%s.%d", name, idx), Reason: "expected a non-empty identifier"}
			}
		}
	default:
		return &types.ValidationError{Field: name, Reason: "expected an identifier or a list of identifiers"}
	}
	return nil
}

func hasRequired(specs []types.FieldSpec) bool {
	for i := range specs {
		if specs[i].Required {
			return true
		}
		if specs[i].Type == types.Object && hasRequired(specs[i].Fields) {
			return true
		}
	}
	return false
}

// isEmptyValue reports whether a value counts as unset for required
// checks: nil and the empty string. Zero numbers and empty composites
// are present values.
func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

func isNumeric(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case types.Document:
		return v, true
	}
	return nil, false
}

func asSlice(value any) ([]any, bool) {
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

func enumContains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func qualify(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
