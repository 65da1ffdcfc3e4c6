package types

// Schema is a named, ordered set of field declarations for one
// collection. Declaration order matters: validation reports the first
// violation in this order. A Schema is immutable once constructed.
type Schema struct {
	name   string
	fields []FieldSpec
	byName map[string]*FieldSpec
}

// NewSchema builds a schema from the given field specs. The specs are
// copied so later mutation of the caller's slice has no effect.
func NewSchema(name string, fields []FieldSpec) *Schema {
	s := &Schema{
		name:   name,
		fields: make([]FieldSpec, len(fields)),
		byName: make(map[string]*FieldSpec, len(fields)),
	}
	copy(s.fields, fields)
	for i := range s.fields {
		s.byName[s.fields[i].Name] = &s.fields[i]
	}
	return s
}

// Name returns the collection name this schema describes.
func (s *Schema) Name() string {
	return s.name
}

// Fields returns all field specs in declaration order.
func (s *Schema) Fields() []FieldSpec {
	return s.fields
}

// Field returns the spec for a field name.
func (s *Schema) Field(name string) (*FieldSpec, bool) {
	spec, ok := s.byName[name]
	return spec, ok
}

// References returns the specs of all Reference fields in declaration
// order. Used by population to know which fields can be expanded.
func (s *Schema) References() []FieldSpec {
	var refs []FieldSpec
	for _, spec := range s.fields {
		if spec.Type == Reference {
			refs = append(refs, spec)
		}
	}
	return refs
}
