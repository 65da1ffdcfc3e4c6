package docstore

import (
	"sort"

	"github.com/printshop/docstore/internal/validation"
	"github.com/printshop/docstore/types"
)

// Registry holds the schemas known to a store, keyed by collection
// name. Field declarations are validated once at definition time and
// are immutable afterwards. The registry itself is not locked; the
// owning store serializes access to it.
type Registry struct {
	schemas map[string]*types.Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*types.Schema)}
}

// Define registers a schema under the given name. It fails with a
// *types.DuplicateSchemaError when the name is already registered, or
// with a plain error when the field declarations are inconsistent.
func (r *Registry) Define(name string, fields []types.FieldSpec) (*types.Schema, error) {
	if _, exists := r.schemas[name]; exists {
		return nil, &types.DuplicateSchemaError{Name: name}
	}
	if err := validation.ValidateSpecs(fields); err != nil {
		return nil, err
	}
	schema := types.NewSchema(name, fields)
	r.schemas[name] = schema
	return schema, nil
}

// Schema returns the schema registered under name.
func (r *Registry) Schema(name string) (*types.Schema, bool) {
	schema, ok := r.schemas[name]
	return schema, ok
}

// Names returns all registered collection names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
