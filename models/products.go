package models

import (
	"github.com/printshop/docstore/docstore"
	"github.com/printshop/docstore/types"
)

// ProductCollection is the collection name products are stored under.
const ProductCollection = "products"

// ProductFields returns the product schema's field declarations.
func ProductFields() []types.FieldSpec {
	return []types.FieldSpec{
		{Name: types.IDField, Type: types.String, DefaultKind: types.DefaultGenerated, Generate: docstore.NewID},
		{Name: "description", Type: types.String},
		{Name: "alt_description", Type: types.String},
		{Name: "likes", Type: types.Number, Required: true},
		{Name: "urls", Type: types.Object, Fields: []types.FieldSpec{
			{Name: "regular", Type: types.String, Required: true},
			{Name: "small", Type: types.String, Required: true},
			{Name: "thumb", Type: types.String, Required: true},
		}},
		{Name: "links", Type: types.Object, Fields: []types.FieldSpec{
			{Name: "self", Type: types.String, Required: true},
			{Name: "html", Type: types.String, Required: true},
		}},
		{Name: "user", Type: types.Object, Fields: []types.FieldSpec{
			{Name: "id", Type: types.String, Required: true},
			{Name: "first_name", Type: types.String, Required: true},
			{Name: "last_name", Type: types.String},
			{Name: "portfolio_url", Type: types.String},
			{Name: "username", Type: types.String, Required: true},
		}},
		{Name: "tags", Type: types.Array, Fields: []types.FieldSpec{
			{Name: "title", Type: types.String, Required: true},
		}},
	}
}

// ProductListOptions are the raw listing inputs the outer layer
// forwards. Negative offset and limit mean "unset".
type ProductListOptions struct {
	Offset int
	Limit  int
	// Tag filters to products whose tags array contains an element
	// with this title.
	Tag string
}

// Products is the CRUD facade over the product collection.
type Products struct {
	col *docstore.Collection
}

// NewProducts defines the product schema on the store and returns the
// facade bound to its collection.
func NewProducts(store *docstore.Store) (*Products, error) {
	col, err := store.Define(ProductCollection, ProductFields())
	if err != nil {
		return nil, err
	}
	return &Products{col: col}, nil
}

// List returns a page of products in ascending identifier order,
// optionally filtered by tag. An empty result is an empty page, never
// an error.
func (p *Products) List(opts ProductListOptions) ([]types.Document, error) {
	offset, limit := clampPage(opts.Offset, opts.Limit)

	q := types.NewListOptions()
	q.Offset = offset
	q.Limit = limit
	q.OrderBy = []types.OrderClause{{Field: types.IDField}}
	if opts.Tag != "" {
		q.Filters["tags"] = types.ElemMatch{Field: "title", Value: opts.Tag}
	}
	return p.col.List(q)
}

// Get returns a single product by identifier.
func (p *Products) Get(id string) (types.Document, error) {
	return p.col.Get(id)
}

// Create inserts a new product, generating its identifier when the
// caller omits one.
func (p *Products) Create(fields types.Document) (types.Document, error) {
	return p.col.Create(fields)
}

// Edit applies the given field changes to a stored product.
func (p *Products) Edit(id string, changes types.Document) (types.Document, error) {
	return p.col.Edit(id, changes)
}

// Destroy deletes a product. Orders referencing it keep their dangling
// identifiers; population drops those entries lazily.
func (p *Products) Destroy(id string) error {
	return p.col.Destroy(id)
}
