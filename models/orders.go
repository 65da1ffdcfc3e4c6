package models

import (
	"github.com/printshop/docstore/docstore"
	"github.com/printshop/docstore/types"
)

// OrderCollection is the collection name orders are stored under.
const OrderCollection = "orders"

// Order status values.
const (
	StatusCreated   = "CREATED"
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
)

// OrderFields returns the order schema's field declarations.
func OrderFields() []types.FieldSpec {
	return []types.FieldSpec{
		{Name: types.IDField, Type: types.String, DefaultKind: types.DefaultGenerated, Generate: docstore.NewID},
		{Name: "buyerEmail", Type: types.String, Required: true},
		{Name: "products", Type: types.Reference, Ref: ProductCollection, Required: true, Index: true},
		{
			Name:        "status",
			Type:        types.String,
			Index:       true,
			Enum:        []string{StatusCreated, StatusPending, StatusCompleted},
			Default:     StatusCreated,
			DefaultKind: types.DefaultLiteral,
		},
	}
}

// OrderListOptions are the raw listing inputs the outer layer
// forwards. Negative offset and limit mean "unset".
type OrderListOptions struct {
	Offset int
	Limit  int
	// ProductID filters to orders whose products list contains this
	// identifier.
	ProductID string
	// Status filters by exact order status.
	Status string
}

// Orders is the CRUD facade over the order collection. Get and Create
// return orders with their products populated; List and Edit return
// them unpopulated, identifiers as stored.
type Orders struct {
	col *docstore.Collection
}

// NewOrders defines the order schema on the store and returns the
// facade bound to its collection. The product schema must be defined
// on the same store for population to resolve.
func NewOrders(store *docstore.Store) (*Orders, error) {
	col, err := store.Define(OrderCollection, OrderFields())
	if err != nil {
		return nil, err
	}
	return &Orders{col: col}, nil
}

// List returns a page of orders in ascending identifier order,
// optionally filtered by contained product and by status.
func (o *Orders) List(opts OrderListOptions) ([]types.Document, error) {
	offset, limit := clampPage(opts.Offset, opts.Limit)

	q := types.NewListOptions()
	q.Offset = offset
	q.Limit = limit
	q.OrderBy = []types.OrderClause{{Field: types.IDField}}
	if opts.ProductID != "" {
		q.Filters["products"] = opts.ProductID
	}
	if opts.Status != "" {
		q.Filters["status"] = opts.Status
	}
	return o.col.List(q)
}

// Get returns a single order with its products populated: each stored
// product identifier is replaced by the full product document, and
// identifiers that no longer resolve are dropped from the view.
func (o *Orders) Get(id string) (types.Document, error) {
	doc, err := o.col.Get(id)
	if err != nil {
		return nil, err
	}
	return o.col.Populate(doc, "products")
}

// Create inserts a new order and returns it with products populated.
func (o *Orders) Create(fields types.Document) (types.Document, error) {
	doc, err := o.col.Create(fields)
	if err != nil {
		return nil, err
	}
	return o.col.Populate(doc, "products")
}

// Edit applies the given field changes to a stored order and returns
// the result unpopulated.
func (o *Orders) Edit(id string, changes types.Document) (types.Document, error) {
	return o.col.Edit(id, changes)
}

// Destroy deletes an order.
func (o *Orders) Destroy(id string) error {
	return o.col.Destroy(id)
}
