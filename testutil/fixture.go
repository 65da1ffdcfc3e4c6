// Package testutil provides a seeded store fixture for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/printshop/docstore/docstore"
	"github.com/printshop/docstore/models"
	"github.com/printshop/docstore/types"
)

// Fixture is a file-backed store with both model schemas defined and a
// small known universe of products and orders loaded.
type Fixture struct {
	Store    *docstore.Store
	Products *models.Products
	Orders   *models.Orders

	// Seeded products. Camera and Poster share the "studio" tag.
	Camera types.Document // prod-camera, likes 12, tags studio+gear
	Mug    types.Document // prod-mug, likes 3, tags kitchen
	Poster types.Document // prod-poster, likes 7, tags studio

	// Seeded orders.
	CameraOrder types.Document // ord-camera, products [camera], status CREATED
	BulkOrder   types.Document // ord-bulk, products [camera mug], status PENDING
}

// NewFixture creates the seeded fixture in a temp directory. The store
// is closed automatically when the test finishes.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	store, err := docstore.New(filepath.Join(t.TempDir(), "shop.json"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	f := &Fixture{Store: store}
	if f.Products, err = models.NewProducts(store); err != nil {
		t.Fatalf("failed to define products: %v", err)
	}
	if f.Orders, err = models.NewOrders(store); err != nil {
		t.Fatalf("failed to define orders: %v", err)
	}

	f.Camera = f.mustCreateProduct(t, ValidProduct("prod-camera", 12, "studio", "gear"))
	f.Mug = f.mustCreateProduct(t, ValidProduct("prod-mug", 3, "kitchen"))
	f.Poster = f.mustCreateProduct(t, ValidProduct("prod-poster", 7, "studio"))

	f.CameraOrder = f.mustCreateOrder(t, types.Document{
		"_id":        "ord-camera",
		"buyerEmail": "ada@example.com",
		"products":   []any{"prod-camera"},
	})
	f.BulkOrder = f.mustCreateOrder(t, types.Document{
		"_id":        "ord-bulk",
		"buyerEmail": "grace@example.com",
		"products":   []any{"prod-camera", "prod-mug"},
		"status":     models.StatusPending,
	})
	return f
}

func (f *Fixture) mustCreateProduct(t *testing.T, fields types.Document) types.Document {
	t.Helper()
	doc, err := f.Products.Create(fields)
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return doc
}

func (f *Fixture) mustCreateOrder(t *testing.T, fields types.Document) types.Document {
	t.Helper()
	doc, err := f.Orders.Create(fields)
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	return doc
}

// ValidProduct builds a complete, valid product field set. The id may
// be empty to let the store generate one.
func ValidProduct(id string, likes int, tags ...string) types.Document {
	doc := types.Document{
		"description": "a print shop item",
		"likes":       likes,
		"urls": map[string]any{
			"regular": "https://images.example.com/regular.jpg",
			"small":   "https://images.example.com/small.jpg",
			"thumb":   "https://images.example.com/thumb.jpg",
		},
		"links": map[string]any{
			"self": "https://api.example.com/item",
			"html": "https://example.com/item",
		},
		"user": map[string]any{
			"id":         "u-1",
			"first_name": "Sam",
			"username":   "sam",
		},
	}
	if id != "" {
		doc["_id"] = id
	}
	if len(tags) > 0 {
		elems := make([]any, len(tags))
		for i, tag := range tags {
			elems[i] = map[string]any{"title": tag}
		}
		doc["tags"] = elems
	}
	return doc
}
