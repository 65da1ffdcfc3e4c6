package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/printshop/docstore/docstore"
	"github.com/printshop/docstore/models"
	"github.com/printshop/docstore/types"
)

// shopApp bundles the store and the two model facades for one command
// invocation.
type shopApp struct {
	store    *docstore.Store
	products *models.Products
	orders   *models.Orders
}

func openApp() (*shopApp, error) {
	path := viper.GetString("store")

	store, err := docstore.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}
	products, err := models.NewProducts(store)
	if err != nil {
		return nil, err
	}
	orders, err := models.NewOrders(store)
	if err != nil {
		return nil, err
	}
	return &shopApp{store: store, products: products, orders: orders}, nil
}

func (a *shopApp) Close() error {
	return a.store.Close()
}

// printJSON writes documents to stdout as indented JSON, the same
// shape an API response would carry.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseFields decodes a JSON object argument into a document.
func parseFields(arg string) (types.Document, error) {
	var fields types.Document
	if err := json.Unmarshal([]byte(arg), &fields); err != nil {
		return nil, fmt.Errorf("invalid JSON fields: %w", err)
	}
	return fields, nil
}
