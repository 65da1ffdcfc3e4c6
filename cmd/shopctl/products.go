package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/printshop/docstore/models"
)

var (
	productOffset int
	productLimit  int
	productTag    string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products, optionally filtered by tag",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		docs, err := app.products.List(models.ProductListOptions{
			Offset: productOffset,
			Limit:  productLimit,
			Tag:    productTag,
		})
		if err != nil {
			return err
		}
		slog.Info("listed products", "count", len(docs), "tag", productTag)
		return printJSON(docs)
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		doc, err := app.products.Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(doc)
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create <json>",
	Short: "Create a product from a JSON field object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseFields(args[0])
		if err != nil {
			return err
		}
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		doc, err := app.products.Create(fields)
		if err != nil {
			return err
		}
		slog.Info("created product", "id", doc.ID())
		return printJSON(doc)
	},
}

var productsEditCmd = &cobra.Command{
	Use:   "edit <id> <json>",
	Short: "Apply JSON field changes to a product",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		changes, err := parseFields(args[1])
		if err != nil {
			return err
		}
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		doc, err := app.products.Edit(args[0], changes)
		if err != nil {
			return err
		}
		slog.Info("edited product", "id", args[0])
		return printJSON(doc)
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		if err := app.products.Destroy(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted product %s\n", args[0])
		return nil
	},
}

func init() {
	productsListCmd.Flags().IntVar(&productOffset, "offset", -1, "Number of products to skip")
	productsListCmd.Flags().IntVar(&productLimit, "limit", -1, "Maximum number of products to return")
	productsListCmd.Flags().StringVar(&productTag, "tag", "", "Filter by tag title")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsGetCmd)
	productsCmd.AddCommand(productsCreateCmd)
	productsCmd.AddCommand(productsEditCmd)
	productsCmd.AddCommand(productsDeleteCmd)
}
