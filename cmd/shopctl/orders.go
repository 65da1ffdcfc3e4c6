package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/printshop/docstore/models"
)

var (
	orderOffset    int
	orderLimit     int
	orderProductID string
	orderStatus    string
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Manage orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders, optionally filtered by product or status",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		docs, err := app.orders.List(models.OrderListOptions{
			Offset:    orderOffset,
			Limit:     orderLimit,
			ProductID: orderProductID,
			Status:    orderStatus,
		})
		if err != nil {
			return err
		}
		slog.Info("listed orders", "count", len(docs), "status", orderStatus)
		return printJSON(docs)
	},
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single order with its products populated",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		doc, err := app.orders.Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(doc)
	},
}

var ordersCreateCmd = &cobra.Command{
	Use:   "create <json>",
	Short: "Create an order from a JSON field object",
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

		doc, err := app.orders.Create(fields)
		if err != nil {
			return err
		}
		slog.Info("created order", "id", doc.ID())
		return printJSON(doc)
	},
}

var ordersEditCmd = &cobra.Command{
	Use:   "edit <id> <json>",
	Short: "Apply JSON field changes to an order",
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

		doc, err := app.orders.Edit(args[0], changes)
		if err != nil {
			return err
		}
		slog.Info("edited order", "id", args[0])
		return printJSON(doc)
	},
}

var ordersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		if err := app.orders.Destroy(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted order %s\n", args[0])
		return nil
	},
}

func init() {
	ordersListCmd.Flags().IntVar(&orderOffset, "offset", -1, "Number of orders to skip")
	ordersListCmd.Flags().IntVar(&orderLimit, "limit", -1, "Maximum number of orders to return")
	ordersListCmd.Flags().StringVar(&orderProductID, "product", "", "Filter by contained product ID")
	ordersListCmd.Flags().StringVar(&orderStatus, "status", "", "Filter by order status")

	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersGetCmd)
	ordersCmd.AddCommand(ordersCreateCmd)
	ordersCmd.AddCommand(ordersEditCmd)
	ordersCmd.AddCommand(ordersDeleteCmd)
}
