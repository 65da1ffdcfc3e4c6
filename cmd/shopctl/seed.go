package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/printshop/docstore/types"
)

// seedFile is the YAML shape the seed command reads: a list of product
// field objects, exactly what products create would accept one by one.
type seedFile struct {
	Products []map[string]any `yaml:"products"`
}

var seedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Bulk-load products from a YAML file",
	Long: `Seed reads a YAML file of the form

  products:
    - likes: 10
      urls: {regular: ..., small: ..., thumb: ...}
      ...

and creates each entry through the product model, so every document is
defaulted and validated the same way a normal create is.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read seed file: %w", err)
		}
		var seed seedFile
		if err := yaml.Unmarshal(raw, &seed); err != nil {
			return fmt.Errorf("failed to parse seed file: %w", err)
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		created := 0
		for i, fields := range seed.Products {
			doc, err := app.products.Create(types.Document(fields))
			if err != nil {
				return fmt.Errorf("product %d: %w", i, err)
			}
			slog.Debug("seeded product", "id", doc.ID())
			created++
		}
		fmt.Printf("Seeded %d products\n", created)
		return nil
	},
}
