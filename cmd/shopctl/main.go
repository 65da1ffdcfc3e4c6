// Shopctl is a command-line front end for the shop's document store:
// it creates, lists, edits, and deletes products and orders against a
// JSON-file-backed store, and can bulk-seed products from a YAML file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
