package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logLevelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Manage the shop's products and orders",
	Long: `Shopctl works against a schema-validated document store kept in a
single JSON file. Products and orders are created, edited, listed and
deleted through the same model layer an API server would use.

Examples:
  shopctl products list --tag studio
  shopctl products create '{"likes": 12, ...}'
  shopctl orders list --status CREATED
  shopctl orders get 61b4d1b2
  shopctl seed products.yaml`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogging(viper.GetString("log-level"))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("store", "s", "shop.json", "Path to the store file")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	_ = viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("SHOPCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(seedCmd)
}

// initLogging points slog at stderr with a JSON handler so command
// output on stdout stays machine-readable.
func initLogging(level string) {
	lvl, ok := logLevelMap[strings.ToLower(level)]
	if !ok {
		lvl = slog.LevelWarn
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
