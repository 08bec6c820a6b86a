package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"storefront-extractor/extractor"
	"storefront-extractor/internal/config"
)

var (
	flagVerbose bool
	flagBrowser bool
	flagTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Resolve storefront URLs into product, collection and branding details",
	Long: `storefront resolves a product page, collection page or store root into
normalized JSON. Lookups never fail: unavailable data comes back empty.

Examples:
  storefront product https://shop.example/products/red-mug
  storefront collection https://shop.example/collections/summer
  storefront branding https://shop.example`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flagBrowser, "browser", false, "Render HTML pages in a headless browser")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 2*time.Minute, "Overall lookup timeout")

	rootCmd.AddCommand(
		lookupCommand("product", "Resolve a product or collection URL", func(ctx context.Context, e *extractor.Extractor, url string) interface{} {
			return e.Lookup(ctx, url)
		}),
		lookupCommand("collection", "Resolve a collection URL", func(ctx context.Context, e *extractor.Extractor, url string) interface{} {
			return e.GetCollectionDetails(ctx, url)
		}),
		lookupCommand("branding", "Scrape logo, font and colors from a storefront page", func(ctx context.Context, e *extractor.Extractor, url string) interface{} {
			return e.GetBranding(ctx, url)
		}),
	)
}

func lookupCommand(use, short string, run func(context.Context, *extractor.Extractor, string) interface{}) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <url>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := logrus.New()
			logger.SetOutput(os.Stderr)
			logger.SetFormatter(&logrus.TextFormatter{
				FullTimestamp:   true,
				TimestampFormat: "2006-01-02 15:04:05.000",
			})
			if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
				logger.SetLevel(level)
			}
			if flagVerbose {
				logger.SetLevel(logrus.DebugLevel)
			}

			extractorConfig := cfg.ExtractorConfig()
			if flagBrowser {
				extractorConfig.UseHeadlessBrowser = true
			}

			e := extractor.NewExtractor(extractorConfig, logger)
			defer e.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
			defer cancel()

			jsonData, err := json.MarshalIndent(run(ctx, e, args[0]), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
