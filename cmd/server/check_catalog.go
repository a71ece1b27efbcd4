package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/car-rental-reservation/internal/catalog"
)

var checkCatalogCmd = &cobra.Command{
	Use:   "check-catalog [location]",
	Short: "Load the car catalog and print a summary",
	Long: `check-catalog loads the catalog from CATALOG_SOURCE, or from the given
file path or URL, and reports how many cars are available per type and
brand.  It exits non-zero when the catalog cannot be loaded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		location := cfg.CatalogSource
		if len(args) == 1 {
			location = args[0]
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.CatalogTimeout+time.Second)
		defer cancel()
		return checkCatalog(ctx, cmd.OutOrStdout(), catalog.NewLoader(location, cfg.CatalogTimeout))
	},
}

func checkCatalog(ctx context.Context, w io.Writer, src catalog.Source) error {
	cars, err := src.Load(ctx)
	if err != nil {
		if logger != nil {
			logger.Error("catalog check failed", zap.Error(err))
		}
		return err
	}
	available := 0
	for _, c := range cars {
		if c.Available {
			available++
		}
	}
	opts := catalog.Options(cars)
	fmt.Fprintf(w, "cars: %d (available: %d)\n", len(cars), available)
	fmt.Fprintf(w, "types: %s\n", strings.Join(opts.Types, ", "))
	fmt.Fprintf(w, "brands: %s\n", strings.Join(opts.Brands, ", "))
	return nil
}
