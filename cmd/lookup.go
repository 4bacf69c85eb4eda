package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	productService "products.GO/service/product"
)

var lookupCmd = &cobra.Command{
	Use:   "products:lookup <upc>",
	Short: "Resolve a UPC (product or alternate) and print the product as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		upc := args[0]
		if !productService.ValidUPC(upc) {
			return fmt.Errorf("invalid upc %q: must be exactly %d digits", upc, productService.UPCLength)
		}
		db, err := openDB()
		if err != nil {
			return fmt.Errorf("connect to DB: %w", err)
		}

		p, err := productService.NewLookupService(db, nil).Lookup(cmd.Context(), upc)
		if errors.Is(err, productService.ErrNotFound) {
			return fmt.Errorf("upc %s: %w", upc, err)
		}
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
