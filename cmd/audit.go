package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	productService "products.GO/service/product"
)

var (
	auditJSON   bool
	auditStrict bool
)

var auditCmd = &cobra.Command{
	Use:   "integrity:audit",
	Short: "Report catalog rows that break the UPC resolution invariants",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return fmt.Errorf("connect to DB: %w", err)
		}
		rep, err := productService.Audit(cmd.Context(), db)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if auditJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(rep); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(out, "products: %d  alternates: %d  findings: %d\n", rep.Products, rep.Alternates, len(rep.Findings))
			counts := rep.CountByKind()
			kinds := make([]string, 0, len(counts))
			for k := range counts {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)
			for _, k := range kinds {
				fmt.Fprintf(out, "  %-24s %d\n", k, counts[k])
			}
			for _, f := range rep.Findings {
				fmt.Fprintf(out, "  [%s] upc=%s product_id=%d %s\n", f.Kind, f.UPC, f.ProductID, f.Detail)
			}
		}

		if auditStrict && !rep.Clean() {
			return fmt.Errorf("%d integrity findings", len(rep.Findings))
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Print the report as JSON")
	auditCmd.Flags().BoolVar(&auditStrict, "strict", false, "Exit non-zero when findings exist")
	rootCmd.AddCommand(auditCmd)
}
