package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Search products by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := openServices(cmd, root)
			if err != nil {
				return err
			}
			defer services.Close()

			name := strings.Join(args, " ")
			products, err := services.Products.SearchByName(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("search %q: %w", name, err)
			}

			if root.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), products)
			}
			return writeProductsText(cmd.OutOrStdout(), products)
		},
	}
}
