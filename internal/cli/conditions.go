package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newConditionsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "conditions",
		Short: "List the configured health condition rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := openServices(cmd, root)
			if err != nil {
				return err
			}
			defer services.Close()

			rules := services.Products.Rules()
			if root.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), rules)
			}

			names := make([]string, 0, len(rules))
			for name := range rules {
				names = append(names, name)
			}
			sort.Strings(names)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CONDITION\tMAX SUGAR\tMAX SAT FAT")
			for _, name := range names {
				rule := rules[name]
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, limitText(rule.SugarLimit()), limitText(rule.SaturatedFatLimit()))
			}
			return tw.Flush()
		},
	}
}

func limitText(limit float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%g g", limit)
}
