package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nutriswap/backend/internal/domain"
)

type lookupOptions struct {
	conditions    []string
	allergies     []string
	noSubstitutes bool
}

func newLookupCmd(root *rootOptions) *cobra.Command {
	opts := &lookupOptions{}

	cmd := &cobra.Command{
		Use:   "lookup <barcode>",
		Short: "Analyze a product by barcode",
		Long:  "Fetch a product by barcode, list the warnings for the given profile and suggest substitutes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringSliceVarP(&opts.conditions, "condition", "c", nil, "Health condition (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.allergies, "allergy", "a", nil, "Allergy (repeatable)")
	cmd.Flags().BoolVar(&opts.noSubstitutes, "no-substitutes", false, "Skip the substitute search")

	return cmd
}

func runLookup(cmd *cobra.Command, root *rootOptions, opts *lookupOptions, barcode string) error {
	services, err := openServices(cmd, root)
	if err != nil {
		return err
	}
	defer services.Close()

	product, err := services.Products.LookupBarcode(cmd.Context(), barcode)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", barcode, err)
	}

	profile := domain.HealthProfile{HealthIssues: opts.conditions, Allergies: opts.allergies}
	report := services.Products.Report(cmd.Context(), product, profile, !opts.noSubstitutes)

	if root.format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return writeReportText(cmd.OutOrStdout(), report)
}

func writeReportText(w io.Writer, report *domain.ProductReport) error {
	s := report.Summary
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Product\t%s (%s)\n", displayName(&report.Product), s.Code)
	if report.Product.Brands != "" {
		fmt.Fprintf(tw, "Brands\t%s\n", report.Product.Brands)
	}
	fmt.Fprintf(tw, "Energy\t%.0f kcal/%s\n", s.EnergyKcal, s.Per)
	fmt.Fprintf(tw, "Fat\t%.1f g (saturated %.1f g)\n", s.Fat, s.SaturatedFat)
	fmt.Fprintf(tw, "Sugars\t%.1f g\n", s.Sugars)
	fmt.Fprintf(tw, "Salt\t%.2f g\n", s.Salt)
	if s.NutriScoreGrade != "" {
		fmt.Fprintf(tw, "Nutri-Score\t%s\n", strings.ToUpper(s.NutriScoreGrade))
	}
	fmt.Fprintf(tw, "Availability\t%d stores, %d countries\n", s.StoreCount, s.CountryCount)

	warnings := "none"
	if len(report.Warnings) > 0 {
		codes := make([]string, len(report.Warnings))
		for i, w := range report.Warnings {
			codes[i] = string(w)
		}
		warnings = strings.Join(codes, ", ")
	}
	fmt.Fprintf(tw, "Warnings\t%s\n", warnings)

	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Substitutes) == 0 {
		return nil
	}
	fmt.Fprintln(w, "\nSubstitutes")
	return writeProductsText(w, report.Substitutes)
}

func writeProductsText(w io.Writer, products []domain.Product) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tSUGARS\tSAT FAT")
	for i := range products {
		p := &products[i]
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\n",
			p.Code, displayName(p), p.Nutriments.SugarsPer100g(), p.Nutriments.SaturatedFatPer100g())
	}
	return tw.Flush()
}

func displayName(p *domain.Product) string {
	if p.Name == "" {
		return "(unnamed)"
	}
	return p.Name
}
