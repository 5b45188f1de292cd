// Package cli implements the nutriswap command line tool.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nutriswap/backend/config"
	"github.com/nutriswap/backend/internal/app"
	"github.com/nutriswap/backend/internal/logger"
)

const (
	formatJSON = "json"
	formatText = "text"
)

type rootOptions struct {
	format  string
	verbose bool
}

// NewRootCmd builds the top-level command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "nutriswap",
		Short: "Check food products against a health profile",
		Long: "Look up Open Food Facts products by barcode or name, flag nutrients and " +
			"allergens that conflict with a health profile, and suggest safer substitutes.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatJSON && opts.format != formatText {
				return fmt.Errorf("unknown format %q (want json or text)", opts.format)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", formatText, "Output format: json or text")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newLookupCmd(opts),
		newSearchCmd(opts),
		newConditionsCmd(opts),
	)

	return cmd
}

// openServices loads configuration and wires the product service
func openServices(cmd *cobra.Command, opts *rootOptions) (*app.Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := zap.NewNop()
	if opts.verbose {
		log, err = logger.NewWithOutput("debug", "console", "stderr")
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
	}

	services, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return nil, err
	}
	return services, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
