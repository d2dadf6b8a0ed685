package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekogravitycat/transfer-booking-backend/internal/catalog"
)

// CheckResult is the JSON output of catalog check.
type CheckResult struct {
	File         string `json:"file"`
	Valid        bool   `json:"valid"`
	Error        string `json:"error,omitempty"`
	Vehicles     int    `json:"vehicles"`
	Tours        int    `json:"tours"`
	Testimonials int    `json:"testimonials"`
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with marketing catalog files",
	}
	cmd.AddCommand(newCatalogCheckCommand(rootOpts))
	return cmd
}

func newCatalogCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a catalog YAML file (the embedded catalog when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			res := CheckResult{File: path}
			if path == "" {
				res.File = "(embedded)"
			}

			cat, err := catalog.LoadFile(path)
			if err != nil {
				res.Error = err.Error()
			} else {
				res.Valid = true
				res.Vehicles = len(cat.Vehicles)
				res.Tours = len(cat.Tours)
				res.Testimonials = len(cat.Testimonials)
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else if res.Valid {
				fmt.Fprintf(out, "%s: ok (%d vehicles, %d tours, %d testimonials)\n", res.File, res.Vehicles, res.Tours, res.Testimonials)
			}

			if err != nil {
				return fmt.Errorf("%s: %w", res.File, err)
			}
			return nil
		},
	}
}
