package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pricing"
)

type quoteOptions struct {
	passengers int
	service    string
	vehicle    string
}

// NewQuoteCommand creates the quote command.
func NewQuoteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &quoteOptions{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Recommend a vehicle class and price a trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := pricing.NewQuote(opts.passengers, pricing.ServiceType(opts.service), pricing.VehicleCode(opts.vehicle))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, q)
			}

			recommended, _ := pricing.Lookup(q.RecommendedVehicle)
			chosen, _ := pricing.Lookup(q.VehicleType)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Passengers\t%d\n", q.Passengers)
			fmt.Fprintf(tw, "Service\t%s\n", q.ServiceType.Label())
			fmt.Fprintf(tw, "Recommended\t%s (%s)\n", recommended.Label, recommended.Code)
			if q.VehicleType != q.RecommendedVehicle {
				fmt.Fprintf(tw, "Vehicle\t%s (%s)\n", chosen.Label, chosen.Code)
			}
			fmt.Fprintf(tw, "Price\t%s\n", pricing.FormatUSD(q.EstimatedPrice))
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&opts.passengers, "passengers", "p", 0, "party size")
	cmd.Flags().StringVarP(&opts.service, "service", "s", string(pricing.OneWay), "one_way or round_trip")
	cmd.Flags().StringVar(&opts.vehicle, "vehicle", "", "vehicle class to price (defaults to the recommendation)")
	_ = cmd.MarkFlagRequired("passengers")

	return cmd
}

// NewClassesCommand creates the classes command.
func NewClassesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "Print the vehicle class table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			classes := pricing.Classes()
			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, classes)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tLABEL\tPASSENGERS\tONE WAY\tROUND TRIP")
			for _, c := range classes {
				band := fmt.Sprintf("%d-%d", c.MinPassengers, c.MaxPassengers)
				if c.MaxPassengers == 0 {
					band = fmt.Sprintf("%d+", c.MinPassengers)
				}
				oneWay, _ := pricing.EstimatePrice(c.MinPassengers, pricing.OneWay, c.Code)
				roundTrip, _ := pricing.EstimatePrice(c.MinPassengers, pricing.RoundTrip, c.Code)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.Code, c.Label, band, pricing.FormatUSD(oneWay), pricing.FormatUSD(roundTrip))
			}
			return tw.Flush()
		},
	}
}
