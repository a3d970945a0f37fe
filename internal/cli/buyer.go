package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Haleralex/foodyhub/internal/buyer"
	"github.com/Haleralex/foodyhub/internal/domain"
)

// newOffersCommand - витрина покупателя: список и карточка оффера.
func newOffersCommand(a *app) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "offers [id]",
		Short: "List active offers, or show one in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.c.Buyer()
			res := ctrl.Load(cmd.Context())
			if res.Degraded {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: offers unavailable, showing empty list")
			}

			if len(args) == 1 {
				return printOfferDetail(cmd, res.Offers, domain.ID(args[0]))
			}

			ctrl.SetQuery(query)
			visible := ctrl.Visible()
			if len(visible) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no offers")
				return nil
			}
			return printOfferTable(cmd, visible)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "filter offers by title substring")
	return cmd
}

func printOfferTable(cmd *cobra.Command, offers []domain.Offer) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tDISCOUNT\tQTY\tEXPIRES")
	for _, o := range offers {
		v := buyer.Detail(o)
		discount := v.Discount
		if discount == "" {
			discount = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			o.ID, v.Title, v.Price, discount, v.Quantity, v.Expires)
	}
	return w.Flush()
}

func printOfferDetail(cmd *cobra.Command, offers []domain.Offer, id domain.ID) error {
	for _, o := range offers {
		if o.ID != id {
			continue
		}
		v := buyer.Detail(o)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", v.Title)
		fmt.Fprintf(out, "  price:     %s (was %s)\n", v.Price, v.OriginalPrice)
		if v.Discount != "" {
			fmt.Fprintf(out, "  discount:  %s\n", v.Discount)
		}
		fmt.Fprintf(out, "  quantity:  %s\n", v.Quantity)
		fmt.Fprintf(out, "  expires:   %s\n", v.Expires)
		if v.Description != "" {
			fmt.Fprintf(out, "  about:     %s\n", v.Description)
		}
		if v.ImageURL != "" {
			fmt.Fprintf(out, "  photo:     %s\n", v.ImageURL)
		}
		return nil
	}
	return fmt.Errorf("offer %s not found", id)
}

// newReserveCommand бронирует оффер от имени покупателя.
func newReserveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reserve <offer-id>",
		Short: "Reserve an offer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.c.Buyer().Reserve(cmd.Context(), domain.ID(args[0])); err != nil {
				return fmt.Errorf("reserve: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "reserved ✅")
			return nil
		},
	}
}
