package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Haleralex/foodyhub/internal/buyer"
	"github.com/Haleralex/foodyhub/internal/domain"
	"github.com/Haleralex/foodyhub/internal/merchant"
)

// newMerchantCommand - дерево команд ресторана.
func newMerchantCommand(a *app) *cobra.Command {
	var startupURL string

	cmd := &cobra.Command{
		Use:   "merchant",
		Short: "Manage a restaurant account",
		// cobra выполняет только ближайший PersistentPreRunE,
		// поэтому a.init() вызывается здесь явно.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			if startupURL == "" {
				return nil
			}
			m, err := a.c.Merchant()
			if err != nil {
				return err
			}
			handled, err := m.HandleStartupURL(startupURL)
			if err != nil {
				return err
			}
			if handled {
				fmt.Fprintln(cmd.ErrOrStderr(), "logged out by startup marker")
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&startupURL, "startup-url", "",
		"deep-link URL to process before the command (?logout=1 forces a logout)")
	cmd.AddCommand(
		newMerchantRegisterCommand(a),
		newMerchantLoginCommand(a),
		newMerchantLogoutCommand(a),
		newMerchantWhoamiCommand(a),
		newMerchantProfileCommand(a),
		newMerchantOffersCommand(a),
		newMerchantCreateCommand(a),
		newMerchantExportCommand(a),
		newMerchantDashboardCommand(a),
	)
	return cmd
}

func newMerchantRegisterCommand(a *app) *cobra.Command {
	var name, phone, saveKeyPath string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new restaurant and store its credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.c.Merchant()
			if err != nil {
				return err
			}
			creds, err := m.Register(cmd.Context(), name, phone)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "registered ✅")
			fmt.Fprintf(out, "  restaurant id: %s\n", creds.RestaurantID)
			fmt.Fprintf(out, "  api key:       %s\n", creds.APIKey)
			fmt.Fprintln(out, "credentials saved; keep the key safe")

			// Дополнительная копия пары: ключ показывается один раз
			if saveKeyPath != "" {
				if err := merchant.NewFileStore(saveKeyPath).Save(creds); err != nil {
					return fmt.Errorf("save key copy: %w", err)
				}
				fmt.Fprintf(out, "key copy written to %s\n", saveKeyPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "restaurant name")
	cmd.Flags().StringVar(&phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&saveKeyPath, "save-key", "", "also write the credential pair to this file")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func newMerchantLoginCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <restaurant-id> <api-key>",
		Short: "Store existing credentials",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.c.Merchant()
			if err != nil {
				return err
			}
			if err := m.Login(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged in ✅")
			return nil
		},
	}
}

func newMerchantLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.c.Merchant()
			if err != nil {
				return err
			}
			if err := m.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newMerchantWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active restaurant identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.c.Merchant()
			if err != nil {
				return err
			}
			if m.Mode() != merchant.ModeAuthenticated {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restaurant %s\n", m.Credentials().RestaurantID)
			return nil
		},
	}
}

func newMerchantProfileCommand(a *app) *cobra.Command {
	var form merchant.ProfileForm
	var save bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the restaurant profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.c.Merchant()
			if err != nil {
				return err
			}

			if save {
				if _, err := m.SaveProfile(cmd.Context(), form); err != nil {
					return fmt.Errorf("save profile: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "profile saved ✅")
				return nil
			}

			p, err := m.LoadProfile(cmd.Context())
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name:       %s\n", p.Name)
			fmt.Fprintf(out, "phone:      %s\n", p.Phone)
			fmt.Fprintf(out, "address:    %s\n", p.Address)
			if p.Lat != nil && p.Lng != nil {
				fmt.Fprintf(out, "location:   %s, %s\n",
					strconv.FormatFloat(*p.Lat, 'f', -1, 64),
					strconv.FormatFloat(*p.Lng, 'f', -1, 64))
			}
			if p.CloseTime != "" {
				fmt.Fprintf(out, "closes at:  %s\n", p.CloseTime)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "update the profile with the given flags")
	cmd.Flags().StringVar(&form.Name, "name", "", "restaurant name")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&form.Address, "address", "", "street address")
	cmd.Flags().StringVar(&form.Lat, "lat", "", "latitude")
	cmd.Flags().StringVar(&form.Lng, "lng", "", "longitude")
	cmd.Flags().StringVar(&form.CloseTime, "close-time", "", "closing time, HH:MM")
	return cmd
}

func newMerchantOffersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "offers",
		Short: "List this restaurant's offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.c.Merchant()
			if err != nil {
				return err
			}
			res, err := m.LoadOffers(cmd.Context())
			if err != nil {
				return fmt.Errorf("load offers: %w", err)
			}
			if res.Source == merchant.SourceFallback {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: scoped endpoint unavailable, filtered the global list")
			}
			if len(res.Offers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no offers")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRICE\tQTY\tEXPIRES")
			for _, o := range res.Offers {
				v := buyer.Detail(o)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.ID, v.Title, v.Price, v.Quantity, v.Expires)
			}
			return w.Flush()
		},
	}
}

func newMerchantCreateCommand(a *app) *cobra.Command {
	var form merchant.OfferForm
	var photoPath string
	var inMinutes int
	var atClose bool
	var eodClock string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.c.Merchant()
			if err != nil {
				return err
			}

			// Быстрые варианты срока действия, взаимоисключающие с --expires.
			switch {
			case inMinutes > 0:
				form.ExpiresAt = merchant.ExpiryInMinutes(m.Now(), inMinutes).Format("2006-01-02 15:04")
			case eodClock != "":
				hh, mm, ok := domain.ParseClock(eodClock)
				if !ok {
					return fmt.Errorf("invalid --eod time %q, want HH:MM", eodClock)
				}
				form.ExpiresAt = merchant.ExpiryAtClock(m.Now(), hh, mm).Format("2006-01-02 15:04")
			case atClose:
				t, err := m.ExpiryAtCloseTime(cmd.Context())
				if err != nil {
					return fmt.Errorf("expiry at close time: %w", err)
				}
				form.ExpiresAt = t.Format("2006-01-02 15:04")
			}

			if photoPath != "" {
				f, err := os.Open(photoPath)
				if err != nil {
					return fmt.Errorf("open photo: %w", err)
				}
				defer f.Close()
				if err := m.CreateOfferWithPhoto(cmd.Context(), form, filepath.Base(photoPath), f); err != nil {
					return fmt.Errorf("create offer: %w", err)
				}
			} else if err := m.CreateOffer(cmd.Context(), form); err != nil {
				return fmt.Errorf("create offer: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "offer created ✅")
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "offer title")
	cmd.Flags().StringVar(&form.Price, "price", "", "discounted price, e.g. 7.50")
	cmd.Flags().StringVar(&form.OriginalPrice, "original-price", "", "price before discount")
	cmd.Flags().StringVar(&form.QtyTotal, "qty", "1", "portions available")
	cmd.Flags().StringVar(&form.ExpiresAt, "expires", "", "expiry, \"2006-01-02 15:04\"")
	cmd.Flags().StringVar(&form.Description, "description", "", "offer description")
	cmd.Flags().StringVar(&form.Category, "category", "", "offer category")
	cmd.Flags().StringVar(&photoPath, "photo", "", "photo file to upload")
	cmd.Flags().IntVar(&inMinutes, "in", 0, "expire N minutes from now")
	cmd.Flags().StringVar(&eodClock, "eod", "", "expire at HH:MM today, or tomorrow if already passed")
	cmd.Flags().BoolVar(&atClose, "at-close", false, "expire at the restaurant's closing time")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("price")
	cmd.MarkFlagsMutuallyExclusive("expires", "in", "eod", "at-close")
	return cmd
}

func newMerchantExportCommand(a *app) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download this restaurant's offers as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.c.Merchant()
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = m.DefaultCSVFilename()
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			defer f.Close()
			if err := m.ExportCSV(cmd.Context(), f); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default foody_offers_<id>.csv)")
	return cmd
}

func newMerchantDashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show offer statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.c.Merchant()
			if err != nil {
				return err
			}
			stats, res, err := m.Dashboard(cmd.Context())
			if err != nil {
				return fmt.Errorf("dashboard: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "active offers:  %d\n", stats.ActiveOffers)
			fmt.Fprintf(out, "portions left:  %d\n", stats.QtyLeft)
			fmt.Fprintf(out, "avg discount:   %d%%\n", stats.AvgDiscountPercent)
			if res.Source == merchant.SourceFallback {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: stats computed from the filtered global list")
			}
			return nil
		},
	}
}
