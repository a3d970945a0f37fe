// Package cli - командный интерфейс к бекенду FOODY.
//
// Разбит на два поддерева: offers/reserve для покупателя и merchant
// для ресторана. Контроллеры и API клиент собираются контейнером,
// команды занимаются только флагами и выводом.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Haleralex/foodyhub/internal/config"
	"github.com/Haleralex/foodyhub/internal/container"
)

// app держит разделяемое состояние команд одного запуска.
type app struct {
	c *container.Container

	// значения persistent-флагов
	apiBase  string
	logLevel string
	timeout  time.Duration
}

// NewRootCommand собирает дерево команд foodyctl.
func NewRootCommand(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "foodyctl",
		Short:         "Food discount marketplace client",
		Long:          "foodyctl drives the FOODY backend from the terminal:\nbrowse and reserve discounted offers, or manage a restaurant.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.apiBase, "api", "", "backend base URL (overrides FOODY_API)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 30*time.Second, "request timeout")

	root.AddCommand(
		newOffersCommand(a),
		newReserveCommand(a),
		newMerchantCommand(a),
	)
	return root
}

// init создаёт контейнер после разбора флагов.
func (a *app) init() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.apiBase != "" {
		cfg.API.BaseURL = a.apiBase
	}
	cfg.API.Timeout = a.timeout
	cfg.Log.Level = a.logLevel
	cfg.Log.Format = "text"

	a.c = container.New(cfg)
	return nil
}
