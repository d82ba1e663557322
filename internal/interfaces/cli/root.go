// Package cli implementa portalctl: un perfil de navegador en la terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-portal/internal/application/admin"
	"github.com/jhoicas/erp-portal/internal/application/auth"
	"github.com/jhoicas/erp-portal/internal/application/entitlement"
	"github.com/jhoicas/erp-portal/internal/application/monitor"
	"github.com/jhoicas/erp-portal/internal/application/portal"
	"github.com/jhoicas/erp-portal/internal/domain/repository"
	"github.com/jhoicas/erp-portal/pkg/logger"
)

// DefaultProfile perfil usado cuando no se indica --profile.
const DefaultProfile = "default"

// Deps dependencias ya construidas de los comandos.
type Deps struct {
	Auth         *auth.AuthUseCase
	Portal       *portal.PortalUseCase
	Bookings     *admin.BookingUseCase
	Resolver     *entitlement.Resolver
	Stores       repository.ProfileStores
	Log          *logger.Logger
	PollInterval time.Duration
	Now          func() time.Time
	Ticker       monitor.TickerFunc
}

// Builder construye las dependencias una vez parseados los flags.
type Builder func() (*Deps, error)

type app struct {
	build   Builder
	deps    *Deps
	profile string
	asJSON  bool
}

// NewRootCmd crea el comando raíz de portalctl.
func NewRootCmd(build Builder) *cobra.Command {
	a := &app{build: build}
	root := &cobra.Command{
		Use:   "portalctl",
		Short: "portalctl: sesión, entitlements y gate del portal POS + ERP",
		Long:  "portalctl inicia sesión contra el backend POS + ERP, muestra módulos, banners y decisiones del gate, y vigila el vencimiento de cuentas demo.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			deps, err := a.build()
			if err != nil {
				return err
			}
			if deps.Log == nil {
				deps.Log = logger.Nop()
			}
			a.deps = deps
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.profile, "profile", DefaultProfile, "Perfil de navegador (directorio de sesiones)")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "Salida JSON")

	root.AddCommand(
		a.newLoginCmd(),
		a.newDemoLoginCmd(),
		a.newLogoutCmd(),
		a.newStatusCmd(),
		a.newNavCmd(),
		a.newGateCmd(),
		a.newWatchCmd(),
		a.newBookingsCmd(),
		a.newPackagesCmd(),
	)
	return root
}

// emit escribe v como JSON o con la función de texto.
func (a *app) emit(w io.Writer, v any, text func(io.Writer)) error {
	if a.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
