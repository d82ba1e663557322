package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-portal/internal/application/monitor"
	"github.com/jhoicas/erp-portal/internal/application/presenter"
	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/domain/access"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
)

func (a *app) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Vigilar el countdown demo o los días restantes hasta Ctrl-C",
		Long:  "watch recalcula el estado cada intervalo; al vencer una cuenta demo limpia la sesión y termina.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.deps.Auth.Current(ctx, a.profile, access.FamilyCustomer)
			if err != nil {
				return fmt.Errorf("watch: %w", err)
			}

			var sub *entity.Subscription
			if !s.IsDemo() && !s.IsSuperAdmin() {
				snap := a.deps.Resolver.Resolve(ctx, s)
				if errors.Is(snap.Err, domain.ErrAuth) {
					if err := a.deps.Auth.Invalidate(ctx, a.profile, s, snap.Err); err != nil {
						a.deps.Log.Error().Err(err).Str("profile", a.profile).Msg("no se pudo limpiar la sesión rechazada")
					}
					return fmt.Errorf("watch: %w", snap.Err)
				}
				sub = snap.Subscription
			}

			w := cmd.OutOrStdout()
			m := monitor.New(monitor.Config{
				Store:        a.deps.Stores.Profile(a.profile),
				Session:      s,
				Subscription: sub,
				Interval:     a.deps.PollInterval,
				Now:          a.deps.Now,
				Ticker:       a.deps.Ticker,
				Logger:       a.deps.Log,
				OnUpdate: func(u monitor.Update) {
					ts := u.At.Format("15:04")
					switch {
					case u.Changed:
						printf(w, "[%s] la sesión cambió; fin\n", ts)
					case u.ForcedLogout:
						printf(w, "[%s] demo expirada; sesión cerrada → %s\n", ts, access.PathDemoLogin)
					case u.Countdown != nil:
						printf(w, "[%s] demo: %s remaining\n", ts, presenter.CountdownText(*u.Countdown))
					case u.State != nil:
						b := presenter.Banner(u.Level, *u.State)
						if b.Render {
							printf(w, "[%s] %s\n", ts, b.Headline)
						} else {
							printf(w, "[%s] %d días restantes\n", ts, u.State.DaysRemaining)
						}
					default:
						printf(w, "[%s] sin vencimiento\n", ts)
					}
				},
			})
			return m.Run(ctx)
		},
	}
}
