package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/domain"
)

type statusOutput struct {
	Session      dto.SessionView       `json:"session"`
	Banner       *dto.BannerResponse   `json:"banner,omitempty"`
	Subscription *dto.SubscriptionView `json:"subscription,omitempty"`
}

func printBanner(w io.Writer, b dto.BannerResponse) {
	if b.Banner.Render {
		printf(w, "  Banner:    %s %s", b.Banner.Icon, b.Banner.Headline)
		if b.Banner.Subtext != "" {
			printf(w, " - %s", b.Banner.Subtext)
		}
		printf(w, "\n")
	}
	if b.Overlay != nil {
		printf(w, "  BLOQUEADO: %s\n", b.Overlay.Headline)
		for _, act := range b.Overlay.Actions {
			if act.Href != "" {
				printf(w, "    %s: %s\n", act.Label, act.Href)
			}
		}
	}
}

func printSubscription(w io.Writer, s dto.SubscriptionView) {
	printf(w, "Plan %s [%s]\n", s.Package, s.Status)
	printf(w, "  %s %s: %s\n", s.Card.Icon, s.Card.Title, s.Card.Description)
	if s.Card.ExpiryLabel != "" {
		printf(w, "  %s\n", s.Card.ExpiryLabel)
	}
	for _, l := range s.Limits {
		printf(w, "  %-13s %s\n", l.Label+":", l.Text)
	}
}

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Sesión, banner y suscripción del perfil",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := statusOutput{Session: a.deps.Portal.Session(ctx, a.profile)}
			if out.Session.Authenticated && out.Session.Identity != "super_admin" {
				b, err := a.deps.Portal.Banner(ctx, a.profile)
				if err != nil {
					return fmt.Errorf("banner: %w", err)
				}
				out.Banner = &b
				sub, err := a.deps.Portal.Subscription(ctx, a.profile)
				switch {
				case err == nil:
					out.Subscription = &sub
				case errors.Is(err, domain.ErrEntitlementFetch):
				default:
					return fmt.Errorf("suscripción: %w", err)
				}
			}
			return a.emit(cmd.OutOrStdout(), out, func(w io.Writer) {
				printSession(w, out.Session)
				if out.Banner != nil {
					printBanner(w, *out.Banner)
				}
				if out.Subscription != nil {
					printSubscription(w, *out.Subscription)
				}
			})
		},
	}
}

func (a *app) newNavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "Pestañas visibles del dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.deps.Portal.Navigation(cmd.Context(), a.profile)
			if err != nil {
				return fmt.Errorf("navegación: %w", err)
			}
			return a.emit(cmd.OutOrStdout(), nav, func(w io.Writer) {
				for _, it := range nav.Items {
					printf(w, "%-14s %s\n", it.Label, it.Path)
				}
				if nav.Stale {
					printf(w, "(no se pudo cargar la suscripción; solo módulos siempre activos)\n")
				}
			})
		},
	}
}

func (a *app) newGateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gate <path>",
		Short: "Decisión del gate para una ruta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := a.deps.Portal.Gate(cmd.Context(), a.profile, args[0])
			return a.emit(cmd.OutOrStdout(), g, func(w io.Writer) {
				printf(w, "%s → %s (render: %s)\n", g.Path, g.State, yesNo(g.Render))
				if g.Redirect != "" {
					printf(w, "  Redirect:  %s\n", g.Redirect)
				}
				if g.Overlay != nil {
					printf(w, "  Overlay:   %s\n", g.Overlay.Headline)
				}
			})
		},
	}
}
