package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-portal/internal/application/presenter"
	"github.com/jhoicas/erp-portal/internal/domain/access"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
)

func printBooking(w io.Writer, b entity.Booking) {
	created := ""
	if !b.CreatedAt.IsZero() {
		created = b.CreatedAt.Format("2006-01-02")
	}
	printf(w, "%-26s %-9s %-24s %-28s %s\n", b.ID, b.Status, b.CompanyName, b.Email, created)
}

func (a *app) adminSession(cmd *cobra.Command) (entity.Session, error) {
	return a.deps.Auth.Current(cmd.Context(), a.profile, access.FamilyAdmin)
}

func (a *app) newBookingsCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Solicitudes de alta (super-admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.adminSession(cmd)
			if err != nil {
				return fmt.Errorf("bookings: %w", err)
			}
			list, err := a.deps.Bookings.List(cmd.Context(), s, entity.BookingStatus(status))
			if err != nil {
				return fmt.Errorf("bookings: %w", err)
			}
			return a.emit(cmd.OutOrStdout(), list, func(w io.Writer) {
				for _, b := range list {
					printBooking(w, b)
				}
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filtrar por estado (pending, approved, rejected)")

	action := func(use, short string, run func(cmd *cobra.Command, s entity.Session, id string) (entity.Booking, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.adminSession(cmd)
				if err != nil {
					return fmt.Errorf("%s: %w", use, err)
				}
				b, err := run(cmd, s, args[0])
				if err != nil {
					return fmt.Errorf("%s: %w", use, err)
				}
				return a.emit(cmd.OutOrStdout(), b, func(w io.Writer) { printBooking(w, b) })
			},
		}
	}

	var reason string
	reject := action("reject", "Rechazar una solicitud", func(cmd *cobra.Command, s entity.Session, id string) (entity.Booking, error) {
		return a.deps.Bookings.Reject(cmd.Context(), s, id, reason)
	})
	reject.Flags().StringVar(&reason, "reason", "", "Motivo del rechazo")

	cmd.AddCommand(
		action("approve", "Aprobar una solicitud (crea tenant y usuario)", func(cmd *cobra.Command, s entity.Session, id string) (entity.Booking, error) {
			return a.deps.Bookings.Approve(cmd.Context(), s, id)
		}),
		reject,
		action("revert", "Revertir una solicitud a pending", func(cmd *cobra.Command, s entity.Session, id string) (entity.Booking, error) {
			return a.deps.Bookings.Revert(cmd.Context(), s, id)
		}),
	)
	return cmd
}

func (a *app) newPackagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "Planes publicados",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.deps.Bookings.Packages(cmd.Context())
			if err != nil {
				return fmt.Errorf("packages: %w", err)
			}
			return a.emit(cmd.OutOrStdout(), list, func(w io.Writer) {
				for _, p := range list {
					printf(w, "%-20s %10s/%s\n", p.Name, p.Price.StringFixed(2), p.BillingCycle)
					for _, l := range presenter.LimitLabels(p.Limits) {
						printf(w, "  %-13s %s\n", l.Label+":", l.Text)
					}
				}
			})
		},
	}
}
