package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/application/portal"
)

// readSecret lee una línea de stdin cuando el flag viene vacío.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	printf(cmd.ErrOrStderr(), "%s: ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("leer %s: %w", prompt, err)
	}
	return strings.TrimSpace(line), nil
}

func printSession(w io.Writer, v dto.SessionView) {
	if !v.Authenticated {
		printf(w, "Sin sesión\n")
		if v.Redirect != "" {
			printf(w, "  Login:     %s\n", v.Redirect)
		}
		return
	}
	printf(w, "Sesión: %s (%s)\n", v.Name, v.Identity)
	printf(w, "  Email:     %s\n", v.Email)
	if v.TenantName != "" {
		printf(w, "  Tenant:    %s\n", v.TenantName)
	}
	if v.Role != "" {
		printf(w, "  Rol:       %s\n", v.Role)
	}
	if v.ExpiresAt != nil {
		printf(w, "  Expira:    %s\n", v.ExpiresAt.Format("2006-01-02 15:04 MST"))
	}
	printf(w, "  Destino:   %s\n", v.Redirect)
}

func (a *app) newLoginCmd() *cobra.Command {
	var identifier, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión (super-admin o usuario de tenant)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := readSecret(cmd, "password")
				if err != nil {
					return err
				}
				password = p
			}
			out, err := a.deps.Auth.Login(cmd.Context(), a.profile, dto.PortalLoginRequest{Identifier: identifier, Password: password})
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			v := portal.SessionView(out.Session)
			return a.emit(cmd.OutOrStdout(), v, func(w io.Writer) { printSession(w, v) })
		},
	}
	cmd.Flags().StringVar(&identifier, "identifier", "", "Email o usuario")
	cmd.Flags().StringVar(&password, "password", "", "Password (se pide por stdin si se omite)")
	_ = cmd.MarkFlagRequired("identifier")
	return cmd
}

func (a *app) newDemoLoginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "demo-login",
		Short: "Iniciar sesión con una cuenta demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := readSecret(cmd, "password")
				if err != nil {
					return err
				}
				password = p
			}
			out, err := a.deps.Auth.DemoLogin(cmd.Context(), a.profile, dto.PortalDemoLoginRequest{Username: username, Password: password})
			if err != nil {
				return fmt.Errorf("demo login: %w", err)
			}
			v := portal.SessionView(out.Session)
			return a.emit(cmd.OutOrStdout(), v, func(w io.Writer) { printSession(w, v) })
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Usuario demo")
	cmd.Flags().StringVar(&password, "password", "", "Password (se pide por stdin si se omite)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar sesión y limpiar el perfil",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.deps.Auth.Logout(cmd.Context(), a.profile); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			printf(cmd.OutOrStdout(), "Sesión cerrada (perfil %s)\n", a.profile)
			return nil
		},
	}
}
