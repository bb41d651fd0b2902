package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
	"github.com/librarydesk/console/internal/infrastructure/backend"
	"github.com/librarydesk/console/internal/infrastructure/config"
)

// readPassword is replaced in tests to avoid touching the terminal.
var readPassword = term.ReadPassword

func newLoginCmd() *cobra.Command {
	var backendURL, username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials against the backend and print the landing route",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadBackend(cmd.Context())
			if err != nil {
				return err
			}
			if backendURL != "" {
				cfg.BaseURL = backendURL
			}
			client, err := backend.NewClient(backend.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}, zerolog.Nop())
			if err != nil {
				return err
			}
			return runLogin(cmd, backend.NewAuthService(client), username)
		},
	}

	cmd.Flags().StringVar(&backendURL, "backend", "", "library backend base URL (overrides BACKEND_BASE_URL)")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when empty)")
	return cmd
}

func runLogin(cmd *cobra.Command, auth ports.AuthAPI, username string) error {
	out := cmd.OutOrStdout()
	if username == "" {
		u, err := prompt(bufio.NewReader(cmd.InOrStdin()), out, "Username: ")
		if err != nil {
			return err
		}
		username = u
	}

	fmt.Fprint(out, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	user, err := auth.Login(cmd.Context(), username, string(pw))
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	role, err := domain.ParseRole(user.Role)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "signed in as %s (%s), landing route %s\n", user.Username, role, role.LandingRoute())
	return nil
}

func prompt(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
