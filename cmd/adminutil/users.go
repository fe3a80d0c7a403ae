package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sudo-init-do/stringr/internal/auth"
	"github.com/sudo-init-do/stringr/internal/stringer"
)

func newAdminCmd(e *env, use string, admin bool) *cobra.Command {
	verb := "Grant"
	if !admin {
		verb = "Revoke"
	}
	return &cobra.Command{
		Use:   use + " <email>",
		Short: verb + " admin rights for the account with this email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.ToLower(strings.TrimSpace(args[0]))
			if err := auth.NewPGStore(e.pool).SetAdmin(cmd.Context(), email, admin); err != nil {
				return fmt.Errorf("%s %s: %w", use, email, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: is_admin=%t\n", email, admin)
			return nil
		},
	}
}

func newSuspendCmd(e *env, use string, suspended bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <stringer-id>",
		Short: "Set the suspended flag of a stringer to " + fmt.Sprint(suspended),
		Args: cobra.MatchAll(cobra.ExactArgs(1), func(_ *cobra.Command, args []string) error {
			if _, err := uuid.Parse(args[0]); err != nil {
				return fmt.Errorf("invalid stringer id %q", args[0])
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stringer.NewPGStore(e.pool).SetSuspended(cmd.Context(), args[0], suspended); err != nil {
				return fmt.Errorf("%s %s: %w", use, args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: suspended=%t\n", args[0], suspended)
			return nil
		},
	}
}
