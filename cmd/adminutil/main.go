// Command adminutil runs one-off maintenance against the stringr database.
//
//	adminutil migrate
//	adminutil seed
//	adminutil promote-admin user@example.com
//	adminutil suspend <stringer-id>
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/config"
	"github.com/sudo-init-do/stringr/internal/db"
	"github.com/sudo-init-do/stringr/internal/logging"
)

// env is populated by the root command before any subcommand runs.
type env struct {
	configFile string
	log        *zap.Logger
	pool       *pgxpool.Pool
}

func (e *env) open(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(e.configFile)
	if err != nil {
		return err
	}
	e.log, err = logging.New(cfg.LogLevel, true)
	if err != nil {
		return err
	}
	e.pool, err = db.Connect(cmd.Context(), cfg.DatabaseURL, e.log)
	return err
}

func (e *env) close(*cobra.Command, []string) error {
	if e.pool != nil {
		e.pool.Close()
	}
	if e.log != nil {
		_ = e.log.Sync()
	}
	return nil
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:                "adminutil",
		Short:              "Maintenance commands for the stringr database",
		SilenceUsage:       true,
		PersistentPreRunE:  e.open,
		PersistentPostRunE: e.close,
	}
	root.PersistentFlags().StringVar(&e.configFile, "config", "", "path to a yaml config file")

	root.AddCommand(
		newMigrateCmd(e),
		newSeedCmd(e),
		newAdminCmd(e, "promote-admin", true),
		newAdminCmd(e, "demote-admin", false),
		newSuspendCmd(e, "suspend", true),
		newSuspendCmd(e, "unsuspend", false),
	)
	return root
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return db.Migrate(cmd.Context(), e.pool, e.log)
		},
	}
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
