package commands

import (
	"fmt"

	"ecoatlas/internal/database"
	"ecoatlas/internal/services"
	contextutils "ecoatlas/internal/utils"

	"github.com/spf13/cobra"
)

// DatabaseCommands returns the database management commands
func DatabaseCommands(env *Env) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
		Long: `Database management commands for the eco atlas.

Available commands:
  migrate   - Apply pending schema migrations
  rollback  - Revert every applied migration
  stats     - Show catalogue statistics`,
	}

	dbCmd.AddCommand(migrateCmd(env))
	dbCmd.AddCommand(rollbackCmd(env))
	dbCmd.AddCommand(statsCmd(env))

	return dbCmd
}

func migrateCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			env.Logger.Info(ctx, "Running migrations", map[string]interface{}{"database_url": maskDatabaseURL(env.Config.Database.ConnectionString())})

			status, err := database.NewManager(env.Logger).RunMigrations(ctx, env.Config.Database)
			if err != nil {
				return contextutils.WrapError(err, "failed to run migrations")
			}

			files, err := database.MigrationFiles()
			if err != nil {
				return contextutils.WrapError(err, "failed to list migrations")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema at version %d (dirty=%t, %d migration files embedded)\n", status.Version, status.Dirty, len(files))
			return nil
		},
	}
}

func rollbackCmd(env *Env) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Revert every applied migration",
		Long:  `Revert every applied migration. This drops all problems, solutions and ideas.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirm {
				return contextutils.NewValidationError("rollback deletes all data; pass --yes to confirm")
			}
			if err := database.NewManager(env.Logger).RollbackMigrations(cmd.Context(), env.Config.Database); err != nil {
				return contextutils.WrapError(err, "failed to roll back migrations")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All migrations rolled back")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm that all data will be dropped")
	return cmd
}

func statsCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalogue statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := env.DB(ctx)
			if err != nil {
				return contextutils.WrapError(err, "failed to connect to database")
			}

			stats, err := services.NewStatsService(db, env.Logger).GetStats(ctx)
			if err != nil {
				return contextutils.WrapError(err, "failed to get statistics")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, getDatabaseInfo(ctx, db))
			fmt.Fprintf(out, "%-10s %d\n", "Problems", stats.Problems)
			fmt.Fprintf(out, "%-10s %d\n", "Solutions", stats.Solutions)
			fmt.Fprintf(out, "%-10s %d\n", "Ideas", stats.Ideas)
			fmt.Fprintf(out, "%-10s %d\n", "Votes", stats.Votes)
			return nil
		},
	}
}
