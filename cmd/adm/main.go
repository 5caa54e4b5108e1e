// Package main provides the main entry point for the eco atlas admin CLI tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ecoatlas/cmd/adm/commands"
	"ecoatlas/internal/config"
	"ecoatlas/internal/observability"

	"github.com/spf13/cobra"
)

func newRootCommand(env *commands.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "adm",
		Short: "Eco Atlas Administration Tool",
		Long: `Eco Atlas Administration Tool

Provides commands for schema migrations, sample data, idea moderation and
health checks.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Printf("Error showing help: %v\n", err)
			}
		},
	}

	rootCmd.AddCommand(commands.DatabaseCommands(env))
	rootCmd.AddCommand(commands.SeedCommand(env))
	rootCmd.AddCommand(commands.IdeaCommands(env))
	rootCmd.AddCommand(commands.HealthCommand(env))

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if os.Getenv(config.ConfigFileEnv) == "" {
		for _, path := range []string{config.DefaultConfigFile, "../../" + config.DefaultConfigFile} {
			if _, err := os.Stat(path); err == nil {
				if err := os.Setenv(config.ConfigFileEnv, path); err != nil {
					fmt.Fprintf(os.Stderr, "Failed to set %s: %v\n", config.ConfigFileEnv, err)
					os.Exit(1)
				}
				break
			}
		}
	}

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// The admin tool only reports errors and never exports telemetry.
	cfg.Server.LogLevel = "error"
	cfg.OpenTelemetry.EnableTracing = false
	cfg.OpenTelemetry.EnableMetrics = false

	telemetry, err := observability.SetupObservability(&cfg.OpenTelemetry, "eco-admin", cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}

	env := commands.NewEnv(cfg, telemetry.Logger)
	execErr := newRootCommand(env).ExecuteContext(ctx)

	if err := env.Close(); err != nil {
		telemetry.Logger.Warn(ctx, "Failed to close database connection", map[string]interface{}{"error": err.Error()})
	}
	_ = telemetry.Shutdown(context.Background())

	if execErr != nil {
		stop()
		os.Exit(1)
	}
}
