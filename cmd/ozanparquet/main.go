// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/skursatToklucu/ozanparquet/internal/app"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "ozanparquet",
	Short:         "Ozan Parke storefront and admin console",
	Long:          `ozanparquet serves the Ozan Parke flooring catalog, quote and contact forms, and the admin console.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cfgFile)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration commands",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Run all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunMigrations(cfgFile, app.MigrateUp, 0, cmd.OutOrStdout())
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [N]",
	Short: "Rollback N migrations (default: 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			steps = n
		}
		return app.RunMigrations(cfgFile, app.MigrateDown, steps, cmd.OutOrStdout())
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunMigrations(cfgFile, app.MigrateStatus, 0, cmd.OutOrStdout())
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin account commands",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create EMAIL [PASSWORD]",
	Short: "Create an admin account",
	Long: `Create an admin console account. If no password is given, a random
one is generated and printed once.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		var password string
		if len(args) > 1 {
			password = args[1]
		}
		return app.CreateAdmin(cfgFile, args[0], name, password, cmd.OutOrStdout())
	},
}

var adminResetPasswordCmd = &cobra.Command{
	Use:   "reset-password EMAIL NEW_PASSWORD",
	Short: "Reset an admin password and unlock the account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.ResetAdminPassword(cfgFile, args[0], args[1], cmd.OutOrStdout())
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed FILE",
	Short: "Load catalog content from a YAML file",
	Long: `Load categories, products, blog posts, gallery items, testimonials,
FAQ items and site settings from a YAML file. Existing slugs are skipped;
settings are overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Seed(cfgFile, args[0], cmd.OutOrStdout())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("validation error: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration (sensitive values masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		return cfg.WriteMasked(cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		app.PrintVersion()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: /etc/ozanparquet/config.yaml or ./config.yaml)")

	adminCreateCmd.Flags().String("name", "Yönetici", "display name of the account")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(seedCmd)

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)

	adminCmd.AddCommand(adminCreateCmd)
	adminCmd.AddCommand(adminResetPasswordCmd)
	rootCmd.AddCommand(adminCmd)

	configCmd.AddCommand(configCheckCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
