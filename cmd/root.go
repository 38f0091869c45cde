// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Chatty CLI.
// It implements subcommands for signing in and up, inspecting the current
// session, the settings screen, and configuration, using the Cobra CLI
// framework and pterm for terminal output.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion  bool
	flagEndpoint string
	flagTrans    string
	flagVerbose  bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "chatty",
	Short:         "Chatty CLI for signing in to the chat service",
	Long:          `Chatty is a command-line client for the chat service. It signs you in or up, keeps the session in the OS keychain, and shows your account settings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !showVersion {
			return cmd.Help()
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout())
		defer cancel()
		backendVersion, err := a.api.GetVersion(ctx)
		if err != nil {
			a.log.Debug("version lookup failed", "error", err)
			backendVersion = "unknown"
		}
		pterm.Printf("chatty %s\nbackend %s\n", Version, backendVersion)
		return nil
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI and backend version information")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "GraphQL API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagTrans, "transport", "", `Identity transport: "graphql" or "grpc"`)
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}
