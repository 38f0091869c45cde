// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"

	"chatty/cli/internal/authform"
)

var signupEmail string

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	Long: `The signup command creates a new account with your email and password and
signs you in. It is the same form as 'chatty login --signup'.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthForm(cmd, authform.SignUp, signupEmail)
	},
}

func init() {
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Email address to prefill")
	rootCmd.AddCommand(signupCmd)
}
