package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(cfg *cliConfig) *cobra.Command {
	var email, firstName, lastName, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a gallery account and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := newAPIClient(cfg).register(context.Background(), email, firstName, lastName, password)
			if err != nil {
				return err
			}

			cfg.Token = payload.Token
			cfg.UserID = payload.Account.ID
			if err := saveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("Registered %s\n", payload.Account.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCmd(cfg *cliConfig) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := newAPIClient(cfg).login(context.Background(), email, password)
			if err != nil {
				return err
			}

			cfg.Token = payload.Token
			cfg.UserID = payload.Account.ID
			if err := saveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("Logged in as %s\n", payload.Account.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
