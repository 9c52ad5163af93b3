package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/unowned-ai/aoa/pkg/journal"

	"github.com/spf13/cobra"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and remember it on this machine",
	Long: `Creates a user on the AOA API without a first log and stores it locally, replacing any
previously stored user. To sign up together with a check-in use
'aoa checkin --attention ... --name ... --email ...'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		tz, _ := cmd.Flags().GetString("timezone")
		name, email = strings.TrimSpace(name), strings.TrimSpace(email)
		if name == "" || email == "" {
			return errors.New("both --name and --email are required")
		}
		if tz == "" {
			tz = journal.LocalTimezone()
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		user, err := client.CreateUser(cmd.Context(), journal.UserCreate{Email: email, Name: name, Timezone: tz})
		if err != nil {
			return fmt.Errorf("failed to sign up: %w", err)
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()
		if err := store.SaveUser(cmd.Context(), user); err != nil {
			return err
		}

		printUser(cmd.OutOrStdout(), user)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the user remembered on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		user, err := store.LoadUser(cmd.Context())
		if err != nil {
			return err
		}
		if user == nil {
			return errNoStoredUser
		}

		refresh, _ := cmd.Flags().GetBool("refresh")
		if refresh {
			client, err := newClient()
			if err != nil {
				return err
			}
			fresh, err := client.GetUser(cmd.Context(), user.ID)
			if err != nil {
				return fmt.Errorf("failed to refresh user %d: %w", user.ID, err)
			}
			if err := store.SaveUser(cmd.Context(), fresh); err != nil {
				return err
			}
			user = &fresh
		}

		printUser(cmd.OutOrStdout(), *user)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the user remembered on this machine",
	Long:  `Removes the stored user. The account and its logs stay on the API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := store.ClearUser(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Forgot the stored user.")
		return nil
	},
}

func initUsersCmds() {
	signupCmd.Flags().String("name", "", "Your name (required)")
	signupCmd.Flags().String("email", "", "Your email (required)")
	signupCmd.Flags().String("timezone", "", "IANA timezone (defaults to this machine's)")
	signupCmd.MarkFlagRequired("name")
	signupCmd.MarkFlagRequired("email")

	whoamiCmd.Flags().Bool("refresh", false, "Re-read the user from the API and update the stored copy")

	rootCmd.AddCommand(signupCmd, whoamiCmd, logoutCmd)
}
