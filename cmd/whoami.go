package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eldrige/skillsassess/internal/auth"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user from the credentials file",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := resolveCredentials(cmd)
		if errors.Is(err, auth.ErrNotSignedIn) {
			fmt.Println("Not signed in.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Println("Name: ", creds.User.Name)
		fmt.Println("Email:", creds.User.Email)
		if id, err := creds.UserID(); err == nil {
			fmt.Println("ID:   ", id)
		}
		return nil
	},
}
