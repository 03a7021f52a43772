package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(cmd.Context(), envName)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")

	return cmd
}

func runWhoami(ctx context.Context, envName string) error {
	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	sess, _, err := newSession(env)
	if err != nil {
		return err
	}

	if err := sess.Restore(ctx); err != nil {
		return err
	}

	if !sess.IsLoggedIn() {
		fmt.Printf("Not logged in to %s. Run 'gearbase login' to authenticate.\n", env.Name)
		return nil
	}

	user := sess.CurrentUser()
	fmt.Printf("Logged in to %s (%s)\n", env.Name, env.URL)
	fmt.Printf("  User:  %s <%s>\n", user.Name(), user.Email())
	fmt.Printf("  Role:  %s\n", user.Role())
	if sess.IsAdmin() {
		fmt.Println("  Admin: yes")
	}

	return nil
}
