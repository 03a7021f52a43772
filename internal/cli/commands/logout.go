package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var envName string
	var all bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Long: `End the current session.

The server-side invalidation is best-effort: local credentials are always
cleared, even when the server is unreachable. With --all, every session
belonging to this user is invalidated server-side as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd.Context(), envName, all)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")
	cmd.Flags().BoolVar(&all, "all", false, "Invalidate every session for this user, not just this one")

	return cmd
}

func runLogout(ctx context.Context, envName string, all bool) error {
	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	sess, _, err := newSession(env)
	if err != nil {
		return err
	}

	if all {
		if err := sess.LogoutAll(ctx); err != nil {
			// Local state is already cleared; only the server call failed.
			fmt.Printf("⚠ Could not invalidate other sessions: %v\n", err)
			fmt.Println("✓ Logged out locally.")
			return nil
		}
		fmt.Println("✓ Logged out everywhere.")
		return nil
	}

	if err := sess.Logout(ctx); err != nil {
		return err
	}

	fmt.Println("✓ Logged out.")
	return nil
}
