package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewRenewCmd creates the renew command
func NewRenewCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "renew",
		Short: "Extend the current session's validity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenew(cmd.Context(), envName)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")

	return cmd
}

func runRenew(ctx context.Context, envName string) error {
	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	sess, _, err := newSession(env)
	if err != nil {
		return err
	}

	if err := sess.Renew(ctx); err != nil {
		return fmt.Errorf("failed to renew session: %w", err)
	}

	fmt.Println("✓ Session renewed.")
	return nil
}
