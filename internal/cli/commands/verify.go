package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check whether the stored session is still valid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), envName)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")

	return cmd
}

func runVerify(ctx context.Context, envName string) error {
	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	sess, _, err := newSession(env)
	if err != nil {
		return err
	}

	user, err := sess.Verify(ctx)
	if err != nil {
		return fmt.Errorf("session is not valid: %w", err)
	}

	fmt.Printf("✓ Session is valid for %s <%s>\n", user.Name(), user.Email())
	return nil
}
