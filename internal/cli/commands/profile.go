package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewProfileCmd creates the profile command group
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the current user's profile",
	}

	cmd.AddCommand(newProfileUpdateCmd())

	return cmd
}

func newProfileUpdateCmd() *cobra.Command {
	var envName, name, email string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update fields of the current user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileUpdate(cmd.Context(), envName, name, email)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")
	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&email, "email", "", "New email address")

	return cmd
}

func runProfileUpdate(ctx context.Context, envName, name, email string) error {
	fields := map[string]any{}
	if name != "" {
		fields["name"] = name
	}
	if email != "" {
		if err := validate.Var(email, "email"); err != nil {
			return fmt.Errorf("'%s' is not a valid email address", email)
		}
		fields["email"] = email
	}
	if len(fields) == 0 {
		return fmt.Errorf("nothing to update; pass --name and/or --email")
	}

	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	sess, _, err := newSession(env)
	if err != nil {
		return err
	}

	user, err := sess.UpdateProfile(ctx, fields)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Profile updated: %s <%s>\n", user.Name(), user.Email())
	return nil
}
