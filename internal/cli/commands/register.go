package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var envName, email, name, password, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new user account (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd.Context(), envName, email, name, password, role)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")
	cmd.Flags().StringVar(&email, "email", "", "Email address for the new user")
	cmd.Flags().StringVar(&name, "name", "", "Display name for the new user")
	cmd.Flags().StringVar(&password, "password", "", "Initial password for the new user")
	cmd.Flags().StringVar(&role, "role", "editor", "Role for the new user")

	return cmd
}

func runRegister(ctx context.Context, envName, email, name, password, role string) error {
	if email == "" || name == "" || password == "" {
		return fmt.Errorf("--email, --name and --password are required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("'%s' is not a valid email address", email)
	}

	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	sess, _, err := newSession(env)
	if err != nil {
		return err
	}

	// The server enforces the privilege; this check just fails earlier with
	// a clearer message.
	if err := sess.Restore(ctx); err != nil {
		return err
	}
	if !sess.IsAdmin() {
		return fmt.Errorf("registering users requires an admin session")
	}

	user, err := sess.Register(ctx, map[string]any{
		"email":    email,
		"name":     name,
		"password": password,
		"role":     role,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Created user %s <%s> with role %s\n", user.Name(), user.Email(), user.Role())
	return nil
}
