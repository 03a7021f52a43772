package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gearbase-dev/gearbase/internal/cli/session"
)

var validate = validator.New()

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password, envName string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a Gearbase environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), email, password, envName)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set GEARBASE_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set GEARBASE_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")

	return cmd
}

func runLogin(ctx context.Context, email, password, envName string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("GEARBASE_EMAIL")
	}
	if password == "" {
		password = os.Getenv("GEARBASE_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or GEARBASE_EMAIL env var)")
	}

	// The session layer sends credentials as-is; format checks happen here.
	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("'%s' is not a valid email address", email)
	}

	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or GEARBASE_PASSWORD env var)")
		}
	}

	sess, _, err := newSession(env)
	if err != nil {
		return err
	}

	fmt.Printf("Logging in to %s (%s)...\n", env.Name, env.URL)

	user, err := sess.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s (%s)\n", user.Name(), user.Email())
	if user.Role() == session.RoleAdmin {
		fmt.Println("  Role: Admin")
	}

	return nil
}
