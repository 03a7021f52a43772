package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewSessionsCmd creates the sessions command
func NewSessionsCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List the active sessions for this user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(cmd.Context(), envName)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")

	return cmd
}

func runSessions(ctx context.Context, envName string) error {
	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	sess, _, err := newSession(env)
	if err != nil {
		return err
	}

	sessions, err := sess.Sessions(ctx)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No active sessions found.")
		return nil
	}

	fmt.Printf("Active sessions on %s:\n\n", env.Name)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED AT\tLAST ACTIVITY\tIP ADDRESS\tCLIENT")
	fmt.Fprintln(w, "──\t──────────\t─────────────\t──────────\t──────")

	for _, s := range sessions {
		id := s.ID
		if s.Current {
			id += " (current)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			id,
			s.CreatedAt,
			s.LastActivity,
			s.IPAddress,
			s.UserAgent,
		)
	}

	w.Flush()

	return nil
}
