package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/gearbase-dev/gearbase/internal/cli/session"
)

// NewKeepaliveCmd creates the keepalive command
func NewKeepaliveCmd() *cobra.Command {
	var envName, schedule string

	cmd := &cobra.Command{
		Use:   "keepalive",
		Short: "Renew the session on a schedule until interrupted",
		Long: `Renew the session on a schedule until interrupted.

Useful on build agents that hold a session across long pipelines. The
schedule is a standard 5-field cron expression; the default renews every
ten minutes. The command exits when a renewal is rejected, since that means
the session is gone server-side.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeepalive(cmd.Context(), envName, schedule)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")
	cmd.Flags().StringVar(&schedule, "schedule", "*/10 * * * *", "Cron schedule for renewals")

	return cmd
}

func runKeepalive(ctx context.Context, envName, schedule string) error {
	// Parse cron expression (standard 5-field format: minute hour day-of-month month day-of-week)
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid schedule '%s': %w", schedule, err)
	}

	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	sess, _, err := newSession(env)
	if err != nil {
		return err
	}

	// Renew once up front so a dead session fails fast.
	if err := sess.Renew(ctx); err != nil {
		return fmt.Errorf("failed to renew session: %w", err)
	}
	fmt.Printf("✓ Session renewed. Next renewal at %s\n", sched.Next(time.Now()).Format(time.RFC3339))

	for {
		next := sched.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := sess.Renew(ctx); err != nil {
			if errors.Is(err, session.ErrNotAuthenticated) {
				return fmt.Errorf("session was rejected during renewal; run 'gearbase login' to start a new one")
			}
			return fmt.Errorf("failed to renew session: %w", err)
		}
		fmt.Printf("✓ Session renewed at %s\n", time.Now().Format(time.RFC3339))
	}
}
