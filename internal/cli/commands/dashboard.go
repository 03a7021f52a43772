package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gearbase-dev/gearbase/internal/cli/catalog"
)

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd() *cobra.Command {
	var envName string
	var open bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show catalog counts, or open the web dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd.Context(), envName, open)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the web dashboard in the browser instead")

	return cmd
}

func runDashboard(ctx context.Context, envName string, open bool) error {
	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	if open {
		fmt.Printf("Opening dashboard for %s...\nURL: %s\n", env.Name, env.URL)
		if err := openBrowser(env.URL); err != nil {
			return fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, env.URL)
		}
		return nil
	}

	_, api, err := newSession(env)
	if err != nil {
		return err
	}

	counts, err := catalog.New(api).Counts(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Catalog on %s (%s):\n\n", env.Name, env.URL)
	fmt.Printf("  Products:   %d\n", counts.Products)
	fmt.Printf("  Brands:     %d\n", counts.Brands)
	fmt.Printf("  Categories: %d\n", counts.Categories)
	fmt.Printf("  Users:      %d\n", counts.Users)

	return nil
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
