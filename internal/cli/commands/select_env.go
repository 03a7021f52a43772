package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gearbase-dev/gearbase/internal/cli/config"
	"github.com/gearbase-dev/gearbase/internal/cli/envselect"
	"github.com/gearbase-dev/gearbase/internal/cli/userconfig"
)

// NewSelectEnvCmd creates the select-env command
func NewSelectEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select-env [name]",
		Short: "Select the environment to use for commands",
		Long: `Select the environment to use for commands.

If no param is provided, an interactive prompt will be shown.

Examples:
  $ gearbase select-env             # Interactive selection
  $ gearbase select-env production  # Select by name`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			return runSelectEnv(name)
		},
	}

	return cmd
}

func runSelectEnv(name string) error {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'gearbase init' to create a configuration file", err)
	}

	var env *config.Environment

	if name != "" {
		env, err = cfg.GetEnvironmentByName(name)
		if err != nil {
			return err
		}
	} else {
		env, err = envselect.PromptSelection(cfg)
		if err != nil {
			return err
		}
	}

	if err := userconfig.SetSelectedEnvironment(env.Name); err != nil {
		return fmt.Errorf("failed to save selected environment: %w", err)
	}

	fmt.Printf("Selected environment: %s (%s)\n", env.Name, env.URL)
	return nil
}
