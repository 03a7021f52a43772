package envselect

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/gearbase-dev/gearbase/internal/cli/config"
	"github.com/gearbase-dev/gearbase/internal/cli/userconfig"
)

// Resolve determines which environment to use based on the following priority:
// 1. If the name flag is provided, use that environment
// 2. If the user has a selected environment in their local config, use that
// 3. If only one environment in project config, use that
// 4. Otherwise, prompt the user to select one interactively
func Resolve(projectConfig *config.Config, name string) (*config.Environment, error) {
	// Priority 1: Use environment name if provided
	if name != "" {
		env, err := projectConfig.GetEnvironmentByName(name)
		if err != nil {
			return nil, err
		}
		return env, nil
	}

	// Priority 2: Use selected environment from user config
	selected, err := userconfig.GetSelectedEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if selected != "" {
		env, err := projectConfig.GetEnvironmentByName(selected)
		if err != nil {
			// Selected environment no longer exists in project config, clear it and continue
			_ = userconfig.SetSelectedEnvironment("")
		} else {
			return env, nil
		}
	}

	// Priority 3: If only one environment, use it automatically
	if len(projectConfig.Environments) == 1 {
		env := &projectConfig.Environments[0]
		if err := userconfig.SetSelectedEnvironment(env.Name); err != nil {
			// Don't fail if we can't save, just continue
			fmt.Printf("Warning: failed to save selected environment: %v\n", err)
		}
		return env, nil
	}

	// Priority 4: Prompt the user to select an environment
	env, err := PromptSelection(projectConfig)
	if err != nil {
		return nil, err
	}

	if err := userconfig.SetSelectedEnvironment(env.Name); err != nil {
		// Don't fail if we can't save, just continue
		fmt.Printf("Warning: failed to save selected environment: %v\n", err)
	}

	return env, nil
}

// PromptSelection shows an interactive prompt for the user to select an environment
func PromptSelection(projectConfig *config.Config) (*config.Environment, error) {
	if len(projectConfig.Environments) == 0 {
		return nil, fmt.Errorf("no environments configured in gearbase.json")
	}

	type envOption struct {
		Label string
		Env   *config.Environment
	}

	options := make([]envOption, len(projectConfig.Environments))
	for i := range projectConfig.Environments {
		env := &projectConfig.Environments[i]
		options[i] = envOption{
			Label: fmt.Sprintf("%s (%s)", env.Name, env.URL),
			Env:   env,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select an environment",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("environment selection cancelled: %w", err)
	}

	return options[index].Env, nil
}
