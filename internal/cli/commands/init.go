package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gearbase-dev/gearbase/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <url>",
		Short: "Init a gearbase.json pointing at a catalog API",
		Args:  cobra.ExactArgs(1),
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	url := strings.TrimRight(args[0], "/")
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Println("Found existing gearbase.json")
	} else {
		cfg = &config.Config{
			Environments: []config.Environment{},
		}
		isNewConfig = true
	}

	for _, env := range cfg.Environments {
		if env.URL == url {
			fmt.Printf("Environment with URL %s already exists in gearbase.json\n", url)
			return nil
		}
	}

	name := "production"
	if len(cfg.Environments) > 0 {
		name = fmt.Sprintf("env-%d", len(cfg.Environments)+1)
	}

	cfg.Environments = append(cfg.Environments, config.Environment{
		Name: name,
		URL:  url,
	})

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Printf("✓ Created ./gearbase.json with environment %s (%s)\n", name, url)
	} else {
		fmt.Printf("✓ Added environment %s (%s) to ./gearbase.json\n", name, url)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'gearbase login' to authenticate")
	fmt.Println("  2. Run 'gearbase dashboard' to check the catalog")

	return nil
}
