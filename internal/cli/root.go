package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gearbase-dev/gearbase/internal/cli/commands"
	"github.com/gearbase-dev/gearbase/internal/logger"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "gearbase",
	Short: "Gearbase - Industrial equipment catalog administration",
	Long: `Gearbase CLI - Administer your equipment catalog from the terminal.

Gearbase talks to a remote catalog API with session-based authentication:
log in once, and every command carries the stored session credential.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env files (fails silently if files don't exist)
		_ = godotenv.Load(".env")
		_ = godotenv.Load(".env.local")

		level := os.Getenv("GEARBASE_LOG_LEVEL")
		if level == "" {
			level = "warn"
		}
		logger.Init(level, os.Getenv("GEARBASE_LOG_FORMAT"))
	},
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gearbase version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewSelectEnvCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewVerifyCmd())
	rootCmd.AddCommand(commands.NewRenewCmd())
	rootCmd.AddCommand(commands.NewKeepaliveCmd())
	rootCmd.AddCommand(commands.NewSessionsCmd())
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewProfileCmd())
	rootCmd.AddCommand(commands.NewProductsCmd())
	rootCmd.AddCommand(commands.NewBrandsCmd())
	rootCmd.AddCommand(commands.NewCategoriesCmd())
	rootCmd.AddCommand(commands.NewDashboardCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
