package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gearbase-dev/gearbase/internal/cli/catalog"
)

// NewBrandsCmd creates the brands command
func NewBrandsCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "brands",
		Short: "List catalog brands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrands(cmd.Context(), envName)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")

	return cmd
}

func runBrands(ctx context.Context, envName string) error {
	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	_, api, err := newSession(env)
	if err != nil {
		return err
	}

	brands, err := catalog.New(api).Brands(ctx)
	if err != nil {
		return err
	}

	if len(brands) == 0 {
		fmt.Println("No brands found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	fmt.Fprintln(w, "──\t────")
	for _, b := range brands {
		fmt.Fprintf(w, "%s\t%s\n", b.ID, b.Name)
	}
	w.Flush()

	return nil
}
