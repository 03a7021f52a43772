package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gearbase-dev/gearbase/internal/cli/catalog"
)

// NewCategoriesCmd creates the categories command
func NewCategoriesCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(cmd.Context(), envName)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")

	return cmd
}

func runCategories(ctx context.Context, envName string) error {
	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	_, api, err := newSession(env)
	if err != nil {
		return err
	}

	categories, err := catalog.New(api).Categories(ctx)
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	fmt.Fprintln(w, "──\t────")
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Name)
	}
	w.Flush()

	return nil
}
