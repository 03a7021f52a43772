package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gearbase-dev/gearbase/internal/cli/catalog"
)

// NewProductsCmd creates the products command group
func NewProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage catalog products",
	}

	cmd.AddCommand(newProductsListCmd())
	cmd.AddCommand(newProductsCreateCmd())
	cmd.AddCommand(newProductsDeleteCmd())
	cmd.AddCommand(newProductsShowCmd())
	cmd.AddCommand(newProductsImportCmd())

	return cmd
}

func newProductsListCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all products",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductsList(cmd.Context(), envName)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")

	return cmd
}

func runProductsList(ctx context.Context, envName string) error {
	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	_, api, err := newSession(env)
	if err != nil {
		return err
	}

	products, err := catalog.New(api).Products(ctx)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		fmt.Println("No products found.")
		fmt.Println("\nCreate one with: gearbase products create")
		return nil
	}

	fmt.Printf("Products on %s (%s):\n\n", env.Name, env.URL)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMODEL\tBRAND\tCATEGORY\tFEATURED")
	fmt.Fprintln(w, "──\t────\t─────\t─────\t────────\t────────")

	for _, p := range products {
		featured := ""
		if p.Featured {
			featured = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			p.Name,
			p.Model,
			p.Brand,
			p.Category,
			featured,
		)
	}

	w.Flush()

	return nil
}

func newProductsCreateCmd() *cobra.Command {
	var envName string
	var input catalog.ProductInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new product",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductsCreate(cmd.Context(), envName, input)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")
	cmd.Flags().StringVar(&input.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&input.Model, "model", "", "Model number")
	cmd.Flags().StringVar(&input.Brand, "brand", "", "Brand name")
	cmd.Flags().StringVar(&input.Category, "category", "", "Category name")
	cmd.Flags().StringVar(&input.Description, "description", "", "Product description")
	cmd.Flags().BoolVar(&input.Featured, "featured", false, "Mark the product as featured")

	return cmd
}

func runProductsCreate(ctx context.Context, envName string, input catalog.ProductInput) error {
	if input.Name == "" || input.Brand == "" || input.Category == "" {
		return fmt.Errorf("--name, --brand and --category are required")
	}

	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	_, api, err := newSession(env)
	if err != nil {
		return err
	}

	product, err := catalog.New(api).CreateProduct(ctx, input)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Created product '%s' (%s)\n", product.Name, product.ID)
	return nil
}

func newProductsDeleteCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:     "rm <product-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a product",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductsDelete(cmd.Context(), envName, args[0])
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")

	return cmd
}

func runProductsDelete(ctx context.Context, envName, productID string) error {
	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	_, api, err := newSession(env)
	if err != nil {
		return err
	}

	if err := catalog.New(api).DeleteProduct(ctx, productID); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted product %s\n", productID)
	return nil
}

func newProductsShowCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show a product's features and applications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductsShow(cmd.Context(), envName, args[0])
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")

	return cmd
}

func runProductsShow(ctx context.Context, envName, productID string) error {
	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	_, api, err := newSession(env)
	if err != nil {
		return err
	}

	cat := catalog.New(api)

	features, err := cat.Features(ctx, productID)
	if err != nil {
		return err
	}
	applications, err := cat.Applications(ctx, productID)
	if err != nil {
		return err
	}

	fmt.Printf("Product %s\n\nFeatures:\n", productID)
	if len(features) == 0 {
		fmt.Println("  (none)")
	}
	for _, f := range features {
		fmt.Printf("  - %s\n", f.Description)
	}

	fmt.Println("\nApplications:")
	if len(applications) == 0 {
		fmt.Println("  (none)")
	}
	for _, a := range applications {
		fmt.Printf("  - %s\n", a.Description)
	}

	return nil
}

func newProductsImportCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Bulk-create products from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductsImport(cmd.Context(), envName, args[0])
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name (uses the selected environment if not specified)")

	return cmd
}

func runProductsImport(ctx context.Context, envName, path string) error {
	file, err := catalog.LoadImportFile(path)
	if err != nil {
		return err
	}

	env, err := getSelectedEnvironment(envName)
	if err != nil {
		return err
	}

	_, api, err := newSession(env)
	if err != nil {
		return err
	}

	cat := catalog.New(api)

	for _, entry := range file.Products {
		fmt.Printf("Importing '%s'... ", entry.Name)

		product, err := cat.CreateProduct(ctx, catalog.ProductInput{
			Name:        entry.Name,
			Model:       entry.Model,
			Brand:       entry.Brand,
			Category:    entry.Category,
			Description: entry.Description,
			Featured:    entry.Featured,
		})
		if err != nil {
			fmt.Printf("failed: %v\n", err)
			continue
		}

		for _, feature := range entry.Features {
			if err := cat.AddFeature(ctx, product.ID, feature); err != nil {
				fmt.Printf("\n  failed to add feature '%s': %v", feature, err)
			}
		}
		for _, application := range entry.Applications {
			if err := cat.AddApplication(ctx, product.ID, application); err != nil {
				fmt.Printf("\n  failed to add application '%s': %v", application, err)
			}
		}

		fmt.Println("Done")
	}

	return nil
}
