// Package catalog wraps the catalog administration endpoints of the
// Gearbase API: products, brands, categories, dashboard aggregates, and the
// per-product feature/application sub-resources.
package catalog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gearbase-dev/gearbase/internal/cli/client"
)

// Product represents a catalog product
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Model       string `json:"model"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
	CreatedAt   string `json:"created_at"`
}

// ProductInput is the create-product request body
type ProductInput struct {
	Name        string `json:"name"`
	Model       string `json:"model,omitempty"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Featured    bool   `json:"featured,omitempty"`
}

// Feature is one entry of a product's feature list
type Feature struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Application is one entry of a product's application list
type Application struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Brand represents a manufacturer brand
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category represents a product category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DashboardCounts holds the aggregate counts shown on the dashboard
type DashboardCounts struct {
	Products   int `json:"products"`
	Brands     int `json:"brands"`
	Categories int `json:"categories"`
	Users      int `json:"users"`
}

// API drives the catalog endpoints through the shared transport, so every
// call carries the session header and participates in the global
// authorization-denied handling.
type API struct {
	client *client.Client
}

// New creates a catalog API around an authenticated transport.
func New(c *client.Client) *API {
	return &API{client: c}
}

// Products returns all catalog products
func (a *API) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := a.client.Do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a new product and returns the stored record
func (a *API) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var product Product
	if err := a.client.Do(ctx, http.MethodPost, "/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct deletes a product by ID
func (a *API) DeleteProduct(ctx context.Context, id string) error {
	return a.client.Do(ctx, http.MethodDelete, "/products/"+id, nil, nil)
}

// Features returns a product's feature list
func (a *API) Features(ctx context.Context, productID string) ([]Feature, error) {
	var features []Feature
	path := fmt.Sprintf("/products/%s/features", productID)
	if err := a.client.Do(ctx, http.MethodGet, path, nil, &features); err != nil {
		return nil, err
	}
	return features, nil
}

// AddFeature appends a feature to a product
func (a *API) AddFeature(ctx context.Context, productID, description string) error {
	path := fmt.Sprintf("/products/%s/features", productID)
	body := map[string]string{"description": description}
	return a.client.Do(ctx, http.MethodPost, path, body, nil)
}

// Applications returns a product's application list
func (a *API) Applications(ctx context.Context, productID string) ([]Application, error) {
	var applications []Application
	path := fmt.Sprintf("/products/%s/applications", productID)
	if err := a.client.Do(ctx, http.MethodGet, path, nil, &applications); err != nil {
		return nil, err
	}
	return applications, nil
}

// AddApplication appends an application to a product
func (a *API) AddApplication(ctx context.Context, productID, description string) error {
	path := fmt.Sprintf("/products/%s/applications", productID)
	body := map[string]string{"description": description}
	return a.client.Do(ctx, http.MethodPost, path, body, nil)
}

// Brands returns all brands
func (a *API) Brands(ctx context.Context) ([]Brand, error) {
	var brands []Brand
	if err := a.client.Do(ctx, http.MethodGet, "/brands", nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// Categories returns all categories
func (a *API) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := a.client.Do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Counts returns the dashboard aggregate counts
func (a *API) Counts(ctx context.Context) (*DashboardCounts, error) {
	var counts DashboardCounts
	if err := a.client.Do(ctx, http.MethodGet, "/dashboard/counts", nil, &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}
