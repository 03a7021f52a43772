package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportProduct is one product entry in a YAML import file, including the
// feature and application lists pushed as sub-resources after creation.
type ImportProduct struct {
	Name         string   `yaml:"name"`
	Model        string   `yaml:"model"`
	Brand        string   `yaml:"brand"`
	Category     string   `yaml:"category"`
	Description  string   `yaml:"description"`
	Featured     bool     `yaml:"featured"`
	Features     []string `yaml:"features"`
	Applications []string `yaml:"applications"`
}

// ImportFile is the bulk product import format
type ImportFile struct {
	Products []ImportProduct `yaml:"products"`
}

// LoadImportFile reads and validates a YAML product import file
func LoadImportFile(path string) (*ImportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var file ImportFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}

	if len(file.Products) == 0 {
		return nil, fmt.Errorf("no products defined in %s", path)
	}

	for i, p := range file.Products {
		if p.Name == "" {
			return nil, fmt.Errorf("product %d is missing a name", i+1)
		}
		if p.Brand == "" || p.Category == "" {
			return nil, fmt.Errorf("product '%s' needs both a brand and a category", p.Name)
		}
	}

	return &file, nil
}
