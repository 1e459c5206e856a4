package taxonomy

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wolfvue/wolfvue-go/internal/errors"
)

// Load reads a taxonomy YAML file of the form:
//
//	categories:
//	  Canids:
//	    - Wolf
//	    - Coyote
//	  Cervids:
//	    - Elk
//	    - Deer
//
// Category order follows the file. A species appearing under two
// categories keeps its first category and logs a warning.
func Load(path string, logger *slog.Logger) (*Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Component("taxonomy.loader").
			Category(errors.CategoryTaxonomy).
			Context("path", path).
			Build()
	}
	defer f.Close()

	t, err := Parse(f, logger)
	if err != nil {
		return nil, errors.New(fmt.Errorf("parsing taxonomy %s: %w", path, err)).
			Component("taxonomy.loader").
			Category(errors.CategoryTaxonomy).
			Context("path", path).
			Build()
	}
	return t, nil
}

// Parse decodes taxonomy YAML from a reader. Decoding goes through
// yaml.Node rather than a map so the file's category order survives.
func Parse(r io.Reader, logger *slog.Logger) (*Taxonomy, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var doc struct {
		Categories yaml.Node `yaml:"categories"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid taxonomy yaml: %w", err)
	}
	if doc.Categories.Kind == 0 {
		return nil, fmt.Errorf("taxonomy yaml has no categories key")
	}
	if doc.Categories.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("categories must be a mapping of category name to species list")
	}

	var categories []Category
	seen := make(map[string]string)

	// mapping node content alternates key, value
	for i := 0; i+1 < len(doc.Categories.Content); i += 2 {
		keyNode := doc.Categories.Content[i]
		valueNode := doc.Categories.Content[i+1]

		var species []string
		if err := valueNode.Decode(&species); err != nil {
			return nil, fmt.Errorf("category %q: species must be a list of names: %w", keyNode.Value, err)
		}

		for _, s := range species {
			if first, dup := seen[s]; dup {
				logger.Warn("species listed in multiple categories, keeping first",
					"species", s,
					"kept_category", first,
					"ignored_category", keyNode.Value)
				continue
			}
			seen[s] = keyNode.Value
		}

		categories = append(categories, Category{Name: keyNode.Value, Species: species})
	}

	return New(categories), nil
}
