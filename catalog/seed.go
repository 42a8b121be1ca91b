package catalog

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/prodquery/errors"
	"github.com/kbukum/prodquery/validation"
)

// SeedProvider supplies the initial ordered product sequence. The result is
// finite and may be empty.
type SeedProvider interface {
	Load(ctx context.Context) ([]Product, error)
	Name() string
}

// StaticProvider serves the built-in catalogue.
type StaticProvider struct{}

func (StaticProvider) Name() string { return "builtin" }

func (StaticProvider) Load(context.Context) ([]Product, error) {
	return DefaultProducts(), nil
}

// SliceProvider serves a caller-supplied sequence.
type SliceProvider []Product

func (s SliceProvider) Name() string { return "slice" }

func (s SliceProvider) Load(context.Context) ([]Product, error) {
	out := make([]Product, len(s))
	copy(out, s)
	return out, nil
}

// FileProvider reads a YAML or JSON list of products.
type FileProvider struct {
	Path string
}

func (f FileProvider) Name() string { return f.Path }

type seedFile struct {
	Products []Product `yaml:"products"`
}

// Load reads and validates the file. The document is either a bare list or
// a mapping with a "products" list.
func (f FileProvider) Load(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, errors.SeedUnavailable(f.Path, err)
	}

	var products []Product
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.SeedUnavailable(f.Path, err)
	}
	if len(node.Content) > 0 {
		root := node.Content[0]
		switch {
		case root.Kind == yaml.MappingNode && hasKey(root, "products"):
			var doc seedFile
			err = root.Decode(&doc)
			products = doc.Products
		case root.Kind == yaml.SequenceNode:
			err = root.Decode(&products)
		default:
			err = fmt.Errorf("line %d: expected a product list or a products mapping", root.Line)
		}
	}
	if err != nil {
		return nil, errors.SeedUnavailable(f.Path, err)
	}
	if products == nil {
		products = []Product{}
	}

	if err := ValidateSeed(products); err != nil {
		return nil, err
	}
	return products, nil
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}

// ValidateSeed checks every record's tags and that IDs are unique.
func ValidateSeed(products []Product) error {
	seen := make(map[int]int, len(products))
	for i, p := range products {
		if err := validation.Validate(p); err != nil {
			if appErr, ok := errors.AsAppError(err); ok {
				appErr.WithDetail("index", i)
			}
			return err
		}
		if first, dup := seen[p.ID]; dup {
			return errors.DuplicateID(p.ID).WithDetail("index", i).WithDetail("first_index", first)
		}
		seen[p.ID] = i
	}
	return nil
}

// DefaultProducts returns the built-in demonstration catalogue. It has
// several White products, Green products on both sides of 10.00 and no
// Orange ones.
func DefaultProducts() []Product {
	return []Product{
		{ID: 680, Name: "HL Road Frame - Black, 58", Color: "Black", StandardCost: 1059.31},
		{ID: 706, Name: "HL Road Frame - Red, 58", Color: "Red", StandardCost: 1059.31},
		{ID: 707, Name: "Sport-100 Helmet, Red", Color: "Red", StandardCost: 13.08},
		{ID: 708, Name: "Sport-100 Helmet, Black", Color: "Black", StandardCost: 13.08},
		{ID: 709, Name: "Mountain Bike Socks, M", Color: "White", StandardCost: 3.39},
		{ID: 710, Name: "Mountain Bike Socks, L", Color: "White", StandardCost: 3.39},
		{ID: 711, Name: "Sport-100 Helmet, Blue", Color: "Blue", StandardCost: 13.08},
		{ID: 712, Name: "AWC Logo Cap", Color: "Multi", StandardCost: 6.92},
		{ID: 713, Name: "Long-Sleeve Logo Jersey, S", Color: "Multi", StandardCost: 38.49},
		{ID: 714, Name: "Long-Sleeve Logo Jersey, M", Color: "Multi", StandardCost: 38.49},
		{ID: 717, Name: "HL Road Frame - Red, 62", Color: "Red", StandardCost: 868.63},
		{ID: 722, Name: "LL Road Frame - Green, 58", Color: "Green", StandardCost: 204.63},
		{ID: 870, Name: "Water Bottle - 30 oz.", Color: "Green", StandardCost: 1.87},
		{ID: 871, Name: "Mountain Bottle Cage", Color: "Green", StandardCost: 3.73},
		{ID: 874, Name: "Racing Socks, M", Color: "White", StandardCost: 3.36},
		{ID: 881, Name: "Short-Sleeve Classic Jersey, S", Color: "Yellow", StandardCost: 41.57},
	}
}
