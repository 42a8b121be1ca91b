package catalog

import (
	"fmt"
	"strings"

	"github.com/kbukum/prodquery/query"
)

// Product is a catalogue record.
type Product struct {
	ID           int     `yaml:"id" json:"id" validate:"gt=0"`
	Name         string  `yaml:"name" json:"name" validate:"required"`
	Color        string  `yaml:"color" json:"color"`
	StandardCost float64 `yaml:"standard_cost" json:"standard_cost" validate:"gte=0"`
}

// IsZero reports whether p is the empty default returned by the or-default operations.
func (p Product) IsZero() bool { return p == Product{} }

func (p Product) String() string {
	if p.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("#%d %s (%s, %.2f)", p.ID, p.Name, p.Color, p.StandardCost)
}

// Summary is the {ID, Name, Color} projection of a Product.
type Summary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Sort keys over Product attributes, ascending. Use Desc() to reverse.
var (
	IDKey    = query.By(func(p Product) int { return p.ID }).Named("id")
	NameKey  = query.By(func(p Product) string { return p.Name }).Named("name")
	ColorKey = query.By(func(p Product) string { return p.Color }).Named("color")
	CostKey  = query.By(func(p Product) float64 { return p.StandardCost }).Named("standard_cost")
)

// ByColor matches products of the given color exactly.
func ByColor(color string) query.Predicate[Product] {
	return func(p Product) bool { return p.Color == color }
}

// CostAbove matches products whose standard cost is strictly greater than min.
func CostAbove(min float64) query.Predicate[Product] {
	return func(p Product) bool { return p.StandardCost > min }
}

// NameContains matches products whose name contains s, ignoring case.
func NameContains(s string) query.Predicate[Product] {
	s = strings.ToLower(s)
	return func(p Product) bool { return strings.Contains(strings.ToLower(p.Name), s) }
}
