package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"chatshop/internal/domain"
)

// Catalog is the static, ordered product list. It is never mutated after
// Build, so it can be shared by all handlers without locking.
type Catalog struct {
	ids      []string
	products map[string]domain.Product
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrUnknownProduct, id)
	}
	return p, nil
}

// At returns the product at a position of IDs().
func (c *Catalog) At(index int) (domain.Product, error) {
	if index < 0 || index >= len(c.ids) {
		return domain.Product{}, fmt.Errorf("%w: index %d", domain.ErrUnknownProduct, index)
	}
	return c.products[c.ids[index]], nil
}

// IDs returns product ids in pagination order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

func (c *Catalog) Count() int {
	return len(c.ids)
}

// Builder collects products in insertion order.
type Builder struct {
	ids      []string
	products map[string]domain.Product
}

func NewBuilder() *Builder {
	return &Builder{products: make(map[string]domain.Product)}
}

// Add validates p and appends it. Duplicate ids are rejected.
func (b *Builder) Add(p domain.Product) error {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return fmt.Errorf("catalog: product id required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("catalog: product %q: name required", p.ID)
	}
	if p.PriceCents < 0 {
		return fmt.Errorf("catalog: product %q: negative price", p.ID)
	}
	if _, exists := b.products[p.ID]; exists {
		return fmt.Errorf("catalog: duplicate product id %q", p.ID)
	}
	b.ids = append(b.ids, p.ID)
	b.products[p.ID] = p
	return nil
}

// Build freezes the collected products into a Catalog.
func (b *Builder) Build() *Catalog {
	c := &Catalog{
		ids:      make([]string, len(b.ids)),
		products: make(map[string]domain.Product, len(b.products)),
	}
	copy(c.ids, b.ids)
	for id, p := range b.products {
		c.products[id] = p
	}
	return c
}

// New builds a catalog from products in the given order.
func New(products ...domain.Product) (*Catalog, error) {
	b := NewBuilder()
	for _, p := range products {
		if err := b.Add(p); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// Default returns the demo store catalog with images resolved under imageDir.
func Default(imageDir string) *Catalog {
	c, err := New(
		domain.Product{
			ID:          "p1",
			Name:        "Dummy Product A",
			PriceCents:  1000,
			Description: "A great dummy product.",
			Category:    "Electronics",
			Image:       filepath.Join(imageDir, "product_a.png"),
		},
		domain.Product{
			ID:          "p2",
			Name:        "Dummy Product B",
			PriceCents:  2550,
			Description: "Another fantastic dummy product.",
			Category:    "Books",
			Image:       filepath.Join(imageDir, "product_b.png"),
		},
		domain.Product{
			ID:          "p3",
			Name:        "Dummy Product C",
			PriceCents:  500,
			Description: "Small and useful dummy product.",
			Category:    "Home Goods",
			Image:       filepath.Join(imageDir, "product_c.jpg"),
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}
