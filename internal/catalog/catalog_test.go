package catalog

import (
	"errors"
	"testing"

	"chatshop/internal/domain"
)

func TestDefaultCatalogOrder(t *testing.T) {
	c := Default("/img")
	ids := c.IDs()
	if len(ids) != 3 || ids[0] != "p1" || ids[1] != "p2" || ids[2] != "p3" {
		t.Fatalf("unexpected ids %v", ids)
	}
	if c.Count() != 3 {
		t.Fatalf("expected count 3, got %d", c.Count())
	}
	p, err := c.Get("p2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.PriceCents != 2550 || p.Image != "/img/product_b.png" {
		t.Fatalf("unexpected product %+v", p)
	}
}

func TestGetUnknown(t *testing.T) {
	c := Default("")
	if _, err := c.Get("nope"); !errors.Is(err, domain.ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}
	if _, err := c.At(3); !errors.Is(err, domain.ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct for out of range index, got %v", err)
	}
}

func TestIDsReturnsCopy(t *testing.T) {
	c := Default("")
	ids := c.IDs()
	ids[0] = "changed"
	if c.IDs()[0] != "p1" {
		t.Fatalf("catalog order mutated through IDs()")
	}
}

func TestNewRejectsInvalidProducts(t *testing.T) {
	cases := map[string][]domain.Product{
		"missing id":    {{Name: "A"}},
		"missing name":  {{ID: "a"}},
		"negative":      {{ID: "a", Name: "A", PriceCents: -1}},
		"duplicate ids": {{ID: "a", Name: "A"}, {ID: "a", Name: "B"}},
	}
	for name, products := range cases {
		if _, err := New(products...); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
