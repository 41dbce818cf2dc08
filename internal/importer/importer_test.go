package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chatshop/internal/catalog"
	"chatshop/internal/domain"
)

type stubWriter struct {
	items []domain.Product
}

func (s *stubWriter) Add(p domain.Product) error {
	s.items = append(s.items, p)
	return nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,name,price,description,category,image
p1,Lamp,10,Desk lamp,Home,lamp.png
,,,,,
p2,Book,25.5,Paperback,Books,https://example.com/book.jpg
p3,Pen,$0.99,,Office,/abs/pen.jpg`

	w := &stubWriter{}
	count, err := NewCSVImporter(strings.NewReader(csvData), w, "/images").Run()
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 3 || len(w.items) != 3 {
		t.Fatalf("expected 3 products, got count=%d items=%d", count, len(w.items))
	}
	if w.items[0].PriceCents != 1000 || w.items[0].Image != "/images/lamp.png" {
		t.Fatalf("unexpected first product %+v", w.items[0])
	}
	if w.items[1].PriceCents != 2550 || w.items[1].Image != "https://example.com/book.jpg" {
		t.Fatalf("unexpected second product %+v", w.items[1])
	}
	if w.items[2].PriceCents != 99 || w.items[2].Image != "/abs/pen.jpg" || w.items[2].Category != "Office" {
		t.Fatalf("unexpected third product %+v", w.items[2])
	}
}

func TestCSVImporter_IntoCatalog(t *testing.T) {
	csvData := "id,name,price\nb,Second,2\na,First,1\n"
	b := catalog.NewBuilder()
	if _, err := NewCSVImporter(strings.NewReader(csvData), b, "").Run(); err != nil {
		t.Fatalf("import run: %v", err)
	}
	c := b.Build()
	ids := c.IDs()
	if len(ids) != 2 || ids[0] != "b" || ids[1] != "a" {
		t.Fatalf("expected file order to be kept, got %v", ids)
	}
}

func TestCSVImporter_Errors(t *testing.T) {
	cases := map[string]string{
		"missing column": "id,name\np1,Lamp\n",
		"bad price":      "id,name,price\np1,Lamp,abc\n",
		"three decimals": "id,name,price\np1,Lamp,1.234\n",
		"duplicate id":   "id,name,price\np1,Lamp,1\np1,Lamp,2\n",
		"negative zero":  "id,name,price\np1,Lamp,-0.50\n",
		"signed cents":   "id,name,price\np1,Lamp,1.+5\n",
	}
	for name, data := range cases {
		b := catalog.NewBuilder()
		if _, err := NewCSVImporter(strings.NewReader(data), b, "").Run(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	data := "id,name,price,description,category,image\n" +
		"p1,Mug,$4.50,Ceramic,Home,mug.png\n" +
		"p2,Lamp,12,,Home,https://example.com/lamp.png\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	c, err := LoadCatalog(path, "img")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Count() != 2 {
		t.Fatalf("expected 2 products, got %d", c.Count())
	}
	mug, err := c.Get("p1")
	if err != nil {
		t.Fatalf("get p1: %v", err)
	}
	if mug.PriceCents != 450 || mug.Image != filepath.Join("img", "mug.png") {
		t.Fatalf("unexpected product %+v", mug)
	}
	lamp, _ := c.Get("p2")
	if lamp.Image != "https://example.com/lamp.png" {
		t.Fatalf("remote image should be kept as is, got %q", lamp.Image)
	}

	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, []byte("id,name,price\n"), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if _, err := LoadCatalog(empty, ""); err == nil {
		t.Fatalf("expected error for catalog without products")
	}
	if _, err := LoadCatalog(filepath.Join(dir, "missing.csv"), ""); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseCents(t *testing.T) {
	valid := map[string]int64{
		"10":     1000,
		"25.5":   2550,
		"$0.99":  99,
		" 3.05 ": 305,
		"0":      0,
	}
	for raw, want := range valid {
		got, err := parseCents(raw)
		if err != nil {
			t.Fatalf("parseCents(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("parseCents(%q) = %d, want %d", raw, got, want)
		}
	}

	for _, raw := range []string{"", "-0.50", "-1", "+2", "1.+5", "1.-5", "1.", ".5", "1.234", "1,5", "$"} {
		if _, err := parseCents(raw); err == nil {
			t.Fatalf("parseCents(%q): expected error", raw)
		}
	}
}
