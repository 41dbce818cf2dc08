package importer

import (
	"fmt"
	"os"

	"chatshop/internal/catalog"
)

// LoadCatalog reads the CSV file at path into a catalog. An empty file is an
// error: the bot has nothing to sell without products.
func LoadCatalog(path, imageDir string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	b := catalog.NewBuilder()
	n, err := NewCSVImporter(f, b, imageDir).Run()
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("load catalog %s: no products", path)
	}
	return b.Build(), nil
}
