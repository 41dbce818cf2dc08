package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"chatshop/internal/config"
	"chatshop/internal/domain"
	"chatshop/internal/importer"
)

// importer checks a catalog CSV the way the bot will load it and prints the
// resulting product list.
func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV (defaults to CATALOG_CSV)")
	flag.Parse()

	cfg := config.FromEnv()
	if filePath == "" {
		filePath = cfg.CatalogCSV
	}
	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	c, err := importer.LoadCatalog(filePath, cfg.ImageDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog invalid: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tNAME\tPRICE\tCATEGORY\tIMAGE")
	for i, id := range c.IDs() {
		p, _ := c.Get(id)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, p.ID, p.Name, domain.FormatPrice(p.PriceCents), p.Category, p.Image)
	}
	_ = w.Flush()
	fmt.Printf("%d products OK\n", c.Count())
}
