package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"chatshop/internal/domain"
)

type ProductWriter interface {
	Add(product domain.Product) error
}

// CSVImporter reads catalog CSV files (id,name,price,description,category,image)
// and hands each product to a writer in file order.
type CSVImporter struct {
	reader   *csv.Reader
	writer   ProductWriter
	imageDir string
}

func NewCSVImporter(r io.Reader, w ProductWriter, imageDir string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:   csvr,
		writer:   w,
		imageDir: imageDir,
	}
}

// Run parses CSV rows and returns the number of products written.
func (i *CSVImporter) Run() (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"id", "name", "price"} {
		if _, ok := index[required]; !ok {
			return 0, fmt.Errorf("missing %q column", required)
		}
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", line, err)
		}

		p, skip, err := i.parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		if skip {
			continue
		}
		if err := i.writer.Add(p); err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) parseRow(record []string, index map[string]int) (domain.Product, bool, error) {
	id := pick(record, index, "id")
	if id == "" {
		return domain.Product{}, true, nil
	}
	cents, err := parseCents(pick(record, index, "price"))
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("product %q: %w", id, err)
	}
	image := pick(record, index, "image")
	if image != "" && !filepath.IsAbs(image) && !strings.Contains(image, "://") && i.imageDir != "" {
		image = filepath.Join(i.imageDir, image)
	}
	return domain.Product{
		ID:          id,
		Name:        pick(record, index, "name"),
		PriceCents:  cents,
		Description: pick(record, index, "description"),
		Category:    pick(record, index, "category"),
		Image:       image,
	}, false, nil
}

// parseCents converts a decimal amount like "25.5" or "$10.00" into cents.
func parseCents(raw string) (int64, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "$")
	if s == "" {
		return 0, fmt.Errorf("price required")
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if !digitsOnly(whole) || (hasFrac && (!digitsOnly(frac) || len(frac) > 2)) {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	var cents int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid price %q", raw)
		}
	}
	return units*100 + cents, nil
}

// digitsOnly rejects signs and separators that strconv would accept.
func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
