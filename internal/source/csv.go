package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/slingshot-dev/slingshot/internal/coerce"
)

// CSVOptions tunes how an export file is read.
type CSVOptions struct {
	// Comma overrides the field delimiter. Zero means ','.
	Comma rune
	// KeepHeaderCase preserves header casing. By default headers are
	// lowercased so mapping columns are case-insensitive.
	KeepHeaderCase bool
}

// CSVFile reads an exported CSV into one bag per data row, keyed by the
// header row. The file's encoding is sniffed and normalized first; short
// rows yield absent keys rather than errors, and extra cells are dropped,
// because real exports contain both.
func CSVFile(path string, opts CSVOptions) ([]coerce.Bag, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data, _, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	if opts.Comma != 0 {
		r.Comma = opts.Comma
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if !opts.KeepHeaderCase {
			h = strings.ToLower(h)
		}
		header[i] = h
	}

	bags := make([]coerce.Bag, 0, len(rows)-1)
	for _, row := range rows[1:] {
		bag := coerce.Bag{}
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			bag[header[i]] = cell
		}
		bags = append(bags, bag)
	}
	return bags, nil
}
