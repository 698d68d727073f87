package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GenericParser reads a "date,description,amount,reference" CSV, the export
// shape most consumer banks offer. The header row is required; reference may
// be empty.
type GenericParser struct{}

const genericDateFormat = "2006-01-02"

// Format returns the registry key for this parser.
func (p *GenericParser) Format() string {
	return "generic"
}

// Parse reads all rows from a bank CSV.
func (p *GenericParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading bank CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	if len(header) < 3 || !strings.EqualFold(strings.TrimSpace(header[0]), "date") {
		return nil, fmt.Errorf("unrecognized bank CSV header: %v", header)
	}

	var rows []Row
	for i, rec := range records[1:] {
		if len(rec) < 3 {
			return nil, fmt.Errorf("row %d: expected at least 3 fields, got %d", i+2, len(rec))
		}

		date, err := time.Parse(genericDateFormat, strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[0], err)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[2], err)
		}

		row := Row{
			Date:        date,
			Description: strings.TrimSpace(rec[1]),
			Amount:      amount,
		}
		if len(rec) > 3 {
			row.Reference = strings.TrimSpace(rec[3])
		}
		rows = append(rows, row)
	}
	return rows, nil
}
