package immune

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Derived relative-count table columns, in output order.
const (
	TotalCountColumn = "total_count"
	PopulationColumn = "population"
	CountColumn      = "count"
	PercentageColumn = "percentage"
)

// RelativeColumns returns the derived table's column set, which is also its
// required set when such a table is read back in.
func RelativeColumns() []string {
	return []string{SampleColumn, TotalCountColumn, PopulationColumn, CountColumn, PercentageColumn}
}

// Relative is one derived record: a single population's count within a
// single sample, relative to that sample's total. Percentage holds the
// display form (two decimals) so that a written table and an in-memory one
// are interchangeable.
type Relative struct {
	Sample     string `csv:"sample"`
	TotalCount int    `csv:"total_count"`
	Population string `csv:"population"`
	Count      int    `csv:"count"`
	Percentage string `csv:"percentage"`
}

// ConvertCellCounts converts per-sample absolute counts into relative
// records, five per sample, in CellTypes order, grouped by input row order.
// A non-numeric count and an all-zero sample are both fatal: either means
// the input is corrupt, and a partially-correct report is worse than none.
func ConvertCellCounts(hdr Header, rows [][]string) ([]Relative, error) {
	out := make([]Relative, 0, len(rows)*len(CellTypes))

	for i, row := range rows {
		recs, err := convertSample(hdr, row)
		if err != nil {
			return nil, fmt.Errorf("data row %d: %v", i+1, err)
		}
		out = append(out, recs...)
	}

	return out, nil
}

func convertSample(hdr Header, row []string) ([]Relative, error) {
	counts := make(map[CellType]int, len(CellTypes))
	total := 0
	for _, ct := range CellTypes {
		field, err := rowField(row, hdr, ct.String())
		if err != nil {
			return nil, err
		}

		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("column %q: cannot parse count %q", ct, field)
		}
		counts[ct] = n
		total += n
	}

	sample, err := rowField(row, hdr, SampleColumn)
	if err != nil {
		return nil, err
	}

	if total == 0 {
		return nil, fmt.Errorf("sample %q: total cell count is zero, cannot compute relative frequencies", sample)
	}

	out := make([]Relative, 0, len(CellTypes))
	for _, ct := range CellTypes {
		percentage := 100 * float64(counts[ct]) / float64(total)
		out = append(out, Relative{
			Sample:     sample,
			TotalCount: total,
			Population: ct.String(),
			Count:      counts[ct],
			Percentage: strconv.FormatFloat(percentage, 'f', 2, 64),
		})
	}

	return out, nil
}

func rowField(row []string, hdr Header, col string) (string, error) {
	idx := hdr[col]
	if idx >= len(row) {
		return "", fmt.Errorf("row has %d fields, but column %q is at index %d", len(row), col, idx)
	}

	return row[idx], nil
}

// ReadRelative reads a previously derived relative-count table. The records
// come back exactly as written; validation of the one-record-per-population
// invariant belongs to the consumer that indexes them.
func ReadRelative(path string, delim rune) (Header, []Relative, error) {
	hdr, rows, err := ReadTable(path, RelativeColumns(), delim)
	if err != nil {
		return nil, nil, err
	}

	recs := make([]Relative, 0, len(rows))
	for i, row := range rows {
		rec, err := relativeFromRow(hdr, row)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: data row %d: %v", path, i+1, err)
		}
		recs = append(recs, rec)
	}

	return hdr, recs, nil
}

func relativeFromRow(hdr Header, row []string) (Relative, error) {
	var rec Relative
	var err error

	if rec.Sample, err = rowField(row, hdr, SampleColumn); err != nil {
		return rec, err
	}
	if rec.Population, err = rowField(row, hdr, PopulationColumn); err != nil {
		return rec, err
	}
	if rec.Percentage, err = rowField(row, hdr, PercentageColumn); err != nil {
		return rec, err
	}

	totalField, err := rowField(row, hdr, TotalCountColumn)
	if err != nil {
		return rec, err
	}
	if rec.TotalCount, err = strconv.Atoi(totalField); err != nil {
		return rec, fmt.Errorf("column %q: cannot parse count %q", TotalCountColumn, totalField)
	}

	countField, err := rowField(row, hdr, CountColumn)
	if err != nil {
		return rec, err
	}
	if rec.Count, err = strconv.Atoi(countField); err != nil {
		return rec, fmt.Errorf("column %q: cannot parse count %q", CountColumn, countField)
	}

	return rec, nil
}

// WriteRelative writes the derived table to the named file, or to stdout
// when path is empty, logging a confirmation on a successful file write.
func WriteRelative(path string, recs []Relative, delim rune) error {
	// Tell gocsv to honor the configured delimiter
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = delim
		return gocsv.NewSafeCSVWriter(w)
	})

	if path == "" {
		if err := gocsv.Marshal(&recs, os.Stdout); err != nil {
			return pfx.Err(err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := gocsv.MarshalFile(&recs, f); err != nil {
		f.Close()
		return pfx.Err(err)
	}
	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}

	log.Println("Wrote output CSV to", path)

	return nil
}
