package immune

import "fmt"

// SampleColumn names the column holding the sample identifier in both the
// input count table and the derived relative-count table.
const SampleColumn = "sample"

// Header maps column names to their zero-based indices in a table's header
// row.
type Header map[string]int

// RequiredCountColumns returns the columns that any per-sample count table
// must carry: the sample identifier plus one count column per population.
func RequiredCountColumns() []string {
	cols := make([]string, 0, 1+len(CellTypes))
	cols = append(cols, SampleColumn)
	for _, ct := range CellTypes {
		cols = append(cols, ct.String())
	}

	return cols
}

// ResolveHeader locates each required column in headerRow. Matching is exact
// and case-sensitive; columns beyond the required set are ignored, as is
// column order. All missing columns are reported together.
func ResolveHeader(headerRow []string, required []string) (Header, error) {
	hdr := make(Header, len(required))
	for i, col := range headerRow {
		// First occurrence wins if a name repeats.
		if _, ok := hdr[col]; !ok {
			hdr[col] = i
		}
	}

	var missing []string
	for _, col := range required {
		if _, ok := hdr[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV is missing required header column(s) %v; expected all of %v", missing, required)
	}

	out := make(Header, len(required))
	for _, col := range required {
		out[col] = hdr[col]
	}

	return out, nil
}
