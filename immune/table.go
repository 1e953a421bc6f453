package immune

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/carbocation/pfx"

	"github.com/immunoprofile/relcell"
)

// ReadTable reads an entire delimited table into memory and resolves its
// header row against the required column set. A leading UTF-8 byte-order
// mark is tolerated. Rows may have ragged field counts; index safety is the
// consumer's concern, the same as for any positionally addressed table.
func ReadTable(path string, required []string, delim rune) (Header, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, pfx.Err(err)
	}
	defer f.Close()

	r := csv.NewReader(relcell.SkipBOM(f))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, pfx.Err(err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("failed to parse empty CSV: %s", path)
	}

	hdr, err := ResolveHeader(rows[0], required)
	if err != nil {
		return nil, nil, err
	}

	return hdr, rows[1:], nil
}
