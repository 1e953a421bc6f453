// Package immune models per-sample immune cell count tables and their
// conversion into relative population frequencies.
package immune

import "fmt"

// CellType identifies one of the five immune cell populations that this
// pipeline recognizes. It is a closed set: adding a sixth population is a
// code change, not a data change, which keeps a typo in an input column from
// silently minting a new population.
type CellType int

const (
	BCell CellType = iota
	CD8TCell
	CD4TCell
	NKCell
	Monocyte
)

// CellTypes is the canonical enumeration order. Output rows and figures are
// always emitted in this order.
var CellTypes = [...]CellType{BCell, CD8TCell, CD4TCell, NKCell, Monocyte}

var cellTypeNames = map[CellType]string{
	BCell:    "b_cell",
	CD8TCell: "cd8_t_cell",
	CD4TCell: "cd4_t_cell",
	NKCell:   "nk_cell",
	Monocyte: "monocyte",
}

// String returns the column name under which this population's counts appear
// in the input CSV, which doubles as its label in derived tables and figures.
func (c CellType) String() string {
	return cellTypeNames[c]
}

// ParseCellType maps a population label back to its CellType, rejecting
// anything outside the closed set.
func ParseCellType(s string) (CellType, error) {
	for _, ct := range CellTypes {
		if cellTypeNames[ct] == s {
			return ct, nil
		}
	}

	return 0, fmt.Errorf("unknown cell population %q", s)
}
