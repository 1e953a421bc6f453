package relcell

import (
	"bufio"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SkipBOM wraps r so that a leading UTF-8 byte-order mark, if present, is
// consumed before any reads. Spreadsheet exports routinely carry one.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)

	peeked, err := br.Peek(len(utf8BOM))
	if err != nil {
		// Too short to hold a BOM; hand back whatever is there.
		return br
	}

	if peeked[0] == utf8BOM[0] && peeked[1] == utf8BOM[1] && peeked[2] == utf8BOM[2] {
		br.Discard(len(utf8BOM))
	}

	return br
}
