package relcell

import (
	"io"
	"strings"
	"testing"
)

func TestSkipBOM(t *testing.T) {
	for _, v := range []struct {
		In       string
		Expected string
	}{
		{"\xEF\xBB\xBFsample,b_cell", "sample,b_cell"},
		{"sample,b_cell", "sample,b_cell"},
		{"", ""},
		{"ab", "ab"},
		{"\xEF\xBB\xBF", ""},
	} {
		out, err := io.ReadAll(SkipBOM(strings.NewReader(v.In)))
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != v.Expected {
			t.Errorf("Input %q: expected %q, got %q", v.In, v.Expected, out)
		}
	}
}
