package immune

import (
	"reflect"
	"strings"
	"testing"
)

func TestResolveHeader(t *testing.T) {
	headerRow := []string{"extra_first", "monocyte", "sample", "b_cell", "cd8_t_cell", "cd4_t_cell", "nk_cell", "extra_last"}

	hdr, err := ResolveHeader(headerRow, RequiredCountColumns())
	if err != nil {
		t.Fatal(err)
	}

	expected := Header{
		"sample":     2,
		"b_cell":     3,
		"cd8_t_cell": 4,
		"cd4_t_cell": 5,
		"nk_cell":    6,
		"monocyte":   1,
	}
	if !reflect.DeepEqual(hdr, expected) {
		t.Fatalf("Expected %+v, got %+v", expected, hdr)
	}

	// Extra columns are ignored, not mapped.
	if _, ok := hdr["extra_first"]; ok {
		t.Error("Expected extra columns to be absent from the resolved header")
	}
}

func TestResolveHeaderIdempotent(t *testing.T) {
	headerRow := []string{"sample", "b_cell", "cd8_t_cell", "cd4_t_cell", "nk_cell", "monocyte"}

	first, err := ResolveHeader(headerRow, RequiredCountColumns())
	if err != nil {
		t.Fatal(err)
	}
	second, err := ResolveHeader(headerRow, RequiredCountColumns())
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Expected identical mappings, got %+v and %+v", first, second)
	}
}

func TestResolveHeaderMissingColumn(t *testing.T) {
	headerRow := []string{"sample", "b_cell", "cd8_t_cell", "cd4_t_cell", "monocyte"}

	_, err := ResolveHeader(headerRow, RequiredCountColumns())
	if err == nil {
		t.Fatal("Expected an error for a missing required column, got none")
	}
	if !strings.Contains(err.Error(), "nk_cell") {
		t.Errorf("Expected the error to name the missing column, got: %v", err)
	}
}
