package immune

import (
	"math"
	"strconv"
	"strings"
	"testing"
)

var countHeaderRow = []string{"sample", "b_cell", "cd8_t_cell", "cd4_t_cell", "nk_cell", "monocyte"}

func countHeader(t *testing.T) Header {
	t.Helper()

	hdr, err := ResolveHeader(countHeaderRow, RequiredCountColumns())
	if err != nil {
		t.Fatal(err)
	}

	return hdr
}

func TestConvertCellCounts(t *testing.T) {
	hdr := countHeader(t)
	rows := [][]string{{"S1", "10", "20", "30", "20", "20"}}

	recs, err := ConvertCellCounts(hdr, rows)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Relative{
		{Sample: "S1", TotalCount: 100, Population: "b_cell", Count: 10, Percentage: "10.00"},
		{Sample: "S1", TotalCount: 100, Population: "cd8_t_cell", Count: 20, Percentage: "20.00"},
		{Sample: "S1", TotalCount: 100, Population: "cd4_t_cell", Count: 30, Percentage: "30.00"},
		{Sample: "S1", TotalCount: 100, Population: "nk_cell", Count: 20, Percentage: "20.00"},
		{Sample: "S1", TotalCount: 100, Population: "monocyte", Count: 20, Percentage: "20.00"},
	}

	if len(recs) != len(expected) {
		t.Fatalf("Expected %d records, got %d", len(expected), len(recs))
	}
	for i, rec := range recs {
		if rec != expected[i] {
			t.Errorf("Record %d: expected %+v, got %+v", i, expected[i], rec)
		}
	}
}

func TestConvertCellCountsPercentagesSum(t *testing.T) {
	hdr := countHeader(t)
	rows := [][]string{
		{"S1", "10", "20", "30", "20", "20"},
		{"S2", "1", "1", "1", "1", "1"},
		{"S3", "7", "13", "19", "31", "41"},
		{"S4", "0", "0", "0", "0", "5"},
	}

	recs, err := ConvertCellCounts(hdr, rows)
	if err != nil {
		t.Fatal(err)
	}

	sums := make(map[string]float64)
	for _, rec := range recs {
		p, err := strconv.ParseFloat(rec.Percentage, 64)
		if err != nil {
			t.Fatalf("Sample %s: unparseable percentage %q", rec.Sample, rec.Percentage)
		}
		sums[rec.Sample] += p
	}

	for sample, sum := range sums {
		if math.Abs(sum-100) > 0.011 {
			t.Errorf("Sample %s: percentages sum to %.3f, expected 100 within rounding tolerance", sample, sum)
		}
	}
}

func TestConvertCellCountsOrdering(t *testing.T) {
	hdr := countHeader(t)
	rows := [][]string{
		{"S1", "1", "2", "3", "4", "5"},
		{"S2", "5", "4", "3", "2", "1"},
	}

	recs, err := ConvertCellCounts(hdr, rows)
	if err != nil {
		t.Fatal(err)
	}

	// Grouped by input row, populations in enumeration order within a group.
	for i, rec := range recs {
		expectedSample := "S1"
		if i >= len(CellTypes) {
			expectedSample = "S2"
		}
		if rec.Sample != expectedSample {
			t.Errorf("Record %d: expected sample %s, got %s", i, expectedSample, rec.Sample)
		}
		if expected := CellTypes[i%len(CellTypes)].String(); rec.Population != expected {
			t.Errorf("Record %d: expected population %s, got %s", i, expected, rec.Population)
		}
	}
}

func TestConvertCellCountsZeroTotal(t *testing.T) {
	hdr := countHeader(t)
	rows := [][]string{{"S9", "0", "0", "0", "0", "0"}}

	_, err := ConvertCellCounts(hdr, rows)
	if err == nil {
		t.Fatal("Expected an error for an all-zero sample, got none")
	}
	if !strings.Contains(err.Error(), "zero") {
		t.Errorf("Expected a zero-total error, got: %v", err)
	}
}

func TestConvertCellCountsMalformedCount(t *testing.T) {
	hdr := countHeader(t)
	rows := [][]string{{"S1", "10", "twenty", "30", "20", "20"}}

	_, err := ConvertCellCounts(hdr, rows)
	if err == nil {
		t.Fatal("Expected an error for a non-numeric count, got none")
	}
	if !strings.Contains(err.Error(), "cd8_t_cell") {
		t.Errorf("Expected the error to name the offending column, got: %v", err)
	}
}
