// Package cohort partitions per-sample relative cell counts into treatment
// responder and non-responder groups for comparison.
package cohort

import (
	"fmt"
	"strconv"

	"github.com/immunoprofile/relcell/immune"
)

// Treatment-table columns beyond the count columns.
const (
	TreatmentColumn  = "treatment"
	SampleTypeColumn = "sample_type"
	ResponseColumn   = "response"
)

// Treatment is the treatment code whose response is under study.
const Treatment = "tr1"

// Response flag values.
const (
	Responding    = "y"
	NonResponding = "n"
)

// IncludeSampleTypes lists the sample types admitted into the cohorts. Only
// blood (PBMC) samples are comparable across patients.
var IncludeSampleTypes = map[string]struct{}{
	"PBMC": {},
}

// RequiredTreatmentColumns returns the full column set a treatment table
// must carry for cohort analysis.
func RequiredTreatmentColumns() []string {
	return append(immune.RequiredCountColumns(), TreatmentColumn, SampleTypeColumn, ResponseColumn)
}

// Index holds each sample's relative percentage per population, built once
// from the full record set.
type Index map[string]map[immune.CellType]float64

// IndexRelative validates and indexes relative-count records. Exactly one
// record may exist per (sample, population) pair; a duplicate means the
// derived table is corrupt and is reported rather than overwritten. A
// percentage that does not parse is the same failure class as a malformed
// count.
func IndexRelative(recs []immune.Relative) (Index, error) {
	idx := make(Index)

	for _, rec := range recs {
		ct, err := immune.ParseCellType(rec.Population)
		if err != nil {
			return nil, fmt.Errorf("sample %q: %v", rec.Sample, err)
		}

		percentage, err := strconv.ParseFloat(rec.Percentage, 64)
		if err != nil {
			return nil, fmt.Errorf("sample %q, population %q: cannot parse percentage %q", rec.Sample, rec.Population, rec.Percentage)
		}

		sample, ok := idx[rec.Sample]
		if !ok {
			sample = make(map[immune.CellType]float64, len(immune.CellTypes))
			idx[rec.Sample] = sample
		}
		if _, dup := sample[ct]; dup {
			return nil, fmt.Errorf("expected 1 record per population per sample, but got multiple for sample %q with population %q", rec.Sample, rec.Population)
		}
		sample[ct] = percentage
	}

	return idx, nil
}

// Groups holds the per-population percentage lists for each cohort. Both
// maps carry an entry for every population, even when no sample qualified.
type Groups struct {
	Responders    map[immune.CellType][]float64
	NonResponders map[immune.CellType][]float64
}

// NewGroups returns Groups with empty lists for every population.
func NewGroups() *Groups {
	g := &Groups{
		Responders:    make(map[immune.CellType][]float64, len(immune.CellTypes)),
		NonResponders: make(map[immune.CellType][]float64, len(immune.CellTypes)),
	}
	for _, ct := range immune.CellTypes {
		g.Responders[ct] = []float64{}
		g.NonResponders[ct] = []float64{}
	}

	return g
}

// Partition filters treatment rows down to qualifying samples (treatment
// code matches and the sample type is included) and splits their relative
// percentages between the responder and non-responder cohorts according to
// the response flag. Non-qualifying rows contribute to neither cohort. A
// qualifying sample with no relative records contributes nothing, matching
// the empty lookup result of a per-sample scan.
func Partition(hdr immune.Header, rows [][]string, idx Index) (*Groups, error) {
	groups := NewGroups()

	for i, row := range rows {
		treatment, sampleType, response, sample, err := treatmentFields(hdr, row)
		if err != nil {
			return nil, fmt.Errorf("data row %d: %v", i+1, err)
		}

		if treatment != Treatment {
			continue
		}
		if _, ok := IncludeSampleTypes[sampleType]; !ok {
			continue
		}

		counter := groups.NonResponders
		if response == Responding {
			counter = groups.Responders
		}

		for ct, percentage := range idx[sample] {
			counter[ct] = append(counter[ct], percentage)
		}
	}

	return groups, nil
}

func treatmentFields(hdr immune.Header, row []string) (treatment, sampleType, response, sample string, err error) {
	for col, dst := range map[string]*string{
		TreatmentColumn:     &treatment,
		SampleTypeColumn:    &sampleType,
		ResponseColumn:      &response,
		immune.SampleColumn: &sample,
	} {
		idx := hdr[col]
		if idx >= len(row) {
			err = fmt.Errorf("row has %d fields, but column %q is at index %d", len(row), col, idx)
			return
		}
		*dst = row[idx]
	}

	return
}
