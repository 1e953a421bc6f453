package cohort

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/immunoprofile/relcell/immune"
)

// Summary describes one cohort's percentage distribution for one population.
type Summary struct {
	N      int
	Median float64
	Q1     float64
	Q3     float64
}

// Comparison contrasts the two cohorts for one population. T and P are
// Welch's t statistic and its two-sided p-value; both are NaN when either
// cohort has fewer than two observations.
type Comparison struct {
	CellType      immune.CellType
	Responders    Summary
	NonResponders Summary
	T             float64
	P             float64
}

// Compare summarizes both cohorts per population, in CellTypes order.
func Compare(g *Groups) []Comparison {
	out := make([]Comparison, 0, len(immune.CellTypes))
	for _, ct := range immune.CellTypes {
		c := Comparison{
			CellType:      ct,
			Responders:    summarize(g.Responders[ct]),
			NonResponders: summarize(g.NonResponders[ct]),
		}
		c.T, c.P = welch(g.Responders[ct], g.NonResponders[ct])
		out = append(out, c)
	}

	return out
}

func summarize(vals []float64) Summary {
	s := Summary{
		N:      len(vals),
		Median: math.NaN(),
		Q1:     math.NaN(),
		Q3:     math.NaN(),
	}

	if median, err := stats.Median(vals); err == nil {
		s.Median = median
	}
	if q, err := stats.Quartile(vals); err == nil {
		s.Q1 = q.Q1
		s.Q3 = q.Q3
	}

	return s
}

// welch computes Welch's unequal-variance t-test with Welch-Satterthwaite
// degrees of freedom.
func welch(x, y []float64) (t, p float64) {
	if len(x) < 2 || len(y) < 2 {
		return math.NaN(), math.NaN()
	}

	nx, ny := float64(len(x)), float64(len(y))
	sx, sy := stat.Variance(x, nil)/nx, stat.Variance(y, nil)/ny

	se := math.Sqrt(sx + sy)
	if se == 0 {
		return math.NaN(), math.NaN()
	}

	t = (stat.Mean(x, nil) - stat.Mean(y, nil)) / se
	df := (sx + sy) * (sx + sy) / (sx*sx/(nx-1) + sy*sy/(ny-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * dist.CDF(-math.Abs(t))

	return t, p
}
