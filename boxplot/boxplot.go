// Package boxplot renders responder versus non-responder percentage
// distributions as horizontal box-and-whisker figures.
package boxplot

import (
	"github.com/carbocation/pfx"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/immunoprofile/relcell/cohort"
	"github.com/immunoprofile/relcell/immune"
)

// XLabel is shared by every figure so they can be compared at a glance.
const XLabel = "Percentage of cells of this type within sample"

const boxWidth = vg.Length(30)

// Figure builds one horizontal box-and-whisker comparison. Non-responders
// sit on the bottom row and responders on top; a cohort with no samples
// leaves its row empty rather than failing.
func Figure(label string, responders, nonresponders []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = label
	p.X.Label.Text = XLabel

	// Row 0 is the bottom of the figure.
	if err := addBox(p, 0, nonresponders); err != nil {
		return nil, err
	}
	if err := addBox(p, 1, responders); err != nil {
		return nil, err
	}

	p.NominalY("nonresponders", cohort.Treatment+" responders")

	return p, nil
}

func addBox(p *plot.Plot, row float64, vals []float64) error {
	if len(vals) == 0 {
		return nil
	}

	b, err := plotter.NewBoxPlot(boxWidth, row, plotter.Values(vals))
	if err != nil {
		return pfx.Err(err)
	}
	b.Horizontal = true
	p.Add(b)

	return nil
}

// Figures builds one figure per population, keyed by population.
func Figures(g *cohort.Groups) (map[immune.CellType]*plot.Plot, error) {
	out := make(map[immune.CellType]*plot.Plot, len(immune.CellTypes))
	for _, ct := range immune.CellTypes {
		p, err := Figure(ct.String(), g.Responders[ct], g.NonResponders[ct])
		if err != nil {
			return nil, err
		}
		out[ct] = p
	}

	return out, nil
}

// Save renders the figure as a PNG at a fixed size, inferring the format
// from the path's extension.
func Save(p *plot.Plot, path string) error {
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return pfx.Err(err)
	}

	return nil
}
