package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// New2DPlot creates new plot of the simulated trajectories:
// truth:    ground truth robot positions
// odometry: odometry only positions
// filtered: filter position estimates
// It returns error if the plot fails to be created. This can be due to either of the following conditions:
// * either of the supplied data matrices is nil
// * either of the supplied data matrices does not have at least 2 columns
// * gonum plot fails to be created
func New2DPlot(truth, odometry, filtered *mat.Dense) (*plot.Plot, error) {
	if truth == nil || odometry == nil || filtered == nil {
		return nil, fmt.Errorf("invalid data supplied")
	}

	_, ct := truth.Dims()
	_, co := odometry.Dims()
	_, cf := filtered.Dims()

	if ct < 2 || co < 2 || cf < 2 {
		return nil, fmt.Errorf("invalid data dimensions")
	}

	p := plot.New()

	p.Title.Text = "Simulation"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	legend := plot.NewLegend()

	legend.Top = true

	p.Legend = legend

	// Make a scatter plotter for ground truth data
	truthData := makePoints(truth)
	truthScatter, err := plotter.NewScatter(truthData)
	if err != nil {
		return nil, err
	}
	truthScatter.GlyphStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	truthScatter.Shape = draw.PyramidGlyph{}
	truthScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(truthScatter)
	p.Legend.Add("truth", truthScatter)

	// Make a scatter plotter for odometry data
	odoData := makePoints(odometry)
	odoScatter, err := plotter.NewScatter(odoData)
	if err != nil {
		return nil, err
	}
	odoScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 128}
	odoScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(odoScatter)
	p.Legend.Add("odometry", odoScatter)

	// Make a scatter plotter for filtered data
	filteredPoints := makePoints(filtered)
	filteredScatter, err := plotter.NewScatter(filteredPoints)
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	filteredScatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169}
	filteredScatter.Shape = draw.CrossGlyph{}
	filteredScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(filteredScatter)
	p.Legend.Add("filtered", filteredScatter)

	return p, nil
}

func makePoints(m *mat.Dense) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = m.At(i, 0)
		pts[i].Y = m.At(i, 1)
	}

	return pts
}
