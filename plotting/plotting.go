// Package plotting draws states against their predictions.
package plotting

import (
	"fmt"

	"github.com/hammal/deepk/gonumExtensions"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Trajectories plots every state of truth and pred against the time indices t
// and saves the figure to path. The format follows the extension of path, e.g.
// .png, .svg or .pdf.
func Trajectories(t []float64, truth, pred mat.Matrix, path string) error {
	if !gonumExtensions.SameShape(truth, pred) {
		return errors.New("truth and prediction differ in shape")
	}
	m, n := truth.Dims()
	if len(t) != m {
		return errors.Errorf("got %d time indices for %d samples", len(t), m)
	}

	p := plot.New()
	p.Title.Text = "Prediction Comparison for Visual aid"
	p.X.Label.Text = "t"
	p.Y.Label.Text = "x"

	var lines []interface{}
	for col := 0; col < n; col++ {
		lines = append(lines,
			fmt.Sprintf("x%d", col), plottify(t, truth, col),
			fmt.Sprintf("x%d predicted", col), plottify(t, pred, col),
		)
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return errors.Wrap(err, "failed to add lines")
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save plot %q", path)
	}
	return nil
}

// plottify returns column col of data as plotter points.
func plottify(t []float64, data mat.Matrix, col int) plotter.XYs {
	pts := make(plotter.XYs, len(t))
	for i := range pts {
		pts[i].X = t[i]
		pts[i].Y = data.At(i, col)
	}
	return pts
}
