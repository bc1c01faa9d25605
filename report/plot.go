package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/treeguess/pkg/errors"
	"github.com/YuminosukeSato/treeguess/sklearn/tree"
)

// QuestionCounts returns the number of questions asked on every path that can
// end on label. An empty label counts every leaf.
func QuestionCounts(t *tree.Tree, label string, opts ...tree.PathOption) []float64 {
	var counts []float64
	if label == "" {
		for _, depth := range t.LeafDepths() {
			counts = append(counts, float64(depth))
		}
		return counts
	}
	for p := range t.FindPaths(label, opts...) {
		counts = append(counts, float64(len(p.Steps)))
	}
	return counts
}

// Histogram plots QuestionCounts as a histogram. The image format follows the
// file extension of out (png, svg, pdf, ...).
func Histogram(t *tree.Tree, label, out string, opts ...tree.PathOption) error {
	counts := QuestionCounts(t, label, opts...)
	if len(counts) == 0 {
		return errors.NewValidationError("label", "no path reaches it", label)
	}

	p := plot.New()
	if label == "" {
		p.Title.Text = "Questions per leaf"
	} else {
		p.Title.Text = fmt.Sprintf("Questions to reach %s", label)
	}
	p.X.Label.Text = "questions"
	p.Y.Label.Text = "paths"

	bins := t.Depth() + 1
	h, err := plotter.NewHist(plotter.Values(counts), bins)
	if err != nil {
		return errors.Wrap(err, "build histogram")
	}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, out); err != nil {
		return errors.Wrapf(err, "save histogram to %s", out)
	}
	return nil
}
