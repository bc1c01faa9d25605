// Package report summarizes a loaded tree: its shape, how leaves split across
// classes, how well leaves separate the training samples, and how many
// questions it takes to reach each character.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/treeguess/metrics"
	"github.com/YuminosukeSato/treeguess/sklearn/tree"
)

// ClassStats describes one class.
type ClassStats struct {
	Label     string
	Samples   float64
	Leaves    int // leaves predicting the class
	MinDepth  int // fewest questions to a leaf predicting the class, -1 when none
	Precision float64
	Recall    float64
}

// Summary is the report for one tree.
type Summary struct {
	Source   string
	Nodes    int
	Leaves   int
	Depth    int
	Features int
	Accuracy float64
	// LeafGini is the sample-weighted mean Gini impurity of the leaves.
	LeafGini float64
	Classes  []ClassStats
}

// Summarize computes the report for t.
func Summarize(t *tree.Tree) (*Summary, error) {
	s := &Summary{
		Source:   t.Source(),
		Nodes:    t.NodeCount(),
		Leaves:   t.Leaves(),
		Depth:    t.Depth(),
		Features: t.NumFeatures(),
		Classes:  make([]ClassStats, t.NumClasses()),
	}
	for i := range s.Classes {
		s.Classes[i] = ClassStats{Label: t.ClassLabel(i), MinDepth: -1}
	}

	var weighted, samples float64
	for leaf, depth := range t.LeafDepths() {
		votes, err := t.Votes(leaf)
		if err != nil {
			return nil, err
		}
		p, err := t.Prediction(leaf)
		if err != nil {
			return nil, err
		}
		n := floats.Sum(votes)
		weighted += n * metrics.Gini(votes)
		samples += n

		cs := &s.Classes[p.Class]
		cs.Leaves++
		if cs.MinDepth < 0 || depth < cs.MinDepth {
			cs.MinDepth = depth
		}
		for class, v := range votes {
			s.Classes[class].Samples += v
		}
	}
	if samples > 0 {
		s.LeafGini = weighted / samples
	}

	conf, err := metrics.Confusion(t)
	if err != nil {
		return nil, err
	}
	if samples > 0 {
		if s.Accuracy, err = metrics.Accuracy(conf); err != nil {
			return nil, err
		}
	}
	precision, recall, err := metrics.PrecisionRecall(conf)
	if err != nil {
		return nil, err
	}
	for i := range s.Classes {
		s.Classes[i].Precision = precision[i]
		s.Classes[i].Recall = recall[i]
	}
	return s, nil
}

// Write renders the summary as plain text.
func (s *Summary) Write(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "tree:      %s\n", s.Source)
	fmt.Fprintf(&b, "nodes:     %d (%d leaves)\n", s.Nodes, s.Leaves)
	fmt.Fprintf(&b, "depth:     %d\n", s.Depth)
	fmt.Fprintf(&b, "features:  %d\n", s.Features)
	fmt.Fprintf(&b, "accuracy:  %.3f\n", s.Accuracy)
	fmt.Fprintf(&b, "leaf gini: %.3f\n\n", s.LeafGini)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	classes := append([]ClassStats(nil), s.Classes...)
	sort.SliceStable(classes, func(i, j int) bool { return classes[i].Samples > classes[j].Samples })

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASS\tSAMPLES\tLEAVES\tMIN QUESTIONS\tPRECISION\tRECALL")
	for _, c := range classes {
		minDepth := "-"
		if c.MinDepth >= 0 {
			minDepth = fmt.Sprint(c.MinDepth)
		}
		fmt.Fprintf(tw, "%s\t%g\t%d\t%s\t%.3f\t%.3f\n", c.Label, c.Samples, c.Leaves, minDepth, c.Precision, c.Recall)
	}
	return tw.Flush()
}
