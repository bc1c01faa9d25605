// Package metrics scores a trained tree against the training samples recorded
// in its leaves. Every sample counted at a leaf is taken as predicted with the
// leaf's majority class, which gives the tree's resubstitution confusion matrix.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/treeguess/pkg/errors"
	"github.com/YuminosukeSato/treeguess/sklearn/tree"
)

// Confusion returns the n_classes x n_classes matrix whose (i, j) entry is the
// number of samples of class i that land in a leaf predicting class j.
func Confusion(t *tree.Tree) (*mat.Dense, error) {
	k := t.NumClasses()
	conf := mat.NewDense(k, k, nil)
	for leaf := range t.LeafDepths() {
		p, err := t.Prediction(leaf)
		if err != nil {
			return nil, err
		}
		votes, err := t.Votes(leaf)
		if err != nil {
			return nil, err
		}
		for class, n := range votes {
			conf.Set(class, p.Class, conf.At(class, p.Class)+n)
		}
	}
	return conf, nil
}

// Accuracy is the share of samples on the diagonal of conf.
func Accuracy(conf mat.Matrix) (float64, error) {
	r, c := conf.Dims()
	if r != c {
		return 0, errors.NewValidationError("conf", "must be square", [2]int{r, c})
	}
	total := mat.Sum(conf)
	if total == 0 {
		return 0, errors.NewValidationError("conf", "holds no samples", total)
	}
	return mat.Trace(conf) / total, nil
}

// PrecisionRecall returns per-class precision and recall. A class that is
// never predicted (or never occurs) scores 0.
func PrecisionRecall(conf mat.Matrix) (precision, recall []float64, err error) {
	r, c := conf.Dims()
	if r != c {
		return nil, nil, errors.NewValidationError("conf", "must be square", [2]int{r, c})
	}
	precision = make([]float64, r)
	recall = make([]float64, r)
	for i := 0; i < r; i++ {
		tp := conf.At(i, i)
		if predicted := floats.Sum(mat.Col(nil, i, conf)); predicted > 0 {
			precision[i] = tp / predicted
		}
		if actual := floats.Sum(mat.Row(nil, i, conf)); actual > 0 {
			recall[i] = tp / actual
		}
	}
	return precision, recall, nil
}

// Gini is the Gini impurity of a vote vector: 0 for a pure node.
func Gini(votes []float64) float64 {
	total := floats.Sum(votes)
	if total == 0 {
		return 0
	}
	g := 1.0
	for _, v := range votes {
		p := v / total
		g -= p * p
	}
	return g
}

// Entropy is the Shannon entropy of a vote vector in bits.
func Entropy(votes []float64) float64 {
	total := floats.Sum(votes)
	if total == 0 {
		return 0
	}
	var h float64
	for _, v := range votes {
		if v == 0 {
			continue
		}
		p := v / total
		h -= p * math.Log2(p)
	}
	return h
}
