package tree

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/treeguess/pkg/errors"
)

// Tree is a validated, immutable decision tree. All methods are safe for
// concurrent use.
type Tree struct {
	source    string
	feature   []int
	threshold []float64
	left      []int
	right     []int
	votes     *mat.Dense // node_count x n_classes

	features []string
	classes  []string

	depth  int
	leaves int
}

// Node is the structural view of one node.
type Node struct {
	ID          int
	Feature     int // TreeUndefined for leaves
	FeatureName string
	Threshold   float64
	Left        int // TreeLeaf for leaves
	Right       int
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool {
	return n.Feature == TreeUndefined
}

// Prediction is the majority class at a node.
type Prediction struct {
	Class      int
	Label      string
	Confidence float64 // majority votes over total votes, 0 when the node holds none
}

// Source is the path or name the tree was loaded from.
func (t *Tree) Source() string { return t.source }

// NodeCount returns the number of nodes.
func (t *Tree) NodeCount() int { return len(t.feature) }

// NumFeatures returns the number of input features.
func (t *Tree) NumFeatures() int { return len(t.features) }

// NumClasses returns the number of classes.
func (t *Tree) NumClasses() int { return len(t.classes) }

// Features returns a copy of the feature names in column order.
func (t *Tree) Features() []string {
	out := make([]string, len(t.features))
	copy(out, t.features)
	return out
}

// Classes returns a copy of the class labels in column order of the vote matrix.
func (t *Tree) Classes() []string {
	out := make([]string, len(t.classes))
	copy(out, t.classes)
	return out
}

// FeatureName returns the name of feature column i.
func (t *Tree) FeatureName(i int) string {
	if i < 0 || i >= len(t.features) {
		return ""
	}
	return t.features[i]
}

// ClassLabel returns the label of class column i.
func (t *Tree) ClassLabel(i int) string {
	if i < 0 || i >= len(t.classes) {
		return ""
	}
	return t.classes[i]
}

// Depth is the number of edges on the longest root-to-leaf path.
func (t *Tree) Depth() int { return t.depth }

// Leaves is the number of leaf nodes.
func (t *Tree) Leaves() int { return t.leaves }

// Contains reports whether id addresses a node.
func (t *Tree) Contains(id int) bool {
	return id >= 0 && id < len(t.feature)
}

// Node returns the node with the given id, or a NotFoundError.
func (t *Tree) Node(id int) (Node, error) {
	if !t.Contains(id) {
		return Node{}, errors.NewNotFoundError(id, t.NodeCount())
	}
	n := Node{
		ID:        id,
		Feature:   t.feature[id],
		Threshold: t.threshold[id],
		Left:      t.left[id],
		Right:     t.right[id],
	}
	if !n.IsLeaf() {
		n.FeatureName = t.features[n.Feature]
	}
	return n, nil
}

// IsLeaf reports whether id is a leaf. Out-of-range ids are not leaves.
func (t *Tree) IsLeaf(id int) bool {
	return t.Contains(id) && t.feature[id] == TreeUndefined
}

// Votes returns a copy of the per-class sample counts at a node.
func (t *Tree) Votes(id int) ([]float64, error) {
	if !t.Contains(id) {
		return nil, errors.NewNotFoundError(id, t.NodeCount())
	}
	return mat.Row(nil, id, t.votes), nil
}

// Prediction returns the majority class at a node. Ties go to the lowest
// class index.
func (t *Tree) Prediction(id int) (Prediction, error) {
	if !t.Contains(id) {
		return Prediction{}, errors.NewNotFoundError(id, t.NodeCount())
	}
	row := t.votes.RawRowView(id)
	best := floats.MaxIdx(row)
	p := Prediction{Class: best, Label: t.classes[best]}
	if total := floats.Sum(row); total > 0 {
		p.Confidence = row[best] / total
	}
	return p, nil
}

func (t *Tree) String() string {
	return fmt.Sprintf("Tree(source=%s, nodes=%d, features=%d, classes=%d, depth=%d)",
		t.source, t.NodeCount(), t.NumFeatures(), t.NumClasses(), t.depth)
}
