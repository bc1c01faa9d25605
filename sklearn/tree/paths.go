package tree

import (
	"fmt"
	"iter"
	"strings"
)

// Comparison operators on a path step.
const (
	OpLE = "<="
	OpGT = ">"
)

// Step is one split decision on the way to a leaf.
type Step struct {
	Node      int
	Feature   string
	Op        string // OpLE for the left child, OpGT for the right
	Threshold float64
}

func (s Step) String() string {
	return fmt.Sprintf("%s %s %g", s.Feature, s.Op, s.Threshold)
}

// Path is the sequence of steps from the root to Leaf.
type Path struct {
	Leaf  int
	Steps []Step
}

func (p Path) String() string {
	parts := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		parts[i] = s.String()
	}
	return fmt.Sprintf("[%s] -> leaf %d", strings.Join(parts, ", "), p.Leaf)
}

type pathOptions struct {
	majorityOnly bool
}

// PathOption configures FindPaths.
type PathOption func(*pathOptions)

// MajorityOnly restricts matches to leaves whose predicted class is the label.
// By default any leaf holding at least one sample of the label matches.
func MajorityOnly() PathOption {
	return func(o *pathOptions) { o.majorityOnly = true }
}

// FindPaths yields every root-to-leaf path ending in a leaf that matches label,
// exploring the left child before the right. An unknown label yields nothing.
// Iteration uses an explicit stack, so tree depth is not bounded by the call stack.
func (t *Tree) FindPaths(label string, opts ...PathOption) iter.Seq[Path] {
	var o pathOptions
	for _, opt := range opts {
		opt(&o)
	}
	return func(yield func(Path) bool) {
		class := -1
		for i, c := range t.classes {
			if c == label {
				class = i
				break
			}
		}
		if class < 0 {
			return
		}

		type frame struct {
			id    int
			steps []Step
		}
		stack := []frame{{id: 0}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if t.feature[f.id] == TreeUndefined {
				if t.leafMatches(f.id, class, o.majorityOnly) {
					if !yield(Path{Leaf: f.id, Steps: f.steps}) {
						return
					}
				}
				continue
			}

			name := t.features[t.feature[f.id]]
			thr := t.threshold[f.id]
			// The three-index slice forces append to copy, so siblings never share steps.
			base := f.steps[:len(f.steps):len(f.steps)]
			stack = append(stack,
				frame{id: t.right[f.id], steps: append(base, Step{Node: f.id, Feature: name, Op: OpGT, Threshold: thr})},
				frame{id: t.left[f.id], steps: append(base, Step{Node: f.id, Feature: name, Op: OpLE, Threshold: thr})},
			)
		}
	}
}

// AllPaths collects FindPaths into a slice.
func (t *Tree) AllPaths(label string, opts ...PathOption) []Path {
	var out []Path
	for p := range t.FindPaths(label, opts...) {
		out = append(out, p)
	}
	return out
}

func (t *Tree) leafMatches(id, class int, majorityOnly bool) bool {
	if majorityOnly {
		p, err := t.Prediction(id)
		return err == nil && p.Class == class
	}
	return t.votes.At(id, class) > 0
}

// LeafDepths yields every leaf reachable from the root with its depth, left
// subtrees first.
func (t *Tree) LeafDepths() iter.Seq2[int, int] {
	return func(yield func(leaf, depth int) bool) {
		type frame struct{ id, depth int }
		stack := []frame{{0, 0}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if t.feature[f.id] == TreeUndefined {
				if !yield(f.id, f.depth) {
					return
				}
				continue
			}
			stack = append(stack, frame{t.right[f.id], f.depth + 1}, frame{t.left[f.id], f.depth + 1})
		}
	}
}
