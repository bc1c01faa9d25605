package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/treeguess/pkg/errors"
)

// Format selects the artifact decoder.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the artifact format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(errors.ErrUnknownFormat, "extension %q", filepath.Ext(path))
	}
}

// Load reads, decodes and validates the artifact at path.
func Load(path string) (*Tree, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, errors.NewLoadError(path, "detect format", err)
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.NewLoadError(path, "read artifact", err)
	}
	return decode(bytes.NewReader(data), format, path)
}

// LoadFromReader decodes and validates an artifact from r.
func LoadFromReader(r io.Reader, format Format) (*Tree, error) {
	return decode(r, format, "<reader>")
}

func decode(r io.Reader, format Format, source string) (*Tree, error) {
	var a Artifact
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&a); err != nil {
			return nil, errors.NewLoadError(source, "decode json", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&a); err != nil {
			return nil, errors.NewLoadError(source, "decode yaml", err)
		}
	default:
		return nil, errors.NewLoadError(source, fmt.Sprintf("format %q", format), errors.ErrUnknownFormat)
	}
	return New(a, source)
}

// New validates an artifact and builds a Tree from it. The artifact's slices
// are copied; later changes to a do not affect the tree.
func New(a Artifact, source string) (*Tree, error) {
	arr := a.Tree
	n := arr.NodeCount

	if len(a.Classes) == 0 {
		return nil, errors.NewLoadErrorf(source, "classes is empty")
	}
	if n <= 0 {
		return nil, errors.NewLoadError(source, fmt.Sprintf("node_count is %d", n), errors.ErrEmptyTree)
	}
	for _, c := range []struct {
		name string
		got  int
	}{
		{"feature", len(arr.Feature)},
		{"threshold", len(arr.Threshold)},
		{"children_left", len(arr.ChildrenLeft)},
		{"children_right", len(arr.ChildrenRight)},
		{"value", len(arr.Value)},
	} {
		if c.got != n {
			return nil, errors.NewLoadErrorf(source, "%s has %d entries, node_count is %d", c.name, c.got, n)
		}
	}

	nClasses := len(a.Classes)
	votes := mat.NewDense(n, nClasses, nil)
	for i, row := range arr.Value {
		if len(row) != nClasses {
			return nil, errors.NewLoadErrorf(source, "value[%d] has %d entries, expected %d classes", i, len(row), nClasses)
		}
		for j, v := range row {
			if v < 0 {
				return nil, errors.NewLoadErrorf(source, "value[%d][%d] is negative", i, j)
			}
		}
		votes.SetRow(i, row)
	}

	features := featureNames(a, source)

	t := &Tree{
		source:    source,
		feature:   append([]int(nil), arr.Feature...),
		threshold: append([]float64(nil), arr.Threshold...),
		left:      append([]int(nil), arr.ChildrenLeft...),
		right:     append([]int(nil), arr.ChildrenRight...),
		votes:     votes,
		features:  features,
		classes:   make([]string, nClasses),
	}
	for i, c := range a.Classes {
		t.classes[i] = string(c)
	}

	if err := t.validateStructure(); err != nil {
		return nil, err
	}
	t.depth, t.leaves = t.measure()
	return t, nil
}

// featureNames returns the artifact's names, or feature_0..feature_{k-1} when
// the artifact carries none.
func featureNames(a Artifact, source string) []string {
	if len(a.FeatureNames) > 0 {
		return append([]string(nil), a.FeatureNames...)
	}
	k := a.NFeaturesIn
	for _, f := range a.Tree.Feature {
		if f+1 > k {
			k = f + 1
		}
	}
	names := make([]string, k)
	for i := range names {
		names[i] = fmt.Sprintf("feature_%d", i)
	}
	if k > 0 {
		errors.Warn(errors.NewFeatureNamesWarning(source, k))
	}
	return names
}

// validateStructure checks that the arrays describe a single tree rooted at 0.
func (t *Tree) validateStructure() error {
	n := t.NodeCount()
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}

	for id := 0; id < n; id++ {
		f, l, r := t.feature[id], t.left[id], t.right[id]
		if f == TreeUndefined {
			if l != TreeLeaf || r != TreeLeaf {
				return errors.NewLoadErrorf(t.source, "leaf %d has children (%d, %d)", id, l, r)
			}
			continue
		}
		if f < 0 || f >= len(t.features) {
			return errors.NewLoadErrorf(t.source, "node %d uses feature %d, model has %d features", id, f, len(t.features))
		}
		for _, child := range []int{l, r} {
			if child <= 0 || child >= n {
				return errors.NewLoadErrorf(t.source, "node %d has child %d outside (0, %d)", id, child, n)
			}
			if parent[child] != -1 {
				return errors.NewLoadErrorf(t.source, "node %d is a child of both %d and %d", child, parent[child], id)
			}
			parent[child] = id
		}
	}

	// Nothing points at the root and no node has two parents, so the walk
	// from 0 ends. Whatever it misses is detached, possibly in a cycle.
	reached := make([]bool, n)
	stack := []int{0}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		reached[id] = true
		if t.feature[id] != TreeUndefined {
			stack = append(stack, t.right[id], t.left[id])
		}
	}
	for id, ok := range reached {
		if !ok {
			return errors.NewLoadErrorf(t.source, "node %d is not reachable from the root", id)
		}
	}
	return nil
}

// measure returns the tree's depth and leaf count.
func (t *Tree) measure() (depth, leaves int) {
	for _, d := range t.LeafDepths() {
		leaves++
		depth = max(depth, d)
	}
	return depth, leaves
}
