package tree

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinels used by sklearn's tree arrays.
const (
	// TreeLeaf marks a missing child.
	TreeLeaf = -1
	// TreeUndefined marks the feature of a leaf.
	TreeUndefined = -2
)

// Artifact is the serialized form of a trained classifier.
type Artifact struct {
	Classes      []Label  `json:"classes" yaml:"classes"`
	FeatureNames []string `json:"feature_names,omitempty" yaml:"feature_names,omitempty"`
	NFeaturesIn  int      `json:"n_features_in,omitempty" yaml:"n_features_in,omitempty"`
	Tree         Arrays   `json:"tree" yaml:"tree"`
}

// Arrays mirrors the parallel arrays of sklearn.tree._tree.Tree.
type Arrays struct {
	NodeCount     int         `json:"node_count" yaml:"node_count"`
	Feature       []int       `json:"feature" yaml:"feature"`
	Threshold     []float64   `json:"threshold" yaml:"threshold"`
	ChildrenLeft  []int       `json:"children_left" yaml:"children_left"`
	ChildrenRight []int       `json:"children_right" yaml:"children_right"`
	Value         [][]float64 `json:"value" yaml:"value"`
}

// Label is a class label. sklearn allows numeric classes, so numbers are
// accepted and kept as their literal text.
type Label string

// UnmarshalJSON accepts a JSON string or any other scalar.
func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Label(s)
		return nil
	}
	*l = Label(strings.TrimSpace(string(data)))
	return nil
}

// UnmarshalYAML accepts any scalar node.
func (l *Label) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*l = Label(s)
	return nil
}
