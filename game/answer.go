package game

import (
	"strings"

	"github.com/YuminosukeSato/treeguess/pkg/errors"
	"github.com/YuminosukeSato/treeguess/sklearn/tree"
)

// ParseAnswer reads a yes/no answer.
func ParseAnswer(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true, nil
	case "n", "no", "false", "0":
		return false, nil
	default:
		return false, errors.NewValidationError("answer", "must be yes or no", s)
	}
}

// FormatAnswer renders an answer as "yes" or "no".
func FormatAnswer(yes bool) string {
	if yes {
		return "yes"
	}
	return "no"
}

// Turn is one question of a game together with the answer given to it.
type Turn struct {
	NodeID   int
	Question string
	Yes      bool
}

func (t Turn) String() string {
	return t.Question + " " + strings.ToUpper(FormatAnswer(t.Yes))
}

// Answers replays a path as the questions the game asks along it and the
// answers that lead down each edge.
func (r *Resolver) Answers(p tree.Path) ([]Turn, error) {
	turns := make([]Turn, 0, len(p.Steps))
	for _, step := range p.Steps {
		res, err := r.Resolve(step.Node)
		if err != nil {
			return nil, err
		}
		if res.IsGuess() {
			return nil, errors.Newf("path step at node %d reaches a leaf", step.Node)
		}
		q := res.Question
		child := q.Right
		if step.Op == tree.OpLE {
			child = q.Left
		}
		yes, ok := q.Answer(child)
		if !ok {
			return nil, errors.Newf("node %d has no child %d", step.Node, child)
		}
		turns = append(turns, Turn{NodeID: step.Node, Question: q.Text, Yes: yes})
	}
	return turns, nil
}
