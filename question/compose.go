package question

import (
	"fmt"
	"strings"
)

// Node is a decision node phrased as a yes/no question.
type Node struct {
	ID        int     `json:"id"`
	Feature   string  `json:"feature"`
	Threshold float64 `json:"threshold"`
	Text      string  `json:"question"`
	Kind      Kind    `json:"kind"`
	// Yes and No are the child ids reached by each answer.
	Yes int `json:"yes"`
	No  int `json:"no"`
	// Left and Right are the physical children (<= threshold and > threshold).
	Left       int    `json:"left"`
	Right      int    `json:"right"`
	LeftLabel  string `json:"left_label"`
	RightLabel string `json:"right_label"`
}

// Child returns the child reached by answering yes (true) or no (false).
func (n Node) Child(yes bool) int {
	if yes {
		return n.Yes
	}
	return n.No
}

// Answer returns the answer that leads from n to child, and false when child
// is not one of n's children.
func (n Node) Answer(child int) (yes bool, ok bool) {
	switch child {
	case n.Yes:
		return true, true
	case n.No:
		return false, true
	default:
		return false, false
	}
}

// Compose phrases a classified split and orients its branches. It depends on
// nothing but its arguments; the caller sets Node.ID.
func Compose(split Split, feature string, threshold float64, left, right int) Node {
	n := Node{
		Feature:   feature,
		Threshold: threshold,
		Kind:      split.Kind,
		Left:      left,
		Right:     right,
	}

	if split.Kind == Numeric {
		t := FormatThreshold(threshold)
		_, subject := stripPrefix(Humanize(feature))
		n.Text = finish(fmt.Sprintf("is the character's %s ≤ %s", subject, t))
		n.Yes, n.No = left, right
		n.LeftLabel = fmt.Sprintf("%s ≤ %s", feature, t)
		n.RightLabel = fmt.Sprintf("%s > %s", feature, t)
		return n
	}

	if split.Kind == Categorical {
		n.Text = finish(categoricalPhrase(split))
	} else {
		n.Text = finish(flagPhrase(Humanize(trimSeparators(feature))))
	}
	n.Yes, n.No = right, left
	n.LeftLabel, n.RightLabel = "No", "Yes"
	return n
}

func categoricalPhrase(s Split) string {
	switch s.Base {
	case "", "gender", "sex":
		if s.Verb == VerbHas || s.Verb == VerbHave {
			return "does the character have " + s.Value
		}
		return "is the character " + s.Value
	default:
		return fmt.Sprintf("is the character's %s %s", s.Base, s.Value)
	}
}

func flagPhrase(flag string) string {
	verb, rest := stripPrefix(flag)
	if verb == VerbHas || verb == VerbHave {
		return "does the character have " + rest
	}
	return "is the character " + rest
}

// stripPrefix removes a leading is/has/have word from a humanized name. The
// name is returned unchanged when nothing would remain.
func stripPrefix(name string) (verb, rest string) {
	head, tail, found := strings.Cut(name, " ")
	if !found || !booleanPrefix[head] {
		return "", name
	}
	return head, tail
}

// finish capitalizes the phrase and makes sure it ends in punctuation.
func finish(phrase string) string {
	phrase = capitalize(strings.TrimSpace(phrase))
	if strings.HasSuffix(phrase, "?") || strings.HasSuffix(phrase, ".") || strings.HasSuffix(phrase, "!") {
		return phrase
	}
	return phrase + "?"
}
