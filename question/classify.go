package question

import (
	"math"
	"strings"
)

// Kind is the encoding a split was trained on.
type Kind int

const (
	// Boolean is a plain binary flag such as "is_male".
	Boolean Kind = iota
	// Categorical is one value of a one-hot encoded attribute such as "hair_color_blond".
	Categorical
	// Numeric is a genuine threshold on a continuous feature.
	Numeric
)

func (k Kind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Categorical:
		return "categorical"
	case Numeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Boolean prefixes recognized on feature names.
const (
	VerbIs   = "is"
	VerbHas  = "has"
	VerbHave = "have"
)

// Split is a classified split.
type Split struct {
	Kind Kind
	// Base and Value are humanized. Base is empty when the value stands alone.
	Base  string
	Value string
	// Verb is the boolean prefix that introduced Value, if any.
	Verb      string
	Threshold float64
}

// IsBooleanThreshold reports whether t looks like a split on a 0/1 indicator.
func IsBooleanThreshold(t float64) bool {
	if t >= 0 && t <= 1 && math.Abs(t-0.5) < 1e-3 {
		return true
	}
	return math.Abs(t) < 1e-9 || math.Abs(t-1) < 1e-9
}

// Matcher decomposes a boolean feature name into base and value. Match
// reports false when the name does not have the shape the matcher handles.
type Matcher struct {
	Name  string
	Match func(feature string) (Split, bool)
}

var (
	separators      = []string{"==", "=", ":", "__"}
	categoricalStem = map[string]bool{"gender": true, "sex": true, "hair": true, "eye": true, "haircolor": true, "eyecolor": true}
	booleanPrefix   = map[string]bool{VerbIs: true, VerbHas: true, VerbHave: true}
)

// DefaultMatchers are tried in order by Classify.
var DefaultMatchers = []Matcher{
	{Name: "separator", Match: matchSeparator},
	{Name: "tokens", Match: matchTokens},
	{Name: "stem", Match: matchStem},
	{Name: "prefix", Match: matchPrefix},
}

func matchSeparator(feature string) (Split, bool) {
	for _, sep := range separators {
		i := strings.Index(feature, sep)
		if i < 0 {
			continue
		}
		value := Humanize(feature[i+len(sep):])
		if value == "" {
			return Split{}, false
		}
		return Split{Kind: Categorical, Base: Humanize(feature[:i]), Value: value}, true
	}
	return Split{}, false
}

func underscoreTokens(feature string) []string {
	return strings.FieldsFunc(feature, func(r rune) bool { return r == '_' })
}

// matchTokens splits base_with_words_value on its last underscore.
//
// Names led by is/has/have are never split, however many tokens they have:
// has_long_hair stays a Boolean flag and reads "Does the character have long
// hair?" rather than asking whether the character's "has long" is "hair".
// Keep this exception; question wording depends on it.
func matchTokens(feature string) (Split, bool) {
	tokens := underscoreTokens(feature)
	if len(tokens) < 3 || booleanPrefix[strings.ToLower(tokens[0])] {
		return Split{}, false
	}
	last := len(tokens) - 1
	return Split{
		Kind:  Categorical,
		Base:  Humanize(strings.Join(tokens[:last], "_")),
		Value: Humanize(tokens[last]),
	}, true
}

func matchStem(feature string) (Split, bool) {
	tokens := underscoreTokens(feature)
	if len(tokens) != 2 || !categoricalStem[strings.ToLower(tokens[0])] {
		return Split{}, false
	}
	return Split{Kind: Categorical, Base: Humanize(tokens[0]), Value: Humanize(tokens[1])}, true
}

func matchPrefix(feature string) (Split, bool) {
	tokens := underscoreTokens(feature)
	if len(tokens) != 2 {
		return Split{}, false
	}
	verb := strings.ToLower(tokens[0])
	if !booleanPrefix[verb] {
		return Split{}, false
	}
	return Split{Kind: Categorical, Value: Humanize(tokens[1]), Verb: verb}, true
}

// Classifier classifies splits with an ordered list of matchers.
type Classifier struct {
	matchers []Matcher
}

// NewClassifier returns a classifier trying matchers in order. With no
// matchers it uses DefaultMatchers.
func NewClassifier(matchers ...Matcher) *Classifier {
	if len(matchers) == 0 {
		matchers = DefaultMatchers
	}
	return &Classifier{matchers: matchers}
}

// trimSeparators drops separators and underscores trailing a name, so "hair=="
// is read as "hair". A name made only of them is returned unchanged.
func trimSeparators(feature string) string {
	if trimmed := strings.TrimRight(feature, "=:_"); trimmed != "" {
		return trimmed
	}
	return feature
}

// Classify decides how the split on feature at threshold is encoded.
func (c *Classifier) Classify(feature string, threshold float64) Split {
	if !IsBooleanThreshold(threshold) {
		return Split{Kind: Numeric, Threshold: threshold}
	}
	feature = trimSeparators(feature)
	for _, m := range c.matchers {
		if s, ok := m.Match(feature); ok {
			s.Threshold = threshold
			return s
		}
	}
	return Split{Kind: Boolean, Threshold: threshold}
}

var defaultClassifier = NewClassifier()

// Classify uses the default matchers.
func Classify(feature string, threshold float64) Split {
	return defaultClassifier.Classify(feature, threshold)
}
