// Package question turns decision-tree splits into yes/no questions.
//
// A split is first classified from its feature name and threshold: thresholds
// near 0.5 (or exactly 0 or 1) mark binary indicators, which are either plain
// flags ("is_male") or one-hot encodings of a categorical value
// ("hair_color_blond"). Anything else is a numeric comparison. The composer then
// phrases the question and decides which child answers "yes":
//
//	boolean / categorical   yes = right child (value > threshold)
//	numeric                 yes = left child  (value <= threshold)
//
// Everything in this package is a pure function of its inputs.
package question
