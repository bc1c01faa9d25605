package question

import (
	"math"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/treeguess/pkg/errors"
)

const integerEpsilon = 1e-6

// FormatThreshold renders a split threshold for display: a bare integer when t
// is within 1e-6 of one, otherwise at most two decimals with trailing zeros
// dropped. Values that cannot be formatted (NaN, ±Inf) come back in Go's
// shortest representation.
func FormatThreshold(t float64) string {
	s, err := formatThreshold(t)
	if err != nil {
		return strconv.FormatFloat(t, 'g', -1, 64)
	}
	return s
}

func formatThreshold(t float64) (string, error) {
	if err := errors.CheckFinite(t); err != nil {
		return "", err
	}
	if r := math.Round(t); math.Abs(t-r) < integerEpsilon {
		if r == 0 {
			r = 0 // drop the sign of -0
		}
		return strconv.FormatFloat(r, 'f', 0, 64), nil
	}
	s := strconv.FormatFloat(t, 'f', 2, 64)
	s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		s = "0"
	}
	return s, nil
}
