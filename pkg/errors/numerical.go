package errors

import (
	"math"
)

// CheckFinite returns a FormatError when value is NaN or infinite.
func CheckFinite(value float64) error {
	switch {
	case math.IsNaN(value):
		return NewFormatError(value, "value is NaN")
	case math.IsInf(value, 0):
		return NewFormatError(value, "value is infinite")
	}
	return nil
}
