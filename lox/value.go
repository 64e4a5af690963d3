package lox

import (
	"math"
	"strconv"
)

// Value is a runtime value. Only numbers exist so far.
type Value float64

// String formats the value as the shortest decimal that round-trips, never
// in exponent form.
func (v Value) String() string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
