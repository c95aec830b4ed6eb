package dynamo

import "math"

// Response-curve factories for the fn container. Economic and
// demographic models shape their feedback terms with these rather than
// hard-coding the curves inline.

// MakeExpFn returns an exponential through (x, y) with the given scale,
// approaching yMin asymptotically.
func MakeExpFn(x, y, scale, yMin float64) func(float64) float64 {
	yDiff := y - yMin
	return func(v float64) float64 {
		return yDiff*math.Exp(scale*(v-x)/yDiff) + yMin
	}
}

// MakeSqFn returns a / (b - c*x)^2 - d, an inverse-square curve with a
// vertical asymptote at x = b/c.
func MakeSqFn(a, b, c, d float64) func(float64) float64 {
	return func(x float64) float64 {
		den := b - c*x
		return a/den/den - d
	}
}

// MakeLinFn returns a line with the given slope crossing zero at xZero.
func MakeLinFn(slope, xZero float64) func(float64) float64 {
	return func(x float64) float64 {
		return slope * (x - xZero)
	}
}

// MakeCutoffFn caps fn at its value at xMax, both for inputs past xMax
// and for any output that would exceed it.
func MakeCutoffFn(fn func(float64) float64, xMax float64) func(float64) float64 {
	yMax := fn(xMax)
	return func(x float64) float64 {
		if x > xMax {
			return yMax
		}
		y := fn(x)
		if y > yMax {
			return yMax
		}
		return y
	}
}

// MakeApproachFn returns a saturating curve from yInit at x=0 toward
// yFinal, reaching the midpoint at xAtMidpoint.
func MakeApproachFn(yInit, yFinal, xAtMidpoint float64) func(float64) float64 {
	return func(x float64) float64 {
		if x < 0 {
			return yInit
		}
		return yInit + (yFinal-yInit)*(x/(xAtMidpoint+x))
	}
}
