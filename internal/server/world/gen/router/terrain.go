package router

import (
	"github.com/chewxy/math32"

	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/density"
	"github.com/OCharnyshevich/worldgen-server/pkg/mathutil"
)

// transform rewrites the fixed values of a terrain spline.
type transform func(float32) float32

func identity(v float32) float32 { return v }

func amplifiedOffset(v float32) float32 {
	if v < 0 {
		return v
	}
	return v * 2
}

func amplifiedFactor(v float32) float32 { return 1.25 - 6.25/(v+5) }

func amplifiedJaggedness(v float32) float32 { return v * 2 }

// terrainCoords are the coordinate functions the terrain splines read.
type terrainCoords struct {
	continents   *density.Function
	erosion      *density.Function
	ridges       *density.Function
	ridgesFolded *density.Function
}

type splineBuilder struct {
	b *density.SplineBuilder
	t transform
}

func newSpline(coord *density.Function, t transform) splineBuilder {
	return splineBuilder{b: density.NewSpline(coord), t: t}
}

func (s splineBuilder) fixed(loc, v float32) splineBuilder {
	s.b.Add(loc, density.Fixed(s.t(v)))
	return s
}

func (s splineBuilder) fixedD(loc, v, derivative float32) splineBuilder {
	s.b.AddD(loc, density.Fixed(s.t(v)), derivative)
	return s
}

func (s splineBuilder) spline(loc float32, sp *density.Spline) splineBuilder {
	s.b.Add(loc, sp.Value())
	return s
}

func (s splineBuilder) build() *density.Spline { return s.b.Build() }

// peaksAndValleys folds a ridge value so that peaks and valleys both map
// to 1 and the flanks to -1.
func peaksAndValleys(v float32) float32 {
	return -float32((math32.Abs(math32.Abs(v)-0.6666667)-0.33333334)*3)
}

// offsetSpline shapes the base terrain height from continentalness, erosion
// and folded ridges.
func offsetSpline(c terrainCoords, amplified bool) *density.Spline {
	t := transform(identity)
	if amplified {
		t = amplifiedOffset
	}
	s1 := erosionOffsetSpline(c, -0.15, 0, 0, 0.1, 0, -0.03, false, false, t)
	s2 := erosionOffsetSpline(c, -0.1, 0.03, 0.1, 0.1, 0.01, -0.03, false, false, t)
	s3 := erosionOffsetSpline(c, -0.1, 0.03, 0.1, 0.7, 0.01, -0.03, true, true, t)
	s4 := erosionOffsetSpline(c, -0.05, 0.03, 0.1, 1, 0.01, 0.01, true, true, t)
	return newSpline(c.continents, t).
		fixed(-1.1, 0.044).
		fixed(-1.02, -0.2222).
		fixed(-0.51, -0.2222).
		fixed(-0.44, -0.12).
		fixed(-0.18, -0.12).
		spline(-0.16, s1).
		spline(-0.15, s1).
		spline(-0.1, s2).
		spline(0.25, s3).
		spline(1, s4).
		build()
}

// factorSpline scales how quickly density falls off above the offset.
func factorSpline(c terrainCoords, amplified bool) *density.Spline {
	t := transform(identity)
	if amplified {
		t = amplifiedFactor
	}
	return newSpline(c.continents, identity).
		fixed(-0.19, 3.95).
		spline(-0.15, erosionFactor(c, 6.25, true, identity)).
		spline(-0.1, erosionFactor(c, 5.47, true, t)).
		spline(0.03, erosionFactor(c, 5.08, true, t)).
		spline(0.06, erosionFactor(c, 4.69, false, t)).
		build()
}

// jaggednessSpline gives mountain peaks their high-frequency detail.
func jaggednessSpline(c terrainCoords, amplified bool) *density.Spline {
	t := transform(identity)
	if amplified {
		t = amplifiedJaggedness
	}
	return newSpline(c.continents, t).
		fixed(-0.11, 0).
		spline(0.03, erosionJaggedness(c, 1, 0.5, 0, 0, t)).
		spline(0.65, erosionJaggedness(c, 1, 1, 1, 0, t)).
		build()
}

func erosionJaggedness(c terrainCoords, highPeaks, lowPeaks, highRidges, lowRidges float32, t transform) *density.Spline {
	high := ridgeJaggedness(c, highPeaks, highRidges, t)
	low := ridgeJaggedness(c, lowPeaks, lowRidges, t)
	return newSpline(c.erosion, t).
		spline(-1, high).
		spline(-0.78, low).
		spline(-0.5775, low).
		fixed(-0.375, 0).
		build()
}

func ridgeJaggedness(c terrainCoords, peaks, ridges float32, t transform) *density.Spline {
	lo := peaksAndValleys(0.4)
	hi := peaksAndValleys(0.56666666)
	mid := (lo + hi) / 2
	b := newSpline(c.ridgesFolded, t).fixed(lo, 0)
	if ridges > 0 {
		b.spline(mid, weirdnessJaggedness(c, ridges, t))
	} else {
		b.fixed(mid, 0)
	}
	if peaks > 0 {
		b.spline(1, weirdnessJaggedness(c, peaks, t))
	} else {
		b.fixed(1, 0)
	}
	return b.build()
}

func weirdnessJaggedness(c terrainCoords, magnitude float32, t transform) *density.Spline {
	return newSpline(c.ridges, t).
		fixed(-0.01, float32(0.63*magnitude)).
		fixed(0.01, float32(0.3*magnitude)).
		build()
}

func erosionFactor(c terrainCoords, value float32, shattered bool, t transform) *density.Spline {
	base := newSpline(c.ridges, t).fixed(-0.2, 6.3).fixed(0.2, value).build()
	b := newSpline(c.erosion, t).
		spline(-0.6, base).
		spline(-0.5, newSpline(c.ridges, t).fixed(-0.05, 6.3).fixed(0.05, 2.67).build()).
		spline(-0.35, base).
		spline(-0.25, base).
		spline(-0.1, newSpline(c.ridges, t).fixed(-0.05, 2.67).fixed(0.05, 6.3).build()).
		spline(0.03, base)
	if shattered {
		weird := newSpline(c.ridges, t).fixed(0, value).fixed(0.1, 0.625).build()
		folded := newSpline(c.ridgesFolded, t).fixed(-0.9, value).spline(-0.69, weird).build()
		b.fixed(0.35, value).spline(0.45, folded).spline(0.55, folded).fixed(0.62, value)
	} else {
		valleys := newSpline(c.ridgesFolded, t).spline(-0.7, base).fixed(-0.15, 1.37).build()
		peaks := newSpline(c.ridgesFolded, t).spline(0.45, base).fixed(0.7, 1.56).build()
		b.spline(0.05, peaks).spline(0.4, peaks).spline(0.45, valleys).spline(0.55, valleys).fixed(0.58, value)
	}
	return b.build()
}

func slope(y1, y2, x1, x2 float32) float32 { return (y2 - y1) / (x2 - x1) }

func mountainRidge(c terrainCoords, strength float32, flat bool, t transform) *density.Spline {
	b := newSpline(c.ridgesFolded, t)
	lowest := mountainContinentalness(-1, strength, -0.7)
	highest := mountainContinentalness(1, strength, -0.7)
	zero := mountainZeroContinentalness(strength)
	if -0.65 < zero && zero < 1 {
		atShelf := mountainContinentalness(-0.65, strength, -0.7)
		atFoot := mountainContinentalness(-0.75, strength, -0.7)
		footSlope := slope(lowest, atFoot, -1, -0.75)
		b.fixedD(-1, lowest, footSlope)
		b.fixed(-0.75, atFoot)
		b.fixed(-0.65, atShelf)
		atZero := mountainContinentalness(zero, strength, -0.7)
		peakSlope := slope(atZero, highest, zero, 1)
		b.fixed(zero-0.01, atZero)
		b.fixedD(zero, atZero, peakSlope)
		b.fixedD(1, highest, peakSlope)
		return b.build()
	}
	s := slope(lowest, highest, -1, 1)
	if flat {
		b.fixed(-1, max(0.2, lowest))
		b.fixedD(0, mathutil.Lerp32(0.5, lowest, highest), s)
	} else {
		b.fixedD(-1, lowest, s)
	}
	b.fixedD(1, highest, s)
	return b.build()
}

func mountainContinentalness(v, strength, threshold float32) float32 {
	scale := 1 - float32((1-strength)*0.5)
	shift := float32(0.5 * (1 - strength))
	n := float32(float32((v+1.17)*0.46082947)*scale) - shift
	if v < threshold {
		return max(n, -0.2222)
	}
	return max(n, 0)
}

func mountainZeroContinentalness(strength float32) float32 {
	scale := 1 - float32((1-strength)*0.5)
	shift := float32(0.5 * (1 - strength))
	return shift/float32(0.46082947*scale) - 1.17
}

func erosionOffsetSpline(c terrainCoords, valley, low, mid, mountain, plain, lowestOffset float32, shattered, flatRidges bool, t transform) *density.Spline {
	r1 := mountainRidge(c, mathutil.Lerp32(mountain, 0.6, 1.5), flatRidges, t)
	r2 := mountainRidge(c, mathutil.Lerp32(mountain, 0.6, 1), flatRidges, t)
	r3 := mountainRidge(c, mountain, flatRidges, t)
	r4 := ridgeSpline(c, valley-0.15, float32(0.5*mountain), float32(mathutil.Lerp32(0.5, 0.5, 0.5)*mountain), float32(0.5*mountain), float32(0.6*mountain), 0.5, t)
	r5 := ridgeSpline(c, valley, float32(plain*mountain), float32(low*mountain), float32(0.5*mountain), float32(0.6*mountain), 0.5, t)
	r6 := ridgeSpline(c, valley, plain, plain, low, mid, 0.5, t)
	r7 := ridgeSpline(c, valley, plain, plain, low, mid, 0.5, t)
	r8 := newSpline(c.ridgesFolded, t).fixed(-1, valley).spline(-0.4, r6).fixed(0, mid+0.07).build()
	r9 := ridgeSpline(c, -0.02, lowestOffset, lowestOffset, low, mid, 0, t)
	b := newSpline(c.erosion, t).
		spline(-0.85, r1).
		spline(-0.7, r2).
		spline(-0.4, r3).
		spline(-0.35, r4).
		spline(-0.1, r5).
		spline(0.2, r6)
	if shattered {
		b.spline(0.4, r7).spline(0.45, r8).spline(0.55, r8).spline(0.58, r7)
	}
	b.spline(0.7, r9)
	return b.build()
}

func ridgeSpline(c terrainCoords, valley, low, mid, high, peak, minSlope float32, t transform) *density.Spline {
	lowSlope := max(float32(0.5*(low-valley)), minSlope)
	midSlope := float32(5 * (mid - low))
	return newSpline(c.ridgesFolded, t).
		fixedD(-1, valley, lowSlope).
		fixedD(-0.4, low, min(lowSlope, midSlope)).
		fixedD(0, mid, midSlope).
		fixedD(0.4, high, float32(2*(high-mid))).
		fixedD(1, peak, float32(0.7*(peak-high))).
		build()
}
