// Package mathutil holds the interpolation and coordinate helpers shared by the
// world generator.
package mathutil

import "math"

// Lerp interpolates linearly. The conversion keeps the product out of an FMA
// so results stay reproducible across architectures.
func Lerp(delta, start, end float64) float64 {
	return start + float64(delta*(end-start))
}

func Lerp2(dx, dy, v00, v10, v01, v11 float64) float64 {
	return Lerp(dy, Lerp(dx, v00, v10), Lerp(dx, v01, v11))
}

func Lerp3(dx, dy, dz, v000, v100, v010, v110, v001, v101, v011, v111 float64) float64 {
	return Lerp(dz, Lerp2(dx, dy, v000, v100, v010, v110), Lerp2(dx, dy, v001, v101, v011, v111))
}

// Lerp32 is Lerp in single precision.
func Lerp32(delta, start, end float32) float32 {
	return start + float32(delta*(end-start))
}

// ClampedLerp returns start below delta 0 and end above delta 1.
func ClampedLerp(start, end, delta float64) float64 {
	if delta < 0 {
		return start
	}
	if delta > 1 {
		return end
	}
	return Lerp(delta, start, end)
}

func InverseLerp(v, start, end float64) float64 {
	return (v - start) / (end - start)
}

// ClampedMap maps v from [fromStart, fromEnd] onto [toStart, toEnd], clamping at the ends.
func ClampedMap(v, fromStart, fromEnd, toStart, toEnd float64) float64 {
	return ClampedLerp(toStart, toEnd, InverseLerp(v, fromStart, fromEnd))
}

// Map is ClampedMap without the clamping.
func Map(v, fromStart, fromEnd, toStart, toEnd float64) float64 {
	return Lerp(InverseLerp(v, fromStart, fromEnd), toStart, toEnd)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Smoothstep is the quintic fade 6t^5 - 15t^4 + 10t^3.
func Smoothstep(d float64) float64 {
	return d * d * d * (d*(d*6-15) + 10)
}

// Floor returns the largest integer not greater than d.
func Floor(d float64) int {
	return int(math.Floor(d))
}

func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func FloorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func FloorMod64(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func Square(v float64) float64 { return v * v }
