package biome

import "fmt"

// Quantize converts a climate value to the fixed point unit used by ranges
// and points. It truncates towards zero in single precision.
func Quantize(v float32) int64 { return int64(v * 10000) }

// ParameterRange is a closed interval of quantized climate values.
type ParameterRange struct {
	Min, Max int64
}

// Span returns the quantized range [min, max]. It panics when min > max.
func Span(min, max float32) ParameterRange {
	r := ParameterRange{Quantize(min), Quantize(max)}
	if r.Min > r.Max {
		panic(fmt.Sprintf("biome: range min %v > max %v", min, max))
	}
	return r
}

// SpanOf returns the range from the start of a to the end of b.
func SpanOf(a, b ParameterRange) ParameterRange {
	if a.Min > b.Max {
		panic(fmt.Sprintf("biome: range min %d > max %d", a.Min, b.Max))
	}
	return ParameterRange{a.Min, b.Max}
}

// PointRange is the degenerate range holding only v.
func PointRange(v float32) ParameterRange {
	q := Quantize(v)
	return ParameterRange{q, q}
}

// Distance is how far v lies outside the range; zero inside it.
func (r ParameterRange) Distance(v int64) int64 {
	switch {
	case v > r.Max:
		return v - r.Max
	case v < r.Min:
		return r.Min - v
	}
	return 0
}

// Combine returns the smallest range enclosing r and o.
func (r ParameterRange) Combine(o ParameterRange) ParameterRange {
	return ParameterRange{min(r.Min, o.Min), max(r.Max, o.Max)}
}

func (r ParameterRange) mid() int64 { return (r.Min + r.Max) / 2 }

func (r ParameterRange) String() string { return fmt.Sprintf("[%d, %d]", r.Min, r.Max) }

// Dimensions is the number of axes a climate point is matched on.
const Dimensions = 7

// Hypercube is the climate region a biome occupies.
type Hypercube struct {
	Temperature     ParameterRange
	Humidity        ParameterRange
	Continentalness ParameterRange
	Erosion         ParameterRange
	Depth           ParameterRange
	Weirdness       ParameterRange
	Offset          int64
}

func (h Hypercube) space() [Dimensions]ParameterRange {
	return [Dimensions]ParameterRange{
		h.Temperature,
		h.Humidity,
		h.Continentalness,
		h.Erosion,
		h.Depth,
		h.Weirdness,
		{h.Offset, h.Offset},
	}
}

// NoisePoint is a sampled climate in quantized units.
type NoisePoint struct {
	Temperature     int64
	Humidity        int64
	Continentalness int64
	Erosion         int64
	Depth           int64
	Weirdness       int64
}

// Array lays the point out on the search axes. The offset axis is zero.
func (p NoisePoint) Array() [Dimensions]int64 {
	return [Dimensions]int64{p.Temperature, p.Humidity, p.Continentalness, p.Erosion, p.Depth, p.Weirdness, 0}
}

// Entry pairs a biome with its climate region.
type Entry struct {
	Biome      Biome
	Parameters Hypercube
}
