// Package router assembles the overworld noise router out of density
// functions: the aquifer and climate noises, the terrain shape and the cave
// network that together decide every block's density.
package router

import (
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen/density"
)

// Router root names.
const (
	Barrier                         = "barrier_noise"
	FluidLevelFloodedness           = "fluid_level_floodedness_noise"
	FluidLevelSpread                = "fluid_level_spread_noise"
	Lava                            = "lava_noise"
	Temperature                     = "temperature"
	Vegetation                      = "vegetation"
	Continents                      = "continents"
	Erosion                         = "erosion"
	Depth                           = "depth"
	Ridges                          = "ridges"
	InitialDensityWithoutJaggedness = "initial_density_without_jaggedness"
	FinalDensity                    = "final_density"
	VeinToggle                      = "vein_toggle"
	VeinRidged                      = "vein_ridged"
	VeinGap                         = "vein_gap"
)

// ChunkDensity is the interpolated, cell cached final density the chunk
// generator populates blocks from.
const ChunkDensity = "chunk_final_density"

// Options selects the overworld variant.
type Options struct {
	LargeBiomes bool
	Amplified   bool
}

// Ore vein heights, the union of the copper and iron vein ranges.
const (
	veinMinY = -60
	veinMaxY = 50
)

// Overworld returns the default overworld router.
func Overworld() []density.Root { return OverworldWith(Options{}) }

// OverworldWith returns the overworld router for the given variant. Every
// call builds a fresh function graph.
func OverworldWith(opts Options) []density.Root {
	b := newBuilder(opts)
	final := b.finalDensity()
	return []density.Root{
		{Name: Barrier, Fn: density.Noise("minecraft:aquifer_barrier", 1, 0.5)},
		{Name: FluidLevelFloodedness, Fn: density.Noise("minecraft:aquifer_fluid_level_floodedness", 1, 0.67)},
		{Name: FluidLevelSpread, Fn: density.Noise("minecraft:aquifer_fluid_level_spread", 1, 0.7142857142857143)},
		{Name: Lava, Fn: density.Noise("minecraft:aquifer_lava", 1, 1)},
		{Name: Temperature, Fn: b.shiftedNoise2D(b.noiseID("minecraft:temperature"))},
		{Name: Vegetation, Fn: b.shiftedNoise2D(b.noiseID("minecraft:vegetation"))},
		{Name: Continents, Fn: b.coords.continents},
		{Name: Erosion, Fn: b.coords.erosion},
		{Name: Depth, Fn: b.depth},
		{Name: Ridges, Fn: b.coords.ridges},
		{Name: InitialDensityWithoutJaggedness, Fn: b.initialDensity()},
		{Name: FinalDensity, Fn: final},
		{Name: VeinToggle, Fn: b.veinToggle()},
		{Name: VeinRidged, Fn: b.veinRidged()},
		{Name: VeinGap, Fn: density.Noise("minecraft:ore_gap", 1, 1)},
		{Name: ChunkDensity, Fn: density.Add(final, density.Beardifier()).CellCache()},
	}
}

// builder holds the shared subtrees of one router graph. Functions are
// compared by identity, so each shared piece must be built exactly once.
type builder struct {
	opts   Options
	y      *density.Function
	shiftX *density.Function
	shiftZ *density.Function
	coords terrainCoords

	offset     *density.Function
	factor     *density.Function
	jaggedness *density.Function
	depth      *density.Function

	slopedCheese       *density.Function
	entrances          *density.Function
	spaghettiRoughness *density.Function
	noodle             *density.Function
}

func newBuilder(opts Options) *builder {
	b := &builder{opts: opts}
	b.y = density.YClampedGradient(-4064, 4062, -4064, 4062)
	b.shiftX = density.ShiftA("minecraft:offset").Cache2D().FlatCache()
	b.shiftZ = density.ShiftB("minecraft:offset").Cache2D().FlatCache()

	ridges := b.shiftedNoise2D("minecraft:ridge").FlatCache()
	b.coords = terrainCoords{
		continents:   b.shiftedNoise2D(b.noiseID("minecraft:continentalness")).FlatCache(),
		erosion:      b.shiftedNoise2D(b.noiseID("minecraft:erosion")).FlatCache(),
		ridges:       ridges,
		ridgesFolded: foldRidges(ridges),
	}

	b.offset = withBlending(
		density.Add(density.Constant(float64(float32(-0.50375))), density.SplineFunc(offsetSpline(b.coords, opts.Amplified))),
		density.BlendOffset(),
	)
	b.factor = withBlending(density.SplineFunc(factorSpline(b.coords, opts.Amplified)), density.Constant(10))
	b.jaggedness = withBlending(density.SplineFunc(jaggednessSpline(b.coords, opts.Amplified)), density.Constant(0))
	b.depth = density.Add(density.YClampedGradient(-64, 320, 1.5, -1.5), b.offset)

	jagged := density.Mul(b.jaggedness, density.Noise("minecraft:jagged", 1500, 0).HalfNegative())
	b.slopedCheese = density.Add(
		noiseGradientDensity(b.factor, density.Add(b.depth, jagged)),
		density.BlendedNoise(density.BlendedNoiseConfig{XZScale: 0.25, YScale: 0.125, XZFactor: 80, YFactor: 160, SmearScale: 8}),
	)
	b.spaghettiRoughness = spaghettiRoughness()
	b.entrances = b.caveEntrances()
	b.noodle = b.caveNoodle()
	return b
}

// noiseID picks the large biome variant of a climate noise.
func (b *builder) noiseID(id string) string {
	if b.opts.LargeBiomes {
		return id + "_large"
	}
	return id
}

func (b *builder) shiftedNoise2D(id string) *density.Function {
	return density.ShiftedNoise(b.shiftX, density.Constant(0), b.shiftZ, 0.25, 0, id)
}

func foldRidges(ridges *density.Function) *density.Function {
	return density.Mul(
		density.Add(density.Add(ridges.Abs(), density.Constant(-0.6666666666666666)).Abs(), density.Constant(-0.3333333333333333)),
		density.Constant(-3),
	)
}

func withBlending(f, blended *density.Function) *density.Function {
	return density.Lerp(density.BlendAlpha(), blended, f).Cache2D().FlatCache()
}

func noiseGradientDensity(factor, depth *density.Function) *density.Function {
	return density.Mul(density.Constant(4), density.Mul(depth, factor).QuarterNegative())
}

// mapped is a noise rescaled from [-1, 1] onto [lo, hi].
func mapped(id string, xzScale, yScale, lo, hi float64) *density.Function {
	return mapFromUnit(density.Noise(id, xzScale, yScale), lo, hi)
}

func mapFromUnit(f *density.Function, lo, hi float64) *density.Function {
	return density.Add(density.Constant((lo+hi)*0.5), density.Mul(density.Constant((hi-lo)*0.5), f))
}

// yLimited is f interpolated between minY and maxY and fallback elsewhere.
func (b *builder) yLimited(f *density.Function, minY, maxY int, fallback float64) *density.Function {
	return density.RangeChoice(b.y, float64(minY), float64(maxY+1), f, density.Constant(fallback)).Interpolated()
}

func spaghettiRoughness() *density.Function {
	modulator := mapped("minecraft:spaghetti_roughness_modulator", 1, 1, 0, -0.1)
	roughness := density.Add(density.Noise("minecraft:spaghetti_roughness", 1, 1).Abs(), density.Constant(-0.4))
	return density.Mul(modulator, roughness).CacheOnce()
}

func (b *builder) caveEntrances() *density.Function {
	rarity := density.Noise("minecraft:spaghetti_3d_rarity", 2, 1).CacheOnce()
	thickness := mapped("minecraft:spaghetti_3d_thickness", 1, 1, -0.065, -0.088)
	spaghetti3D := density.Add(
		density.Max(
			density.WeirdScaled(rarity, "minecraft:spaghetti_3d_1", density.Tunnels),
			density.WeirdScaled(rarity, "minecraft:spaghetti_3d_2", density.Tunnels),
		),
		thickness,
	).Clamp(-1, 1)
	entrance := density.Add(
		density.Add(density.Noise("minecraft:cave_entrance", 0.75, 0.5), density.Constant(0.37)),
		density.YClampedGradient(-10, 30, 0.3, 0),
	)
	return density.Min(entrance, density.Add(b.spaghettiRoughness, spaghetti3D)).CacheOnce()
}

func (b *builder) caveNoodle() *density.Function {
	toggle := b.yLimited(density.Noise("minecraft:noodle", 1, 1), -60, 320, -1)
	thickness := b.yLimited(mapped("minecraft:noodle_thickness", 1, 1, -0.05, -0.1), -60, 320, 0)
	const ridgeScale = 2.6666666666666665
	ridgeA := b.yLimited(density.Noise("minecraft:noodle_ridge_a", ridgeScale, ridgeScale), -60, 320, 0)
	ridgeB := b.yLimited(density.Noise("minecraft:noodle_ridge_b", ridgeScale, ridgeScale), -60, 320, 0)
	ridged := density.Mul(density.Constant(1.5), density.Max(ridgeA.Abs(), ridgeB.Abs()))
	return density.RangeChoice(toggle, -1000000, 0, density.Constant(64), density.Add(thickness, ridged))
}

func (b *builder) spaghetti2D() *density.Function {
	thickness := mapped("minecraft:spaghetti_2d_thickness", 2, 1, -0.6, -1.3).CacheOnce()
	modulator := density.Noise("minecraft:spaghetti_2d_modulator", 2, 1)
	weird := density.WeirdScaled(modulator, "minecraft:spaghetti_2d", density.Caves)
	elevation := mapped("minecraft:spaghetti_2d_elevation", 1, 0, -8, 8)
	ridge := density.Add(
		density.Add(elevation, density.YClampedGradient(-64, 320, 8, -40)).Abs(),
		thickness,
	).Cube()
	return density.Max(ridge, density.Add(weird, density.Mul(density.Constant(0.083), thickness))).Clamp(-1, 1)
}

func pillars() *density.Function {
	pillar := density.Noise("minecraft:pillar", 25, 0.3)
	rareness := mapped("minecraft:pillar_rareness", 1, 1, 0, -2)
	thickness := mapped("minecraft:pillar_thickness", 1, 1, 0, 1.1)
	base := density.Add(density.Mul(pillar, density.Constant(2)), rareness)
	return density.Mul(base, thickness.Cube()).CacheOnce()
}

func (b *builder) underground() *density.Function {
	layer := density.Mul(density.Constant(4), density.Noise("minecraft:cave_layer", 1, 8).Square())
	cheese := density.Add(density.Constant(0.27), density.Noise("minecraft:cave_cheese", 1, 0.6666666666666666)).Clamp(-1, 1)
	surfaceFade := density.Add(density.Constant(1.5), density.Mul(density.Constant(-0.64), b.slopedCheese)).Clamp(0, 0.5)
	caverns := density.Min(
		density.Min(density.Add(layer, density.Add(cheese, surfaceFade)), b.entrances),
		density.Add(b.spaghetti2D(), b.spaghettiRoughness),
	)
	p := pillars()
	return density.Max(caverns, density.RangeChoice(p, -1000000, 0.03, density.Constant(-1000000), p))
}

// slide fades density towards air at the top of the world and towards
// solid at the bottom.
func (b *builder) slide(f *density.Function) *density.Function {
	const minY, height = -64, 384
	topStart, topEnd, bottomValue := 80, 64, 0.1171875
	if b.opts.Amplified {
		topStart, topEnd, bottomValue = 16, 0, 0.4
	}
	top := density.YClampedGradient(minY+height-topStart, minY+height-topEnd, 1, 0)
	f = density.Lerp(top, density.Constant(-0.078125), f)
	bottom := density.YClampedGradient(minY, minY+24, 0, 1)
	return density.Lerp(bottom, density.Constant(bottomValue), f)
}

func postProcess(f *density.Function) *density.Function {
	return density.Mul(density.BlendDensity(f).Interpolated(), density.Constant(0.64)).Squeeze()
}

func (b *builder) finalDensity() *density.Function {
	caves := density.Min(b.slopedCheese, density.Mul(density.Constant(5), b.entrances))
	chosen := density.RangeChoice(b.slopedCheese, -1000000, 1.5625, caves, b.underground())
	return density.Min(postProcess(b.slide(chosen)), b.noodle)
}

func (b *builder) initialDensity() *density.Function {
	d := noiseGradientDensity(b.factor.Cache2D(), b.depth)
	return b.slide(density.Add(d, density.Constant(-0.703125)).Clamp(-64, 64))
}

func (b *builder) veinToggle() *density.Function {
	return b.yLimited(density.Noise("minecraft:ore_veininess", 1.5, 1.5), veinMinY, veinMaxY, 0)
}

func (b *builder) veinRidged() *density.Function {
	a := b.yLimited(density.Noise("minecraft:ore_vein_a", 4, 4), veinMinY, veinMaxY, 0).Abs()
	c := b.yLimited(density.Noise("minecraft:ore_vein_b", 4, 4), veinMinY, veinMaxY, 0).Abs()
	return density.Add(density.Constant(float64(float32(-0.08))), density.Max(a, c))
}
