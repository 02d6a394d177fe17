package biome

// none marks an empty slot in the biome variant tables.
const none Biome = 0xff

// overworldBuilder lays out the overworld biome regions over the climate
// axes: off coast oceans, inland slices by weirdness and the cave biomes.
type overworldBuilder struct {
	full         ParameterRange
	temperatures [5]ParameterRange
	humidities   [5]ParameterRange
	erosions     [7]ParameterRange
	frozen       ParameterRange
	unfrozen     ParameterRange

	mushroomFields ParameterRange
	deepOcean      ParameterRange
	ocean          ParameterRange
	coast          ParameterRange
	inland         ParameterRange
	nearInland     ParameterRange
	midInland      ParameterRange
	farInland      ParameterRange

	entries []Entry
}

var (
	oceans = [2][5]Biome{
		{DeepFrozenOcean, DeepColdOcean, DeepOcean, DeepLukewarmOcean, WarmOcean},
		{FrozenOcean, ColdOcean, Ocean, LukewarmOcean, WarmOcean},
	}
	middleBiomes = [5][5]Biome{
		{SnowyPlains, SnowyPlains, SnowyPlains, SnowyTaiga, Taiga},
		{Plains, Plains, Forest, Taiga, OldGrowthSpruceTaiga},
		{FlowerForest, Plains, Forest, BirchForest, DarkForest},
		{Savanna, Savanna, Forest, Jungle, Jungle},
		{Desert, Desert, Desert, Desert, Desert},
	}
	middleVariants = [5][5]Biome{
		{IceSpikes, none, SnowyTaiga, none, none},
		{none, none, none, none, OldGrowthPineTaiga},
		{SunflowerPlains, none, none, OldGrowthBirchForest, none},
		{none, none, Plains, SparseJungle, BambooJungle},
		{none, none, none, none, none},
	}
	plateauBiomes = [5][5]Biome{
		{SnowyPlains, SnowyPlains, SnowyPlains, SnowyTaiga, SnowyTaiga},
		{Meadow, Meadow, Forest, Taiga, OldGrowthSpruceTaiga},
		{Meadow, Meadow, Meadow, Meadow, DarkForest},
		{SavannaPlateau, SavannaPlateau, Forest, Forest, Jungle},
		{Badlands, Badlands, Badlands, WoodedBadlands, WoodedBadlands},
	}
	plateauVariants = [5][5]Biome{
		{IceSpikes, none, none, none, none},
		{CherryGrove, none, Meadow, Meadow, OldGrowthPineTaiga},
		{CherryGrove, CherryGrove, Forest, BirchForest, none},
		{none, none, none, none, none},
		{ErodedBadlands, ErodedBadlands, none, none, none},
	}
	shatteredBiomes = [5][5]Biome{
		{WindsweptGravellyHills, WindsweptGravellyHills, WindsweptHills, WindsweptForest, WindsweptForest},
		{WindsweptGravellyHills, WindsweptGravellyHills, WindsweptHills, WindsweptForest, WindsweptForest},
		{WindsweptHills, WindsweptHills, WindsweptHills, WindsweptForest, WindsweptForest},
		{none, none, none, none, none},
		{none, none, none, none, none},
	}
)

// OverworldEntries returns the overworld biome parameter list in insertion
// order.
func OverworldEntries() []Entry {
	b := newOverworldBuilder()
	b.addOffCoast()
	b.addInland()
	b.addUnderground()
	return b.entries
}

func newOverworldBuilder() *overworldBuilder {
	b := &overworldBuilder{
		full: Span(-1, 1),
		temperatures: [5]ParameterRange{
			Span(-1, -0.45), Span(-0.45, -0.15), Span(-0.15, 0.2), Span(0.2, 0.55), Span(0.55, 1),
		},
		humidities: [5]ParameterRange{
			Span(-1, -0.35), Span(-0.35, -0.1), Span(-0.1, 0.1), Span(0.1, 0.3), Span(0.3, 1),
		},
		erosions: [7]ParameterRange{
			Span(-1, -0.78), Span(-0.78, -0.375), Span(-0.375, -0.2225), Span(-0.2225, 0.05),
			Span(0.05, 0.45), Span(0.45, 0.55), Span(0.55, 1),
		},
		mushroomFields: Span(-1.2, -1.05),
		deepOcean:      Span(-1.05, -0.455),
		ocean:          Span(-0.455, -0.19),
		coast:          Span(-0.19, -0.11),
		inland:         Span(-0.11, 0.55),
		nearInland:     Span(-0.11, 0.03),
		midInland:      Span(0.03, 0.3),
		farInland:      Span(0.3, 1),
	}
	b.frozen = b.temperatures[0]
	b.unfrozen = SpanOf(b.temperatures[1], b.temperatures[4])
	return b
}

func (b *overworldBuilder) addSurface(t, h, c, e, w ParameterRange, offset float32, biome Biome) {
	for _, depth := range []float32{0, 1} {
		b.entries = append(b.entries, Entry{Biome: biome, Parameters: Hypercube{
			Temperature:     t,
			Humidity:        h,
			Continentalness: c,
			Erosion:         e,
			Depth:           PointRange(depth),
			Weirdness:       w,
			Offset:          Quantize(offset),
		}})
	}
}

func (b *overworldBuilder) addCave(t, h, c, e, w ParameterRange, offset float32, biome Biome) {
	b.entries = append(b.entries, Entry{Biome: biome, Parameters: Hypercube{
		Temperature:     t,
		Humidity:        h,
		Continentalness: c,
		Erosion:         e,
		Depth:           Span(0.2, 0.9),
		Weirdness:       w,
		Offset:          Quantize(offset),
	}})
}

func (b *overworldBuilder) addBottom(t, h, c, e, w ParameterRange, offset float32, biome Biome) {
	b.entries = append(b.entries, Entry{Biome: biome, Parameters: Hypercube{
		Temperature:     t,
		Humidity:        h,
		Continentalness: c,
		Erosion:         e,
		Depth:           PointRange(1.1),
		Weirdness:       w,
		Offset:          Quantize(offset),
	}})
}

func (b *overworldBuilder) addOffCoast() {
	b.addSurface(b.full, b.full, b.mushroomFields, b.full, b.full, 0, MushroomFields)
	for i, t := range b.temperatures {
		b.addSurface(t, b.full, b.deepOcean, b.full, b.full, 0, oceans[0][i])
		b.addSurface(t, b.full, b.ocean, b.full, b.full, 0, oceans[1][i])
	}
}

func (b *overworldBuilder) addInland() {
	b.addMidSlice(Span(-1, -0.93333334))
	b.addHighSlice(Span(-0.93333334, -0.7666667))
	b.addPeaks(Span(-0.7666667, -0.56666666))
	b.addHighSlice(Span(-0.56666666, -0.4))
	b.addMidSlice(Span(-0.4, -0.26666668))
	b.addLowSlice(Span(-0.26666668, -0.05))
	b.addValleys(Span(-0.05, 0.05))
	b.addLowSlice(Span(0.05, 0.26666668))
	b.addMidSlice(Span(0.26666668, 0.4))
	b.addHighSlice(Span(0.4, 0.56666666))
	b.addPeaks(Span(0.56666666, 0.7666667))
	b.addHighSlice(Span(0.7666667, 0.93333334))
	b.addMidSlice(Span(0.93333334, 1))
}

func (b *overworldBuilder) addPeaks(w ParameterRange) {
	e := b.erosions
	for i, t := range b.temperatures {
		for j, h := range b.humidities {
			middle := pickMiddle(i, j, w)
			middleOrBadlands := pickMiddleOrBadlands(i, j, w)
			middleOrBadlandsOrSlope := pickMiddleOrBadlandsOrSlope(i, j, w)
			plateau := pickPlateau(i, j, w)
			shattered := pickShattered(i, j, w)
			windswept := maybeWindsweptSavanna(i, j, w, shattered)
			peak := pickPeak(i, j, w)
			b.addSurface(t, h, SpanOf(b.coast, b.farInland), e[0], w, 0, peak)
			b.addSurface(t, h, SpanOf(b.coast, b.nearInland), e[1], w, 0, middleOrBadlandsOrSlope)
			b.addSurface(t, h, SpanOf(b.midInland, b.farInland), e[1], w, 0, peak)
			b.addSurface(t, h, SpanOf(b.coast, b.nearInland), SpanOf(e[2], e[3]), w, 0, middle)
			b.addSurface(t, h, SpanOf(b.midInland, b.farInland), e[2], w, 0, plateau)
			b.addSurface(t, h, b.midInland, e[3], w, 0, middleOrBadlands)
			b.addSurface(t, h, b.farInland, e[3], w, 0, plateau)
			b.addSurface(t, h, SpanOf(b.coast, b.farInland), e[4], w, 0, middle)
			b.addSurface(t, h, SpanOf(b.coast, b.nearInland), e[5], w, 0, windswept)
			b.addSurface(t, h, SpanOf(b.midInland, b.farInland), e[5], w, 0, shattered)
			b.addSurface(t, h, SpanOf(b.coast, b.farInland), e[6], w, 0, middle)
		}
	}
}

func (b *overworldBuilder) addHighSlice(w ParameterRange) {
	e := b.erosions
	for i, t := range b.temperatures {
		for j, h := range b.humidities {
			middle := pickMiddle(i, j, w)
			middleOrBadlands := pickMiddleOrBadlands(i, j, w)
			middleOrBadlandsOrSlope := pickMiddleOrBadlandsOrSlope(i, j, w)
			plateau := pickPlateau(i, j, w)
			shattered := pickShattered(i, j, w)
			windswept := maybeWindsweptSavanna(i, j, w, middle)
			slope := pickSlope(i, j, w)
			peak := pickPeak(i, j, w)
			b.addSurface(t, h, b.coast, SpanOf(e[0], e[1]), w, 0, middle)
			b.addSurface(t, h, b.nearInland, e[0], w, 0, slope)
			b.addSurface(t, h, SpanOf(b.midInland, b.farInland), e[0], w, 0, peak)
			b.addSurface(t, h, b.nearInland, e[1], w, 0, middleOrBadlandsOrSlope)
			b.addSurface(t, h, SpanOf(b.midInland, b.farInland), e[1], w, 0, slope)
			b.addSurface(t, h, SpanOf(b.coast, b.nearInland), SpanOf(e[2], e[3]), w, 0, middle)
			b.addSurface(t, h, SpanOf(b.midInland, b.farInland), e[2], w, 0, plateau)
			b.addSurface(t, h, b.midInland, e[3], w, 0, middleOrBadlands)
			b.addSurface(t, h, b.farInland, e[3], w, 0, plateau)
			b.addSurface(t, h, SpanOf(b.coast, b.farInland), e[4], w, 0, middle)
			b.addSurface(t, h, SpanOf(b.coast, b.nearInland), e[5], w, 0, windswept)
			b.addSurface(t, h, SpanOf(b.midInland, b.farInland), e[5], w, 0, shattered)
			b.addSurface(t, h, SpanOf(b.coast, b.farInland), e[6], w, 0, middle)
		}
	}
}

func (b *overworldBuilder) addSwamps(w ParameterRange, c ParameterRange) {
	b.addSurface(SpanOf(b.temperatures[1], b.temperatures[2]), b.full, c, b.erosions[6], w, 0, Swamp)
	b.addSurface(SpanOf(b.temperatures[3], b.temperatures[4]), b.full, c, b.erosions[6], w, 0, MangroveSwamp)
}

func (b *overworldBuilder) addMidSlice(w ParameterRange) {
	e := b.erosions
	b.addSurface(b.full, b.full, b.coast, SpanOf(e[0], e[2]), w, 0, StonyShore)
	b.addSwamps(w, SpanOf(b.nearInland, b.farInland))
	for i, t := range b.temperatures {
		for j, h := range b.humidities {
			middle := pickMiddle(i, j, w)
			middleOrBadlands := pickMiddleOrBadlands(i, j, w)
			middleOrBadlandsOrSlope := pickMiddleOrBadlandsOrSlope(i, j, w)
			shattered := pickShattered(i, j, w)
			plateau := pickPlateau(i, j, w)
			beach := pickBeach(i, j)
			windswept := maybeWindsweptSavanna(i, j, w, middle)
			shatteredCoast := pickShatteredCoast(i, j, w)
			slope := pickSlope(i, j, w)
			b.addSurface(t, h, SpanOf(b.nearInland, b.farInland), e[0], w, 0, slope)
			b.addSurface(t, h, SpanOf(b.nearInland, b.midInland), e[1], w, 0, middleOrBadlandsOrSlope)
			if i == 0 {
				b.addSurface(t, h, b.farInland, e[1], w, 0, slope)
			} else {
				b.addSurface(t, h, b.farInland, e[1], w, 0, plateau)
			}
			b.addSurface(t, h, b.nearInland, e[2], w, 0, middle)
			b.addSurface(t, h, b.midInland, e[2], w, 0, middleOrBadlands)
			b.addSurface(t, h, b.farInland, e[2], w, 0, plateau)
			b.addSurface(t, h, SpanOf(b.coast, b.nearInland), e[3], w, 0, middle)
			b.addSurface(t, h, SpanOf(b.midInland, b.farInland), e[3], w, 0, middleOrBadlands)
			if w.Max < 0 {
				b.addSurface(t, h, b.coast, e[4], w, 0, beach)
				b.addSurface(t, h, SpanOf(b.nearInland, b.farInland), e[4], w, 0, middle)
			} else {
				b.addSurface(t, h, SpanOf(b.coast, b.farInland), e[4], w, 0, middle)
			}
			b.addSurface(t, h, b.coast, e[5], w, 0, shatteredCoast)
			b.addSurface(t, h, b.nearInland, e[5], w, 0, windswept)
			b.addSurface(t, h, SpanOf(b.midInland, b.farInland), e[5], w, 0, shattered)
			if w.Max < 0 {
				b.addSurface(t, h, b.coast, e[6], w, 0, beach)
			} else {
				b.addSurface(t, h, b.coast, e[6], w, 0, middle)
			}
			if i == 0 {
				b.addSurface(t, h, SpanOf(b.nearInland, b.farInland), e[6], w, 0, middle)
			}
		}
	}
}

func (b *overworldBuilder) addLowSlice(w ParameterRange) {
	e := b.erosions
	b.addSurface(b.full, b.full, b.coast, SpanOf(e[0], e[2]), w, 0, StonyShore)
	b.addSwamps(w, SpanOf(b.nearInland, b.farInland))
	for i, t := range b.temperatures {
		for j, h := range b.humidities {
			middle := pickMiddle(i, j, w)
			middleOrBadlands := pickMiddleOrBadlands(i, j, w)
			middleOrBadlandsOrSlope := pickMiddleOrBadlandsOrSlope(i, j, w)
			beach := pickBeach(i, j)
			windswept := maybeWindsweptSavanna(i, j, w, middle)
			shatteredCoast := pickShatteredCoast(i, j, w)
			b.addSurface(t, h, b.nearInland, SpanOf(e[0], e[1]), w, 0, middleOrBadlands)
			b.addSurface(t, h, SpanOf(b.midInland, b.farInland), SpanOf(e[0], e[1]), w, 0, middleOrBadlandsOrSlope)
			b.addSurface(t, h, b.nearInland, SpanOf(e[2], e[3]), w, 0, middle)
			b.addSurface(t, h, SpanOf(b.midInland, b.farInland), SpanOf(e[2], e[3]), w, 0, middleOrBadlands)
			b.addSurface(t, h, b.coast, SpanOf(e[3], e[4]), w, 0, beach)
			b.addSurface(t, h, SpanOf(b.nearInland, b.farInland), e[4], w, 0, middle)
			b.addSurface(t, h, b.coast, e[5], w, 0, shatteredCoast)
			b.addSurface(t, h, b.nearInland, e[5], w, 0, windswept)
			b.addSurface(t, h, SpanOf(b.midInland, b.farInland), e[5], w, 0, middle)
			b.addSurface(t, h, b.coast, e[6], w, 0, beach)
			if i == 0 {
				b.addSurface(t, h, SpanOf(b.nearInland, b.farInland), e[6], w, 0, middle)
			}
		}
	}
}

func (b *overworldBuilder) addValleys(w ParameterRange) {
	e := b.erosions
	coastFrozen, coastRiver := FrozenRiver, River
	if w.Max < 0 {
		coastFrozen, coastRiver = StonyShore, StonyShore
	}
	b.addSurface(b.frozen, b.full, b.coast, SpanOf(e[0], e[1]), w, 0, coastFrozen)
	b.addSurface(b.unfrozen, b.full, b.coast, SpanOf(e[0], e[1]), w, 0, coastRiver)
	b.addSurface(b.frozen, b.full, b.nearInland, SpanOf(e[0], e[1]), w, 0, FrozenRiver)
	b.addSurface(b.unfrozen, b.full, b.nearInland, SpanOf(e[0], e[1]), w, 0, River)
	b.addSurface(b.frozen, b.full, SpanOf(b.coast, b.farInland), SpanOf(e[2], e[5]), w, 0, FrozenRiver)
	b.addSurface(b.unfrozen, b.full, SpanOf(b.coast, b.farInland), SpanOf(e[2], e[5]), w, 0, River)
	b.addSurface(b.frozen, b.full, b.coast, e[6], w, 0, FrozenRiver)
	b.addSurface(b.unfrozen, b.full, b.coast, e[6], w, 0, River)
	b.addSwamps(w, SpanOf(b.inland, b.farInland))
	b.addSurface(b.frozen, b.full, SpanOf(b.inland, b.farInland), e[6], w, 0, FrozenRiver)
	for i, t := range b.temperatures {
		for j, h := range b.humidities {
			b.addSurface(t, h, SpanOf(b.midInland, b.farInland), SpanOf(e[0], e[1]), w, 0, pickMiddleOrBadlands(i, j, w))
		}
	}
}

func (b *overworldBuilder) addUnderground() {
	b.addCave(b.full, b.full, Span(0.8, 1), b.full, b.full, 0, DripstoneCaves)
	b.addCave(b.full, Span(0.7, 1), b.full, b.full, b.full, 0, LushCaves)
	b.addBottom(b.full, b.full, b.full, SpanOf(b.erosions[0], b.erosions[1]), b.full, 0, DeepDark)
}

func pickMiddle(t, h int, w ParameterRange) Biome {
	if w.Max < 0 {
		return middleBiomes[t][h]
	}
	if v := middleVariants[t][h]; v != none {
		return v
	}
	return middleBiomes[t][h]
}

func pickMiddleOrBadlands(t, h int, w ParameterRange) Biome {
	if t == 4 {
		return pickBadlands(h, w)
	}
	return pickMiddle(t, h, w)
}

func pickMiddleOrBadlandsOrSlope(t, h int, w ParameterRange) Biome {
	if t == 0 {
		return pickSlope(t, h, w)
	}
	return pickMiddleOrBadlands(t, h, w)
}

func maybeWindsweptSavanna(t, h int, w ParameterRange, fallback Biome) Biome {
	if t > 1 && h < 4 && w.Max >= 0 {
		return WindsweptSavanna
	}
	return fallback
}

func pickShatteredCoast(t, h int, w ParameterRange) Biome {
	b := pickBeach(t, h)
	if w.Max >= 0 {
		b = pickMiddle(t, h, w)
	}
	return maybeWindsweptSavanna(t, h, w, b)
}

func pickBeach(t, _ int) Biome {
	switch t {
	case 0:
		return SnowyBeach
	case 4:
		return Desert
	}
	return Beach
}

func pickBadlands(h int, w ParameterRange) Biome {
	switch {
	case h < 2:
		if w.Max < 0 {
			return Badlands
		}
		return ErodedBadlands
	case h < 3:
		return Badlands
	}
	return WoodedBadlands
}

func pickPlateau(t, h int, w ParameterRange) Biome {
	if w.Max >= 0 {
		if v := plateauVariants[t][h]; v != none {
			return v
		}
	}
	return plateauBiomes[t][h]
}

func pickPeak(t, h int, w ParameterRange) Biome {
	switch {
	case t <= 2:
		if w.Max < 0 {
			return JaggedPeaks
		}
		return FrozenPeaks
	case t == 3:
		return StonyPeaks
	}
	return pickBadlands(h, w)
}

func pickSlope(t, h int, w ParameterRange) Biome {
	if t >= 3 {
		return pickPlateau(t, h, w)
	}
	if h <= 1 {
		return SnowySlopes
	}
	return Grove
}

func pickShattered(t, h int, w ParameterRange) Biome {
	if v := shatteredBiomes[t][h]; v != none {
		return v
	}
	return pickMiddle(t, h, w)
}
