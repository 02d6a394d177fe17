// Package biome holds the biome registry, the multi-noise climate model and
// the search tree that maps a climate point to its nearest biome.
package biome

import (
	"fmt"
	"strings"
)

// Biome identifies a biome by its registry index.
type Biome uint8

// Biomes in registry order.
const (
	Badlands Biome = iota
	BambooJungle
	BasaltDeltas
	Beach
	BirchForest
	CherryGrove
	ColdOcean
	CrimsonForest
	DarkForest
	DeepColdOcean
	DeepDark
	DeepFrozenOcean
	DeepLukewarmOcean
	DeepOcean
	Desert
	DripstoneCaves
	EndBarrens
	EndHighlands
	EndMidlands
	ErodedBadlands
	FlowerForest
	Forest
	FrozenOcean
	FrozenPeaks
	FrozenRiver
	Grove
	IceSpikes
	JaggedPeaks
	Jungle
	LukewarmOcean
	LushCaves
	MangroveSwamp
	Meadow
	MushroomFields
	NetherWastes
	Ocean
	OldGrowthBirchForest
	OldGrowthPineTaiga
	OldGrowthSpruceTaiga
	Plains
	River
	Savanna
	SavannaPlateau
	SmallEndIslands
	SnowyBeach
	SnowyPlains
	SnowySlopes
	SnowyTaiga
	SoulSandValley
	SparseJungle
	StonyPeaks
	StonyShore
	SunflowerPlains
	Swamp
	Taiga
	TheEnd
	TheVoid
	WarmOcean
	WarpedForest
	WindsweptForest
	WindsweptGravellyHills
	WindsweptHills
	WindsweptSavanna
	WoodedBadlands
)

var names = [...]string{
	Badlands:               "minecraft:badlands",
	BambooJungle:           "minecraft:bamboo_jungle",
	BasaltDeltas:           "minecraft:basalt_deltas",
	Beach:                  "minecraft:beach",
	BirchForest:            "minecraft:birch_forest",
	CherryGrove:            "minecraft:cherry_grove",
	ColdOcean:              "minecraft:cold_ocean",
	CrimsonForest:          "minecraft:crimson_forest",
	DarkForest:             "minecraft:dark_forest",
	DeepColdOcean:          "minecraft:deep_cold_ocean",
	DeepDark:               "minecraft:deep_dark",
	DeepFrozenOcean:        "minecraft:deep_frozen_ocean",
	DeepLukewarmOcean:      "minecraft:deep_lukewarm_ocean",
	DeepOcean:              "minecraft:deep_ocean",
	Desert:                 "minecraft:desert",
	DripstoneCaves:         "minecraft:dripstone_caves",
	EndBarrens:             "minecraft:end_barrens",
	EndHighlands:           "minecraft:end_highlands",
	EndMidlands:            "minecraft:end_midlands",
	ErodedBadlands:         "minecraft:eroded_badlands",
	FlowerForest:           "minecraft:flower_forest",
	Forest:                 "minecraft:forest",
	FrozenOcean:            "minecraft:frozen_ocean",
	FrozenPeaks:            "minecraft:frozen_peaks",
	FrozenRiver:            "minecraft:frozen_river",
	Grove:                  "minecraft:grove",
	IceSpikes:              "minecraft:ice_spikes",
	JaggedPeaks:            "minecraft:jagged_peaks",
	Jungle:                 "minecraft:jungle",
	LukewarmOcean:          "minecraft:lukewarm_ocean",
	LushCaves:              "minecraft:lush_caves",
	MangroveSwamp:          "minecraft:mangrove_swamp",
	Meadow:                 "minecraft:meadow",
	MushroomFields:         "minecraft:mushroom_fields",
	NetherWastes:           "minecraft:nether_wastes",
	Ocean:                  "minecraft:ocean",
	OldGrowthBirchForest:   "minecraft:old_growth_birch_forest",
	OldGrowthPineTaiga:     "minecraft:old_growth_pine_taiga",
	OldGrowthSpruceTaiga:   "minecraft:old_growth_spruce_taiga",
	Plains:                 "minecraft:plains",
	River:                  "minecraft:river",
	Savanna:                "minecraft:savanna",
	SavannaPlateau:         "minecraft:savanna_plateau",
	SmallEndIslands:        "minecraft:small_end_islands",
	SnowyBeach:             "minecraft:snowy_beach",
	SnowyPlains:            "minecraft:snowy_plains",
	SnowySlopes:            "minecraft:snowy_slopes",
	SnowyTaiga:             "minecraft:snowy_taiga",
	SoulSandValley:         "minecraft:soul_sand_valley",
	SparseJungle:           "minecraft:sparse_jungle",
	StonyPeaks:             "minecraft:stony_peaks",
	StonyShore:             "minecraft:stony_shore",
	SunflowerPlains:        "minecraft:sunflower_plains",
	Swamp:                  "minecraft:swamp",
	Taiga:                  "minecraft:taiga",
	TheEnd:                 "minecraft:the_end",
	TheVoid:                "minecraft:the_void",
	WarmOcean:              "minecraft:warm_ocean",
	WarpedForest:           "minecraft:warped_forest",
	WindsweptForest:        "minecraft:windswept_forest",
	WindsweptGravellyHills: "minecraft:windswept_gravelly_hills",
	WindsweptHills:         "minecraft:windswept_hills",
	WindsweptSavanna:       "minecraft:windswept_savanna",
	WoodedBadlands:         "minecraft:wooded_badlands",
}

// Count is the number of registered biomes.
const Count = len(names)

var byName = func() map[string]Biome {
	m := make(map[string]Biome, len(names))
	for i, n := range names {
		m[n] = Biome(i)
	}
	return m
}()

// Name returns the namespaced registry name.
func (b Biome) Name() string {
	if int(b) >= len(names) {
		return fmt.Sprintf("biome(%d)", uint8(b))
	}
	return names[b]
}

func (b Biome) String() string { return b.Name() }

// ByName looks a biome up by registry name. The namespace is optional.
func ByName(name string) (Biome, bool) {
	if !strings.Contains(name, ":") {
		name = "minecraft:" + name
	}
	b, ok := byName[name]
	return b, ok
}

// IsOcean reports whether b is one of the ocean biomes.
func (b Biome) IsOcean() bool {
	switch b {
	case Ocean, DeepOcean, ColdOcean, DeepColdOcean, FrozenOcean, DeepFrozenOcean,
		LukewarmOcean, DeepLukewarmOcean, WarmOcean:
		return true
	}
	return false
}
