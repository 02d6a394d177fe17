// Package block is the registry of block states the generator places.
package block

import "strings"

// State identifies a block state by its registry index. The zero value is air.
type State uint16

const (
	Air State = iota
	CaveAir
	Stone
	Deepslate
	Bedrock
	Water
	Lava
	GrassBlock
	Dirt
	CoarseDirt
	Podzol
	Mycelium
	Mud
	Sand
	RedSand
	Sandstone
	RedSandstone
	Gravel
	Clay
	SnowBlock
	PowderSnow
	Ice
	PackedIce
	Calcite
	Terracotta
	OrangeTerracotta
	Granite
	Tuff
	CopperOre
	RawCopperBlock
	DeepslateIronOre
	RawIronBlock
	MossBlock
)

type info struct {
	name  string
	solid bool
	fluid bool
}

var states = [...]info{
	Air:              {name: "air"},
	CaveAir:          {name: "cave_air"},
	Stone:            {name: "stone", solid: true},
	Deepslate:        {name: "deepslate", solid: true},
	Bedrock:          {name: "bedrock", solid: true},
	Water:            {name: "water", fluid: true},
	Lava:             {name: "lava", fluid: true},
	GrassBlock:       {name: "grass_block", solid: true},
	Dirt:             {name: "dirt", solid: true},
	CoarseDirt:       {name: "coarse_dirt", solid: true},
	Podzol:           {name: "podzol", solid: true},
	Mycelium:         {name: "mycelium", solid: true},
	Mud:              {name: "mud", solid: true},
	Sand:             {name: "sand", solid: true},
	RedSand:          {name: "red_sand", solid: true},
	Sandstone:        {name: "sandstone", solid: true},
	RedSandstone:     {name: "red_sandstone", solid: true},
	Gravel:           {name: "gravel", solid: true},
	Clay:             {name: "clay", solid: true},
	SnowBlock:        {name: "snow_block", solid: true},
	PowderSnow:       {name: "powder_snow", solid: true},
	Ice:              {name: "ice", solid: true},
	PackedIce:        {name: "packed_ice", solid: true},
	Calcite:          {name: "calcite", solid: true},
	Terracotta:       {name: "terracotta", solid: true},
	OrangeTerracotta: {name: "orange_terracotta", solid: true},
	Granite:          {name: "granite", solid: true},
	Tuff:             {name: "tuff", solid: true},
	CopperOre:        {name: "copper_ore", solid: true},
	RawCopperBlock:   {name: "raw_copper_block", solid: true},
	DeepslateIronOre: {name: "deepslate_iron_ore", solid: true},
	RawIronBlock:     {name: "raw_iron_block", solid: true},
	MossBlock:        {name: "moss_block", solid: true},
}

// Count is the number of registered states.
const Count = len(states)

var byName = func() map[string]State {
	m := make(map[string]State, len(states))
	for i, s := range states {
		m["minecraft:"+s.name] = State(i)
	}
	return m
}()

func (s State) valid() bool { return int(s) < len(states) }

// Name returns the namespaced registry name. Unknown states report air.
func (s State) Name() string {
	if !s.valid() {
		return "minecraft:air"
	}
	return "minecraft:" + states[s].name
}

func (s State) String() string { return s.Name() }

// IsAir reports whether s is one of the air variants.
func (s State) IsAir() bool { return s == Air || s == CaveAir || !s.valid() }

func (s State) IsFluid() bool { return s.valid() && states[s].fluid }

func (s State) IsSolid() bool { return s.valid() && states[s].solid }

// BlocksMotion reports whether s counts towards the MOTION_BLOCKING heightmap.
func (s State) BlocksMotion() bool { return s.IsSolid() || s.IsFluid() }

// ByName looks a state up by registry name. The namespace is optional.
func ByName(name string) (State, bool) {
	if !strings.Contains(name, ":") {
		name = "minecraft:" + name
	}
	s, ok := byName[name]
	return s, ok
}
