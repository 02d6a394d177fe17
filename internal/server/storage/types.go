package storage

import "time"

// Level is the world metadata kept in level.json.
type Level struct {
	Seed        int64     `json:"seed"`
	Generator   string    `json:"generator"`
	LargeBiomes bool      `json:"large_biomes,omitempty"`
	Amplified   bool      `json:"amplified,omitempty"`
	SeaLevel    int       `json:"sea_level"`
	Spawn       Position  `json:"spawn"`
	DataVersion int32     `json:"data_version"`
	LastPlayed  time.Time `json:"last_played"`
}

// Position is a block position.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// ChunkRecord is one row of the chunk index.
type ChunkRecord struct {
	X, Z           int
	Region         string
	SavedAt        time.Time
	NonAirSections int
}
