// Command worldinfo prints what the overworld generator computes at a block:
// the climate point, the biome and the estimated surface height. With -data
// it also lists the chunks saved in a world directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/OCharnyshevich/worldgen-server/internal/server/storage"
	"github.com/OCharnyshevich/worldgen-server/internal/server/world/gen"
	"github.com/OCharnyshevich/worldgen-server/pkg/noise"
)

func main() {
	var (
		seed      = flag.Int64("seed", 0, "world seed")
		x         = flag.Int("x", 0, "block x")
		y         = flag.Int("y", 64, "block y")
		z         = flag.Int("z", 0, "block z")
		large     = flag.Bool("large-biomes", false, "large biomes")
		amplified = flag.Bool("amplified", false, "amplified terrain")
		noiseDir  = flag.String("noise-data", "", "worldgen/noise directory overriding the built-in parameters")
		dataDir   = flag.String("data", "", "world data directory to list")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	params := noise.DefaultParams()
	if *noiseDir != "" {
		var err error
		if params, err = noise.LoadParamsDir(params, *noiseDir); err != nil {
			log.Error("load noise parameters", "error", err)
			os.Exit(1)
		}
	}
	opts := gen.DefaultOptions()
	opts.LargeBiomes, opts.Amplified = *large, *amplified
	g := gen.NewDefaultGeneratorWith(*seed, params, opts)

	p, b := g.ClimateAt(*x, *y, *z)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "position\t%d %d %d\n", *x, *y, *z)
	fmt.Fprintf(w, "temperature\t%.4f\n", unquantize(p.Temperature))
	fmt.Fprintf(w, "humidity\t%.4f\n", unquantize(p.Humidity))
	fmt.Fprintf(w, "continentalness\t%.4f\n", unquantize(p.Continentalness))
	fmt.Fprintf(w, "erosion\t%.4f\n", unquantize(p.Erosion))
	fmt.Fprintf(w, "depth\t%.4f\n", unquantize(p.Depth))
	fmt.Fprintf(w, "weirdness\t%.4f\n", unquantize(p.Weirdness))
	fmt.Fprintf(w, "biome\t%s\n", b)
	fmt.Fprintf(w, "surface\t%d\n", g.HeightAt(*x, *z))
	w.Flush()

	if *dataDir == "" {
		return
	}
	store, err := storage.New(*dataDir, log)
	if err != nil {
		log.Error("open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := listChunks(store); err != nil {
		log.Error("list chunks", "error", err)
		os.Exit(1)
	}
}

func unquantize(v int64) float64 { return float64(v) / 10000 }

func listChunks(store *storage.Storage) error {
	ctx := context.Background()
	level, err := store.LoadLevel()
	if err != nil {
		return err
	}
	if level != nil {
		fmt.Printf("\nlevel: seed %d, generator %s, spawn %d %d %d\n",
			level.Seed, level.Generator, level.Spawn.X, level.Spawn.Y, level.Spawn.Z)
	}
	rows, err := store.Index().Chunks(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\nchunk\tregion\tsections\tsaved\n")
	for _, r := range rows {
		fmt.Fprintf(w, "%d %d\t%s\t%d\t%s\n", r.X, r.Z, r.Region, r.NonAirSections, r.SavedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
