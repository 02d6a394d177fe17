package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/worldgen-server/internal/server"
	"github.com/OCharnyshevich/worldgen-server/internal/server/config"
	"github.com/OCharnyshevich/worldgen-server/internal/server/storage"
)

func main() {
	cfg := config.DefaultConfig()

	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "world data directory")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed (random when unset)")
	flag.StringVar(&cfg.GeneratorType, "generator", cfg.GeneratorType, `world generator: "default" or "flat"`)
	flag.IntVar(&cfg.ViewDistance, "view-distance", cfg.ViewDistance, "view distance in chunks")
	flag.IntVar(&cfg.WorldRadius, "world-radius", cfg.WorldRadius, "radius generated at startup in chunks (0 = view distance)")
	flag.IntVar(&cfg.SeaLevel, "sea-level", cfg.SeaLevel, "sea level")
	flag.BoolVar(&cfg.LargeBiomes, "large-biomes", cfg.LargeBiomes, "stretch biomes four times horizontally")
	flag.BoolVar(&cfg.Amplified, "amplified", cfg.Amplified, "amplified terrain")
	flag.DurationVar(&cfg.AutosaveInterval, "autosave", cfg.AutosaveInterval, "autosave interval (0 disables)")
	flag.IntVar(&cfg.PregenWorkers, "pregen-workers", cfg.PregenWorkers, "chunks generated in parallel")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	flag.StringVar(&cfg.NoiseDataDir, "noise-data", cfg.NoiseDataDir, "worldgen/noise directory overriding the built-in noise parameters")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	fromFile, found, err := config.Load(cfg.DataDir)
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	if found {
		config.Merge(cfg, fromFile, explicit)
	} else if !explicit["seed"] {
		cfg.Seed = rand.Int64()
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	store, err := storage.New(cfg.DataDir, log)
	if err != nil {
		log.Error("open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	srv, err := server.New(cfg, store, log)
	if err != nil {
		log.Error("create server", "error", err)
		os.Exit(1)
	}
	if !found {
		if err := store.SaveConfig(cfg); err != nil {
			log.Warn("save config", "error", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
