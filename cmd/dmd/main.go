// Command dmd downloads the vanilla worldgen noise parameters of a game
// version and checks that every file decodes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/worldgen-server/pkg/noise"
)

func main() {
	var (
		base = flag.String("base", "https://github.com/misode/mcmeta.git", "base url")
		ref  = flag.String("ref", "data", "git ref holding the extracted data")
		ver  = flag.String("version", "1.21.4", "game version, used for the output directory")
		out  = flag.String("o", "./noise", "output dir path")
	)
	flag.Parse()

	if *out == "" {
		log.Fatal("output dir path required")
	}
	if *ver == "" {
		log.Fatal("version required")
	}

	path := fmt.Sprintf("%s/%s", *out, *ver)
	if err := os.RemoveAll(path); err != nil {
		log.Fatal(err)
	}

	log.Printf("start downloading noise parameters %s", path)

	url := fmt.Sprintf("git::%s//data/minecraft/worldgen/noise?ref=%s", *base, *ref)
	if err := get.Get(path, url); err != nil {
		log.Fatal(err)
	}

	reg, err := noise.LoadParamsDir(noise.Registry{}, path)
	if err != nil {
		log.Fatalf("downloaded parameters are invalid: %v", err)
	}
	missing := 0
	for _, id := range noise.DefaultParams().IDs() {
		if _, ok := reg[id]; !ok {
			log.Printf("missing %s", id)
			missing++
		}
	}

	log.Printf("done downloading %d noise parameters to %s (%d missing); run the server with -noise-data %s",
		len(reg), path, missing, path)
}
