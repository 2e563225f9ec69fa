// Command generate builds one batch of synthetic growth data and writes it
// to disk, for seeding dashboards or demo environments without running the
// API server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/dataset"
	"github.com/marktivo/growth-os/internal/export"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	seed := flag.Int64("seed", 0, "generation seed (0 uses the configured seed)")
	days := flag.Int("days", 0, "window length in days (0 uses the configured window)")
	out := flag.String("out", "data", "output path: a .json file, or a directory for csv")
	format := flag.String("format", "json", "output format: json or csv")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Generation.Seed = *seed
	}
	if *days != 0 {
		cfg.Generation.WindowDays = *days
	}

	b, err := dataset.Generate(cfg.Generation.Seed, cfg)
	if err != nil {
		log.Fatalf("Failed to generate batch: %v", err)
	}
	log.Printf("Generated batch %s (seed=%d, window=%d days)", b.ID, b.Seed, b.WindowDays)

	switch *format {
	case "json":
		path := *out
		if path == "data" {
			path = "data.json"
		}
		if err := export.JSON(b, path); err != nil {
			log.Fatalf("Failed to write JSON: %v", err)
		}
		log.Printf("Wrote %s", path)
	case "csv":
		if err := export.CSV(b, *out); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
		log.Printf("Wrote CSV tables to %s/", *out)
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (want json or csv)\n", *format)
		os.Exit(2)
	}
}
