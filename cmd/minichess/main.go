package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/minichess/internal/config"
	"github.com/hailam/minichess/internal/protocol"
	"github.com/hailam/minichess/internal/storage"
)

var (
	configPath = flag.String("config", "", "JSON configuration file")
	dataDir    = flag.String("data", "", "directory for saved games (overrides the config)")
	noStore    = flag.Bool("nostore", false, "disable save/load")
	verbose    = flag.Bool("v", false, "log pushes and landings")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *verbose {
		cfg.Verbose = true
	}

	var store *storage.Storage
	if !*noStore {
		s, err := storage.OpenConfigured(cfg)
		if err != nil {
			log.Printf("Warning: storage not opened: %v (save/load disabled)", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	p, err := protocol.New(cfg, store, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	if err := p.Run(os.Stdin); err != nil {
		log.Printf("read commands: %v", err)
	}
}
