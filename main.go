package main

import (
	"flag"
	"log"
	"path/filepath"

	"raymode7/internal/config"
	"raymode7/internal/scene"
	"raymode7/internal/threading"
	"raymode7/internal/viewer"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to config.yaml")
	mapFile := flag.String("map", "", "Map file (default: world.map_file from config)")
	flag.Parse()

	// Load configuration
	cfg := config.MustLoadConfig(*configFile)

	// Load tiles, map and textures
	sc, err := scene.Load(cfg, filepath.Dir(*configFile), *mapFile)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	v := viewer.New(cfg, sc, threading.NewThreadingComponents(cfg))
	defer v.Close()
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
