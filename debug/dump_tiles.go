package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"raymode7/internal/world"
)

// Prints the tile registry and a map's decoded cells, for checking letter
// mappings and texture ids without opening the viewer.
func main() {
	tilesFile := flag.String("tiles", "../assets/tiles.yaml", "Tile registry")
	mapFile := flag.String("map", "../assets/maps/courtyard.map", "Map to decode")
	flag.Parse()

	tr := world.NewTileRegistry()
	if err := tr.LoadTileConfig(*tilesFile); err != nil {
		log.Fatalf("Failed to load tile config: %v", err)
	}

	fmt.Println("Textures:")
	for _, id := range tr.TextureIDs() {
		def, _ := tr.Texture(id)
		source := def.Procedural
		if def.File != "" {
			source = def.File
		}
		if source == "" {
			source = fmt.Sprintf("rgb%v", def.Color)
		}
		fmt.Printf("  %3d %-16s %s\n", id, def.Name, source)
	}

	defaults := tr.Defaults()
	fmt.Printf("\nDefaults: floor=%d ceiling=%d boundary=%d\n", defaults.Floor, defaults.Ceiling, defaults.Boundary)

	md, err := world.NewMapLoader(tr).LoadMap(*mapFile)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}
	g := md.Grid
	fmt.Printf("\nMap %s: %dx%d, start (%d,%d), %d sprites\n", *mapFile, g.Width, g.Height, md.StartX, md.StartY, len(md.Sprites))

	// Count cells per (walkable, texture, ceiling) combination.
	counts := make(map[string]int)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			var key string
			if c.Walkable {
				key = fmt.Sprintf("floor %d / ceiling %d", g.FloorTexture(x, y), g.CeilingTexture(x, y))
			} else {
				key = fmt.Sprintf("wall %d", c.Texture)
			}
			counts[key]++
		}
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-28s %d\n", k, counts[k])
	}

	if err := g.Validate(tr.HasTexture); err != nil {
		fmt.Printf("\nValidation: %v\n", err)
	} else {
		fmt.Println("\nValidation: OK")
	}
}
