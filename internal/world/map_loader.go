package world

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode/utf8"
)

// MapLoader builds grids from text map files.
//
// Format: one line per grid row, one character per cell. Lines that are empty
// or start with '#' are skipped. Characters are resolved through the tile
// registry; '+' marks the camera start cell.
type MapLoader struct {
	registry *TileRegistry
	verbose  bool
}

// MapData contains the loaded map information
type MapData struct {
	Grid    *Grid
	StartX  int
	StartY  int
	Sprites []SpritePlacement
}

// SpritePlacement is a billboard placed by a map tile.
type SpritePlacement struct {
	X, Y    float64
	Texture TextureID
	Solid   bool
}

// NewMapLoader creates a new map loader resolving letters through registry.
func NewMapLoader(registry *TileRegistry) *MapLoader {
	return &MapLoader{registry: registry}
}

// SetVerbose enables per-line load logging.
func (ml *MapLoader) SetVerbose(v bool) {
	ml.verbose = v
}

// LoadMap loads a map from the specified file path
func (ml *MapLoader) LoadMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	data, err := ml.Read(file)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", mapPath, err)
	}
	return data, nil
}

// Read parses a map from r.
func (ml *MapLoader) Read(r io.Reader) (*MapData, error) {
	if ml.registry == nil {
		return nil, fmt.Errorf("map loader has no tile registry")
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
		if ml.verbose {
			log.Printf("[MapLoader] Loaded line %d: '%s' (symbols: %d)", len(lines), line, utf8.RuneCountInString(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("map file contains no valid map data")
	}

	height := len(lines)
	width := utf8.RuneCountInString(lines[0])
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != width {
			return nil, fmt.Errorf("line %d has inconsistent width: expected %d, got %d", i+1, width, n)
		}
	}

	grid := NewGrid(width, height)
	defaults := ml.registry.Defaults()
	grid.DefaultFloor = defaults.Floor
	grid.DefaultCeiling = defaults.Ceiling
	grid.Boundary = defaults.Boundary

	mapData := &MapData{Grid: grid, StartX: -1, StartY: -1}
	for y, line := range lines {
		x := 0
		for _, char := range line {
			def, ok := ml.registry.TileForLetter(char)
			if !ok {
				return nil, fmt.Errorf("line %d column %d: unknown tile letter %q", y+1, x+1, char)
			}
			grid.Set(x, y, Cell{Texture: def.Texture, Ceiling: def.Ceiling, Walkable: def.Walkable})
			if def.Sprite != TextureEmpty {
				mapData.Sprites = append(mapData.Sprites, SpritePlacement{
					X:       float64(x) + 0.5,
					Y:       float64(y) + 0.5,
					Texture: def.Sprite,
					Solid:   def.Solid,
				})
			}
			if ml.registry.IsStartLetter(char) {
				mapData.StartX = x
				mapData.StartY = y
			}
			x++
		}
	}

	return mapData, nil
}

// StartPosition returns the world-space centre of the start cell, or the
// grid centre when the map has no start marker.
func (md *MapData) StartPosition() (float64, float64) {
	if md.StartX < 0 || md.StartY < 0 {
		return float64(md.Grid.Width) / 2, float64(md.Grid.Height) / 2
	}
	return float64(md.StartX) + 0.5, float64(md.StartY) + 0.5
}
