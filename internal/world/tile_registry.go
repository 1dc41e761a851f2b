package world

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// TextureDef describes one texture slot: an image file to load and the
// procedural pattern to generate when the file is absent.
type TextureDef struct {
	Name       string `yaml:"name"`
	File       string `yaml:"file"`
	Procedural string `yaml:"procedural"`
	Color      [3]int `yaml:"color"`
}

// TileDef maps a map letter to cell properties.
type TileDef struct {
	Letter   string    `yaml:"letter"`
	Texture  TextureID `yaml:"texture"`
	Ceiling  TextureID `yaml:"ceiling"`
	Walkable bool      `yaml:"walkable"`
	// Sprite places a billboard with this texture at the cell centre.
	Sprite TextureID `yaml:"sprite"`
	Solid  bool      `yaml:"solid"` // sprite blocks movement
}

// TileDefaults are the grid-wide texture defaults.
type TileDefaults struct {
	Floor    TextureID `yaml:"floor"`
	Ceiling  TextureID `yaml:"ceiling"`
	Boundary TextureID `yaml:"boundary"`
}

type tileFile struct {
	Textures map[TextureID]TextureDef `yaml:"textures"`
	Tiles    map[string]TileDef       `yaml:"tiles"`
	Defaults TileDefaults             `yaml:"defaults"`
}

// TileRegistry holds the tile and texture definitions loaded from YAML.
type TileRegistry struct {
	textures     map[TextureID]TextureDef
	tiles        map[string]TileDef
	letterToKey  map[rune]string
	defaults     TileDefaults
	startLetter  rune
	startTileKey string
}

// NewTileRegistry creates an empty registry. '+' marks the start position and
// resolves to the tile keyed "floor" when present.
func NewTileRegistry() *TileRegistry {
	return &TileRegistry{
		textures:     make(map[TextureID]TextureDef),
		tiles:        make(map[string]TileDef),
		letterToKey:  make(map[rune]string),
		defaults:     TileDefaults{Floor: TextureNone, Ceiling: TextureNone, Boundary: 1},
		startLetter:  '+',
		startTileKey: "floor",
	}
}

// LoadTileConfig loads tile configuration from a YAML file.
func (tr *TileRegistry) LoadTileConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read tile config file: %w", err)
	}
	return tr.Parse(data)
}

// Parse loads tile configuration from YAML bytes.
func (tr *TileRegistry) Parse(data []byte) error {
	var tf tileFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("failed to parse tile config: %w", err)
	}

	tr.textures = make(map[TextureID]TextureDef, len(tf.Textures))
	for id, def := range tf.Textures {
		if id <= TextureEmpty {
			return fmt.Errorf("texture id %d is reserved", id)
		}
		tr.textures[id] = def
	}

	tr.tiles = make(map[string]TileDef, len(tf.Tiles))
	tr.letterToKey = make(map[rune]string, len(tf.Tiles))
	for key, def := range tf.Tiles {
		runes := []rune(def.Letter)
		if len(runes) != 1 {
			return fmt.Errorf("tile %q: letter must be a single character, got %q", key, def.Letter)
		}
		if runes[0] == tr.startLetter {
			return fmt.Errorf("tile %q: letter %q is reserved for the start position", key, def.Letter)
		}
		if runes[0] == '#' {
			return fmt.Errorf("tile %q: '#' starts a comment line and cannot be a tile letter", key)
		}
		if other, dup := tr.letterToKey[runes[0]]; dup {
			return fmt.Errorf("tile %q: letter %q already used by %q", key, def.Letter, other)
		}
		if !def.Walkable && def.Texture == TextureEmpty {
			return fmt.Errorf("tile %q: walls need a texture", key)
		}
		if def.Sprite != TextureEmpty && !def.Walkable {
			return fmt.Errorf("tile %q: sprites can only stand on walkable tiles", key)
		}
		tr.tiles[key] = def
		tr.letterToKey[runes[0]] = key
	}

	tr.defaults = tf.Defaults
	if tr.defaults.Floor == TextureEmpty {
		tr.defaults.Floor = TextureNone
	}
	if tr.defaults.Ceiling == TextureEmpty {
		tr.defaults.Ceiling = TextureNone
	}
	if tr.defaults.Boundary == TextureEmpty {
		tr.defaults.Boundary = 1
	}
	return nil
}

// TileForLetter returns the tile definition for a map character.
func (tr *TileRegistry) TileForLetter(letter rune) (TileDef, bool) {
	if letter == tr.startLetter {
		if def, ok := tr.tiles[tr.startTileKey]; ok {
			return def, true
		}
		return TileDef{Walkable: true}, true
	}
	key, ok := tr.letterToKey[letter]
	if !ok {
		return TileDef{}, false
	}
	return tr.tiles[key], true
}

// TileByKey returns a tile definition by its YAML key.
func (tr *TileRegistry) TileByKey(key string) (TileDef, bool) {
	def, ok := tr.tiles[key]
	return def, ok
}

// Texture returns the definition of a texture slot.
func (tr *TileRegistry) Texture(id TextureID) (TextureDef, bool) {
	def, ok := tr.textures[id]
	return def, ok
}

// TextureIDs returns all defined texture ids in ascending order.
func (tr *TileRegistry) TextureIDs() []TextureID {
	ids := make([]TextureID, 0, len(tr.textures))
	for id := range tr.textures {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// HasTexture reports whether a texture id is defined.
func (tr *TileRegistry) HasTexture(id TextureID) bool {
	_, ok := tr.textures[id]
	return ok
}

// Defaults returns the grid-wide texture defaults.
func (tr *TileRegistry) Defaults() TileDefaults {
	return tr.defaults
}

// IsStartLetter reports whether the character marks the start position.
func (tr *TileRegistry) IsStartLetter(letter rune) bool {
	return letter == tr.startLetter
}
