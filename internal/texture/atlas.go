package texture

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"sync"

	"raymode7/internal/engine"
	"raymode7/internal/threading/core"
	"raymode7/internal/world"
)

// Atlas maps texture ids to images. It is the asset capability handed to the
// renderer and is safe for concurrent lookups while being filled.
type Atlas struct {
	mu       sync.RWMutex
	textures map[world.TextureID]*Image
	size     int
	gen      *Generator
}

// NewAtlas creates an empty atlas whose textures are resampled to size×size.
func NewAtlas(size int) *Atlas {
	gen := NewGenerator(size)
	return &Atlas{
		textures: make(map[world.TextureID]*Image),
		size:     gen.Size,
		gen:      gen,
	}
}

// Add registers or replaces a texture.
func (a *Atlas) Add(id world.TextureID, img *Image) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.textures[id] = img
}

// Remove drops a texture so it renders as missing.
func (a *Atlas) Remove(id world.TextureID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.textures, id)
}

// Image returns the raw texture for an id.
func (a *Atlas) Image(id world.TextureID) (*Image, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	img, ok := a.textures[id]
	return img, ok
}

// Texture implements engine.TextureSource.
func (a *Atlas) Texture(id world.TextureID) engine.Texture {
	a.mu.RLock()
	img, ok := a.textures[id]
	a.mu.RUnlock()
	if !ok || img == nil {
		// A nil *Image inside the interface would not compare equal to nil.
		return nil
	}
	return img
}

// Len returns the number of loaded textures.
func (a *Atlas) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.textures)
}

// LoadRegistry fills the atlas from a tile registry. Files are resolved
// against baseDir; a file that cannot be loaded falls back to the procedural
// kind, then to a flat colour. Only a registry entry with nothing usable is
// an error.
func (a *Atlas) LoadRegistry(reg *world.TileRegistry, baseDir string) error {
	type loaded struct {
		id  world.TextureID
		img *Image
		err error
	}

	// Decoding and resampling dominate load time, so textures load concurrently.
	results := core.ParallelMap(reg.TextureIDs(), func(id world.TextureID) loaded {
		def, _ := reg.Texture(id)
		img, err := a.load(def, baseDir)
		if err != nil {
			err = fmt.Errorf("texture %d (%s): %w", id, def.Name, err)
		}
		return loaded{id: id, img: img, err: err}
	})
	for _, res := range results {
		if res.err != nil {
			return res.err
		}
		a.Add(res.id, res.img)
	}
	log.Printf("[Textures] Loaded %d textures", a.Len())
	return nil
}

func (a *Atlas) load(def world.TextureDef, baseDir string) (*Image, error) {
	if def.File != "" {
		path := def.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		img, err := LoadFile(path, a.size)
		if err == nil {
			return img, nil
		}
		if def.Procedural == "" && def.Color == [3]int{} {
			return nil, err
		}
		log.Printf("[Textures] Falling back for %s: %v", def.Name, err)
	}

	base := color.RGBA{uint8(def.Color[0]), uint8(def.Color[1]), uint8(def.Color[2]), 255}
	if def.Procedural != "" {
		return a.gen.Generate(def.Procedural, base), nil
	}
	if def.Color != [3]int{} {
		return a.gen.Generate(KindFlat, base), nil
	}
	return nil, fmt.Errorf("no file, procedural kind or colour")
}
