package scene

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"raymode7/internal/config"
	"raymode7/internal/engine"
	"raymode7/internal/texture"
	"raymode7/internal/world"
)

// Scene is everything a frame needs besides the camera: the grid, its
// textures and the sprites placed on it.
type Scene struct {
	Registry *world.TileRegistry
	Map      *world.MapData
	Atlas    *texture.Atlas
	Sprites  []engine.Sprite
}

// Load reads the tile registry, map and textures named by cfg. A non-empty
// mapPath overrides the configured map. Relative paths are resolved against
// baseDir.
func Load(cfg *config.Config, baseDir, mapPath string) (*Scene, error) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	reg := world.NewTileRegistry()
	if err := reg.LoadTileConfig(resolve(cfg.World.TilesFile)); err != nil {
		return nil, err
	}

	if mapPath == "" {
		mapPath = resolve(cfg.World.MapFile)
	}
	md, err := world.NewMapLoader(reg).LoadMap(mapPath)
	if err != nil {
		return nil, err
	}
	if err := md.Grid.Validate(reg.HasTexture); err != nil {
		return nil, fmt.Errorf("map %s: %w", mapPath, err)
	}
	log.Printf("[Scene] Loaded %s: %dx%d, %d sprites", filepath.Base(mapPath), md.Grid.Width, md.Grid.Height, len(md.Sprites))

	atlas := texture.NewAtlas(cfg.World.TextureSize)
	if err := atlas.LoadRegistry(reg, resolve(cfg.World.TextureDir)); err != nil {
		return nil, err
	}

	s := &Scene{Registry: reg, Map: md, Atlas: atlas}
	for _, sp := range md.Sprites {
		s.Sprites = append(s.Sprites, engine.Sprite{X: sp.X, Y: sp.Y, Texture: sp.Texture})
	}
	return s, nil
}

// Grid returns the scene's world grid.
func (s *Scene) Grid() *world.Grid {
	return s.Map.Grid
}

// StartCamera places a camera at the map's start cell.
func (s *Scene) StartCamera(cfg *config.Config) engine.Camera {
	x, y := s.Map.StartPosition()
	cam := engine.NewCamera(x, y, 0, cfg.GetCameraFOV())
	cam.HeightOffset = cfg.Camera.HeightOffset
	return cam
}

// RendererOptions converts the render section of cfg into renderer options.
func RendererOptions(cfg *config.Config) engine.Options {
	colors := cfg.Render.Colors
	return engine.Options{
		Width:       cfg.GetRenderWidth(),
		Height:      cfg.GetRenderHeight(),
		MaxDistance: cfg.GetViewDistance(),
		Shader: engine.Shader{
			Curve:        cfg.Render.Shading.Curve,
			ViewDistance: cfg.GetViewDistance(),
			Min:          cfg.Render.Shading.BrightnessMin,
			SideFactor:   cfg.Render.Shading.SideFactor,
		},
		SkyColor:     rgb(colors.Sky),
		FloorColor:   rgb(colors.Floor),
		CeilingColor: rgb(colors.Ceiling),
		FogColor:     rgb(colors.Fog),
		MissingColor: rgb(colors.Missing),
	}
}

// rgb converts a config triple; an unset triple stays zero so the renderer
// default applies.
func rgb(c [3]int) color.RGBA {
	if c == [3]int{} {
		return color.RGBA{}
	}
	return color.RGBA{uint8(c[0]), uint8(c[1]), uint8(c[2]), 255}
}
