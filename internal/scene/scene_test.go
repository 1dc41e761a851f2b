package scene

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"raymode7/internal/config"
)

const tiles = `
textures:
  1: {name: stone, procedural: stone}
  10: {name: floor, color: [90, 90, 90]}
  20: {name: orb, procedural: orb, color: [200, 200, 0]}
tiles:
  floor: {letter: ".", walkable: true}
  wall: {letter: "W", texture: 1}
  orb: {letter: "o", walkable: true, sprite: 20, solid: true}
defaults:
  floor: 10
`

func writeScene(t *testing.T, mapText string) (string, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "maps"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tiles.yaml"), []byte(tiles), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "maps", "room.map"), []byte(mapText), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.World.TilesFile = "tiles.yaml"
	cfg.World.MapFile = "maps/room.map"
	cfg.World.TextureDir = "textures"
	cfg.World.TextureSize = 16
	return dir, cfg
}

func TestLoadScene(t *testing.T) {
	dir, cfg := writeScene(t, "WWWWW\nW+.oW\nWWWWW\n")

	sc, err := Load(cfg, dir, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Grid().Width != 5 || sc.Grid().Height != 3 {
		t.Errorf("grid = %dx%d", sc.Grid().Width, sc.Grid().Height)
	}
	if sc.Atlas.Len() != 3 {
		t.Errorf("atlas has %d textures, want 3", sc.Atlas.Len())
	}
	if len(sc.Sprites) != 1 || sc.Sprites[0].X != 3.5 || sc.Sprites[0].Texture != 20 {
		t.Errorf("sprites = %+v", sc.Sprites)
	}

	cfg.Camera.HeightOffset = 0.1
	cam := sc.StartCamera(cfg)
	if cam.X != 1.5 || cam.Y != 1.5 || cam.HeightOffset != 0.1 {
		t.Errorf("start camera = %+v", cam)
	}
}

func TestLoadSceneErrors(t *testing.T) {
	dir, cfg := writeScene(t, "WWW\nW?W\nWWW\n")
	if _, err := Load(cfg, dir, ""); err == nil {
		t.Error("expected an error for an unknown map letter")
	}

	dir, cfg = writeScene(t, "WWW\nW.W\nWWW\n")
	if _, err := Load(cfg, dir, filepath.Join(dir, "missing.map")); err == nil {
		t.Error("expected an error for a missing map override")
	}

	cfg.World.TilesFile = "nope.yaml"
	if _, err := Load(cfg, dir, ""); err == nil {
		t.Error("expected an error for a missing tile registry")
	}
}

func TestRendererOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Width, cfg.Render.Height = 320, 200
	cfg.Render.Colors.Sky = [3]int{1, 2, 3}

	opts := RendererOptions(cfg)
	if opts.Width != 320 || opts.Height != 200 {
		t.Errorf("size = %dx%d", opts.Width, opts.Height)
	}
	if opts.SkyColor != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("sky = %v", opts.SkyColor)
	}
	if opts.FogColor != (color.RGBA{}) {
		t.Errorf("unset fog should stay zero for the renderer default, got %v", opts.FogColor)
	}
	if opts.MaxDistance != cfg.GetViewDistance() || opts.Shader.ViewDistance != cfg.GetViewDistance() {
		t.Errorf("view distance not carried: %+v", opts)
	}
	if opts.Shader.Curve != "linear" || opts.Shader.Min != 0.2 || opts.Shader.SideFactor != 0.7 {
		t.Errorf("shader = %+v", opts.Shader)
	}
}
