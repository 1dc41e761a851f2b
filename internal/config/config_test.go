package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `
display:
  screen_width: 800
  screen_height: 500
  window_title: test
render:
  width: 400
  shading:
    curve: inverse
  colors:
    sky: [1, 2, 3]
camera:
  field_of_view: 90
  view_distance: 20
threading:
  enabled: true
  workers: 3
`

func TestParseConfig(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.GetScreenWidth() != 800 || cfg.GetScreenHeight() != 500 {
		t.Errorf("screen = %dx%d", cfg.GetScreenWidth(), cfg.GetScreenHeight())
	}
	if cfg.GetRenderWidth() != 400 || cfg.GetRenderHeight() != 500 {
		t.Errorf("render = %dx%d, want 400x500", cfg.GetRenderWidth(), cfg.GetRenderHeight())
	}
	if math.Abs(cfg.GetCameraFOV()-math.Pi/2) > 1e-12 {
		t.Errorf("fov = %v rad, want π/2", cfg.GetCameraFOV())
	}
	if cfg.GetViewDistance() != 20 || cfg.Render.Shading.Curve != "inverse" || cfg.Render.Colors.Sky != [3]int{1, 2, 3} {
		t.Errorf("parsed values lost: %+v", cfg.Render)
	}
	if cfg.GetWorkers() != 3 {
		t.Errorf("workers = %d", cfg.GetWorkers())
	}
	// Unset values come from defaults.
	if cfg.Render.Shading.SideFactor != 0.7 || cfg.GetMoveSpeed() != 3 || cfg.World.TextureSize != 64 {
		t.Errorf("defaults not applied: %+v %+v", cfg.Render.Shading, cfg.Movement)
	}
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown section":  "graphics:\n  brightness_min: 0.2\n",
		"unknown key":      "camera:\n  zoom: 2\n",
		"fov out of range": "camera:\n  field_of_view: 180\n",
		"wrong type":       "display:\n  screen_width: wide\n",
		"bad curve":        "render:\n  shading:\n    curve: cubic\n",
		"bad colour":       "render:\n  colors:\n    fog: [1, 2]\n",
		"bad format":       "capture:\n  format: gif\n",
		"malformed yaml":   "camera: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.GetRenderWidth() != cfg.GetScreenWidth() {
		t.Error("render width should default to the screen width")
	}
	if math.Abs(cfg.GetCameraFOV()-cfg.GetDefaultFOV()) > 1e-12 {
		t.Errorf("default fov = %v", cfg.GetCameraFOV())
	}
	if cfg.GetWorkers() != 0 {
		t.Error("threading should be off by default")
	}
	if cfg.GetFOVStep() <= 0 || cfg.GetRotSpeed() <= 0 {
		t.Error("movement defaults missing")
	}

	empty, err := Parse(nil)
	if err != nil {
		t.Fatalf("empty config: %v", err)
	}
	if *empty != *cfg {
		t.Error("an empty file should equal the defaults")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if cfg := MustLoadConfig(path); cfg.Display.WindowTitle != "test" {
		t.Errorf("title = %q", cfg.Display.WindowTitle)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}

	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), "Failed to load config") {
			t.Errorf("MustLoadConfig should panic, got %v", r)
		}
	}()
	MustLoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
}
