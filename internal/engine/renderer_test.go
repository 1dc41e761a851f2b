package engine

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"testing"

	"raymode7/internal/world"
)

func TestRenderFrameComposite(t *testing.T) {
	r := NewRenderer(flatOptions())
	cam := NewCamera(5, 5, 0, math.Pi/3)

	frame, err := r.RenderFrame(cam, openRoom(10), defaultAssets())
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if frame.Width != testWidth || frame.Height != testHeight || len(frame.Pix) != testWidth*testHeight*4 {
		t.Fatalf("frame is %dx%d with %d bytes", frame.Width, frame.Height, len(frame.Pix))
	}

	// A wall 5 units away spans about 28 rows either side of the horizon.
	tests := []struct {
		row  int
		want color.RGBA
	}{
		{0, blue},
		{60, blue},
		{80, red},
		{100, red},
		{120, red},
		{140, green},
		{199, green},
	}
	for _, tt := range tests {
		if got := frame.At(160, tt.row); got != tt.want {
			t.Errorf("pixel (160,%d) = %v, want %v", tt.row, got, tt.want)
		}
	}

	if z := r.ZBuffer().At(160); !approx(z, 5, 1e-3) {
		t.Errorf("z-buffer centre = %v, want 5", z)
	}
	stats := r.Stats()
	if stats.WallColumns != testWidth || !stats.TablesRebuilt || stats.CameraClamped || stats.Frame != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRenderFrameIdempotent(t *testing.T) {
	r := NewRenderer(Options{Width: testWidth, Height: testHeight})
	grid := openRoom(10)
	grid.SetWall(7, 3, 1)
	cam := NewCamera(4.3, 5.7, 0.4, DefaultFOV)

	first, err := r.RenderFrame(cam, grid, defaultAssets())
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	snapshot := first.Clone()
	second, err := r.RenderFrame(cam, grid, defaultAssets())
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(snapshot.Pix, second.Pix) {
		t.Error("rendering the same inputs twice produced different frames")
	}
	if r.Stats().TablesRebuilt {
		t.Error("tables were rebuilt although nothing changed")
	}
}

func TestRenderFrameParallelMatchesSerial(t *testing.T) {
	grid := openRoom(12)
	grid.SetWall(8, 8, 1)
	grid.SetWall(3, 9, 1)
	cam := NewCamera(6.2, 6.1, 2.1, DefaultFOV)

	sprite := Sprite{X: 7, Y: 7, Texture: 20}

	serial := NewRenderer(Options{Width: testWidth, Height: testHeight})
	want, err := serial.RenderFrame(cam, grid, defaultAssets(), sprite)
	if err != nil {
		t.Fatalf("serial: %v", err)
	}

	rec := &phaseCounter{}
	parallel := NewRenderer(Options{Width: testWidth, Height: testHeight, Executor: goExecutor{}, Recorder: rec})
	got, err := parallel.RenderFrame(cam, grid, defaultAssets(), sprite)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if !bytes.Equal(want.Pix, got.Pix) {
		t.Error("parallel render differs from serial render")
	}
	for _, phase := range []string{PhaseRaycast, PhasePlanes, PhaseComposite, PhaseSprites} {
		if rec.phases[phase] != 1 {
			t.Errorf("phase %s recorded %d times", phase, rec.phases[phase])
		}
	}
}

func TestRenderFrameMissingTexture(t *testing.T) {
	r := NewRenderer(flatOptions())
	assets := testAssets{10: green, 11: blue}

	frame, err := r.RenderFrame(NewCamera(5, 5, 0, DefaultFOV), openRoom(10), assets)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if got := frame.At(160, 100); got != DefaultMissingColor {
		t.Errorf("missing wall texture drew %v, want %v", got, DefaultMissingColor)
	}
	if missing := r.Stats().MissingTexture; len(missing) != 1 || missing[0] != 1 {
		t.Errorf("missing textures = %v, want [1]", missing)
	}

	if _, err := r.RenderFrame(NewCamera(5, 5, 0, DefaultFOV), openRoom(10), nil); err != nil {
		t.Errorf("nil assets should render placeholders, got %v", err)
	}
}

func TestRenderFrameSkyFogAndFlatColours(t *testing.T) {
	opts := flatOptions()
	opts.MaxDistance = 8
	r := NewRenderer(opts)
	grid := openRoom(200)
	grid.DefaultCeiling = world.TextureNone

	frame, err := r.RenderFrame(NewCamera(100, 100, 0, math.Pi/3), grid, defaultAssets())
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if r.Stats().WallColumns != 0 {
		t.Fatalf("expected no walls in view, got %d", r.Stats().WallColumns)
	}
	if got := frame.At(160, 100); got != DefaultSkyColor {
		t.Errorf("horizon = %v, want sky", got)
	}
	if got := frame.At(160, 101); got != DefaultFogColor {
		t.Errorf("row beyond view distance = %v, want fog", got)
	}
	if got := frame.At(160, 199); got != green {
		t.Errorf("near floor = %v, want floor texture", got)
	}
	if got := frame.At(160, 0); got != DefaultCeilingColor {
		t.Errorf("untextured ceiling = %v, want flat ceiling colour", got)
	}
}

func TestRenderFrameClampsCamera(t *testing.T) {
	r := NewRenderer(flatOptions())
	if _, err := r.RenderFrame(NewCamera(-3, 5, 0, DefaultFOV), openRoom(10), defaultAssets()); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	stats := r.Stats()
	if !stats.CameraClamped || stats.CameraX != 0 || stats.CameraY != 5 {
		t.Errorf("stats = %+v, want camera clamped to (0,5)", stats)
	}
}

func TestRenderFrameConfigurationErrors(t *testing.T) {
	grid := openRoom(10)
	cam := NewCamera(5, 5, 0, DefaultFOV)

	_, err := NewRenderer(Options{}).RenderFrame(cam, grid, nil)
	if !errors.Is(err, ErrTablesNotInitialized) {
		t.Errorf("render without a resolution: %v", err)
	}

	r := NewRenderer(flatOptions())
	cam.FOV = 4
	var cfgErr *ConfigurationError
	if _, err := r.RenderFrame(cam, grid, nil); !errors.As(err, &cfgErr) || cfgErr.Field != "fov" {
		t.Errorf("render with an invalid fov: %v", err)
	}
	if _, err := r.RenderFrame(NewCamera(5, 5, 0, DefaultFOV), nil, nil); !errors.As(err, &cfgErr) {
		t.Errorf("render without a grid: %v", err)
	}
}

func TestRendererResizeAndFOVChange(t *testing.T) {
	r := NewRenderer(flatOptions())
	grid := openRoom(10)
	cam := NewCamera(5, 5, 0, DefaultFOV)
	if _, err := r.RenderFrame(cam, grid, defaultAssets()); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	if err := r.Resize(160, 100); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	frame, err := r.RenderFrame(cam, grid, defaultAssets())
	if err != nil {
		t.Fatalf("RenderFrame after resize: %v", err)
	}
	if frame.Width != 160 || frame.Height != 100 {
		t.Errorf("frame is %dx%d after resize", frame.Width, frame.Height)
	}
	if w, h := r.Size(); w != 160 || h != 100 {
		t.Errorf("Size = %dx%d", w, h)
	}

	cam.FOV = math.Pi / 2
	if _, err := r.RenderFrame(cam, grid, defaultAssets()); err != nil {
		t.Fatalf("RenderFrame after fov change: %v", err)
	}
	if !r.Stats().TablesRebuilt || !r.Tables().Matches(160, 100, math.Pi/2) {
		t.Error("fov change should rebuild the tables")
	}

	if err := r.Resize(0, 10); err == nil {
		t.Error("expected an error for a zero width")
	}
}

func TestRenderFrameSprites(t *testing.T) {
	r := NewRenderer(flatOptions())
	cam := NewCamera(5, 5, 0, math.Pi/3)

	frame, err := r.RenderFrame(cam, openRoom(10), defaultAssets(), Sprite{X: 7, Y: 5, Texture: 20})
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if got := frame.At(160, 100); got != yellow {
		t.Errorf("sprite in front of the wall drew %v, want %v", got, yellow)
	}
	if r.Stats().SpritesDrawn != 1 {
		t.Errorf("sprites drawn = %d", r.Stats().SpritesDrawn)
	}
	if z := r.ZBuffer().At(160); !approx(z, 5, 1e-3) {
		t.Errorf("sprite changed the z-buffer to %v", z)
	}

	// A wall line between the camera and the sprite hides it.
	grid := openRoom(10)
	for y := 0; y < 10; y++ {
		grid.SetWall(7, y, 1)
	}
	frame, err = r.RenderFrame(cam, grid, defaultAssets(), Sprite{X: 8.5, Y: 5, Texture: 20}, Sprite{X: 5, Y: 5, Texture: 20})
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if got := frame.At(160, 100); got != red {
		t.Errorf("occluded sprite leaked through: %v", got)
	}
	if r.Stats().SpritesDrawn != 0 {
		t.Errorf("sprites drawn = %d, want 0", r.Stats().SpritesDrawn)
	}
}

func TestRenderFrameTransparentSprite(t *testing.T) {
	r := NewRenderer(flatOptions())
	assets := defaultAssets()
	assets[30] = color.RGBA{}

	frame, err := r.RenderFrame(NewCamera(5, 5, 0, math.Pi/3), openRoom(10), assets, Sprite{X: 7, Y: 5, Texture: 30})
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if got := frame.At(160, 100); got != red {
		t.Errorf("transparent sprite texels should be skipped, got %v", got)
	}
}
