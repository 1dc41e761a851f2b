package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"raymode7/internal/capture"
	"raymode7/internal/config"
	"raymode7/internal/engine"
	"raymode7/internal/mathutil"
	"raymode7/internal/scene"
	"raymode7/internal/threading"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to config.yaml")
	mapFile := flag.String("map", "", "Map file (default: world.map_file from config)")
	x := flag.Float64("x", math.NaN(), "Camera X (default: map start)")
	y := flag.Float64("y", math.NaN(), "Camera Y (default: map start)")
	angle := flag.Float64("angle", 0, "Camera angle in degrees")
	fov := flag.Float64("fov", 0, "Field of view in degrees (default: camera.field_of_view)")
	height := flag.Float64("height", math.NaN(), "Eye height offset (default: camera.height_offset)")
	pitch := flag.Int("pitch", 0, "Horizon shift in pixels")
	size := flag.String("size", "", "Output size WxH (default: render size from config)")
	frames := flag.Int("frames", 1, "Frames to record (only for .zst output)")
	turn := flag.Float64("turn", 0, "Degrees to turn per recorded frame")
	out := flag.String("out", "snapshot.webp", "Output file: .webp, .png or .zst")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *size != "" {
		if _, err := fmt.Sscanf(*size, "%dx%d", &cfg.Render.Width, &cfg.Render.Height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: -size must look like 320x200: %v\n", err)
			os.Exit(1)
		}
	}

	sc, err := scene.Load(cfg, filepath.Dir(*configFile), *mapFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	cam := sc.StartCamera(cfg)
	if !math.IsNaN(*x) {
		cam.X = *x
	}
	if !math.IsNaN(*y) {
		cam.Y = *y
	}
	cam.Angle = mathutil.DegToRad(*angle)
	if *fov > 0 {
		cam.FOV = mathutil.DegToRad(*fov)
	}
	if !math.IsNaN(*height) {
		cam.HeightOffset = *height
	}
	cam.Pitch = *pitch

	tc := threading.NewThreadingComponents(cfg)
	defer tc.Shutdown()

	opts := scene.RendererOptions(cfg)
	opts.Executor = tc.Executor()
	opts.Recorder = tc.Recorder()
	r := engine.NewRenderer(opts)

	start := time.Now()
	if strings.EqualFold(filepath.Ext(*out), ".zst") {
		err = record(r, sc, cam, *out, *frames, mathutil.DegToRad(*turn))
	} else {
		err = snapshot(r, sc, cam, *out)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Printf("[Snapshot] Wrote %s in %v (%s)", *out, time.Since(start).Round(time.Millisecond), tc.GetDetailedStats())
}

func render(r *engine.Renderer, sc *scene.Scene, cam engine.Camera) (*engine.FrameBuffer, error) {
	fb, err := r.RenderFrame(cam, sc.Grid(), sc.Atlas, sc.Sprites...)
	if err != nil {
		return nil, err
	}
	stats := r.Stats()
	if stats.CameraClamped {
		log.Printf("[Snapshot] Camera clamped into the grid at (%.2f, %.2f)", stats.CameraX, stats.CameraY)
	}
	if len(stats.MissingTexture) > 0 {
		log.Printf("[Snapshot] Missing textures: %v", stats.MissingTexture)
	}
	return fb, nil
}

func snapshot(r *engine.Renderer, sc *scene.Scene, cam engine.Camera, out string) error {
	fb, err := render(r, sc, cam)
	if err != nil {
		return err
	}
	return capture.SaveImage(out, fb.Image())
}

func record(r *engine.Renderer, sc *scene.Scene, cam engine.Camera, out string, frames int, turn float64) error {
	rec, err := capture.CreateRecorder(out)
	if err != nil {
		return err
	}
	for i := 0; i < max(1, frames); i++ {
		fb, err := render(r, sc, cam)
		if err != nil {
			rec.Close()
			return err
		}
		if err := rec.Record(fb, cam); err != nil {
			rec.Close()
			return err
		}
		cam.Rotate(turn)
	}
	return rec.Close()
}
