package viewer

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"raymode7/internal/capture"
	"raymode7/internal/collision"
	"raymode7/internal/config"
	"raymode7/internal/engine"
	"raymode7/internal/mathutil"
	"raymode7/internal/scene"
	"raymode7/internal/threading"
)

const (
	bodySize     = 0.4
	maxHeight    = 0.45
	minFOV       = 20 * math.Pi / 180 // radians
	maxFOV       = 150 * math.Pi / 180
	pitchStep    = 4
	recordingExt = ".zst"
)

// Viewer is the ebiten.Game that walks a camera through a scene and presents
// the renderer's frame buffer.
type Viewer struct {
	cfg       *config.Config
	scene     *scene.Scene
	camera    engine.Camera
	renderer  *engine.Renderer
	threading *threading.ThreadingComponents
	collision *collision.CollisionSystem

	frameImage *ebiten.Image

	snapshotRequested bool
	snapshotCount     int
	recorder          *capture.Recorder

	lastLog     time.Time
	lastClamped bool
	lastErr     string
}

// New creates a viewer for a loaded scene.
func New(cfg *config.Config, sc *scene.Scene, tc *threading.ThreadingComponents) *Viewer {
	opts := scene.RendererOptions(cfg)
	opts.Executor = tc.Executor()
	opts.Recorder = tc.Recorder()

	cs := collision.NewCollisionSystem(sc.Grid(), bodySize)
	for i, sp := range sc.Map.Sprites {
		if sp.Solid {
			cs.RegisterEntity(&collision.Entity{
				ID:          fmt.Sprintf("sprite_%d", i),
				BoundingBox: collision.NewBoundingBox(sp.X, sp.Y, 0.5, 0.5),
				Solid:       true,
			})
		}
	}

	return &Viewer{
		cfg:       cfg,
		scene:     sc,
		camera:    sc.StartCamera(cfg),
		renderer:  engine.NewRenderer(opts),
		threading: tc,
		collision: cs,
		lastLog:   time.Now(),
	}
}

// Camera returns the current camera.
func (v *Viewer) Camera() engine.Camera {
	return v.camera
}

// Update polls the keyboard and advances the camera.
func (v *Viewer) Update() error {
	v.Step(ReadInput(), 1/float64(ebiten.TPS()))
	return nil
}

// Step applies one tick of input. Movement and turning scale with dt seconds.
func (v *Viewer) Step(in Input, dt float64) {
	cam := &v.camera

	turn := v.cfg.GetRotSpeed() * dt
	if in.TurnLeft {
		cam.Rotate(-turn)
	}
	if in.TurnRight {
		cam.Rotate(turn)
	}

	move := v.cfg.GetMoveSpeed() * dt
	fx, fy := cam.Forward()
	rx, ry := cam.Right()
	var dx, dy float64
	if in.Forward {
		dx += fx * move
		dy += fy * move
	}
	if in.Backward {
		dx -= fx * move
		dy -= fy * move
	}
	if in.StrafeLeft {
		dx -= rx * move
		dy -= ry * move
	}
	if in.StrafeRight {
		dx += rx * move
		dy += ry * move
	}
	if dx != 0 || dy != 0 {
		cam.X, cam.Y = v.collision.Move(cam.X, cam.Y, dx, dy)
	}

	rise := v.cfg.Movement.HeightSpeed * dt
	if in.Up {
		cam.HeightOffset = math.Min(cam.HeightOffset+rise, maxHeight)
	}
	if in.Down {
		cam.HeightOffset = math.Max(cam.HeightOffset-rise, -maxHeight)
	}

	if in.PitchUp {
		cam.Pitch += pitchStep
	}
	if in.PitchDown {
		cam.Pitch -= pitchStep
	}
	h := v.cfg.GetRenderHeight()
	cam.Pitch = mathutil.IntClamp(cam.Pitch, -h/2, h/2)

	if in.WidenFOV {
		cam.FOV = math.Min(cam.FOV+v.cfg.GetFOVStep(), maxFOV)
	}
	if in.NarrowFOV {
		cam.FOV = math.Max(cam.FOV-v.cfg.GetFOVStep(), minFOV)
	}

	if in.Snapshot {
		v.snapshotRequested = true
	}
	if in.ToggleRecording {
		v.toggleRecording()
	}
}

// Draw renders a frame and presents it.
func (v *Viewer) Draw(screen *ebiten.Image) {
	monitor := v.threading.PerformanceMonitor
	monitor.StartFrame()
	fb, err := v.renderer.RenderFrame(v.camera, v.scene.Grid(), v.scene.Atlas, v.scene.Sprites...)
	monitor.EndFrame()
	if err != nil {
		if err.Error() != v.lastErr {
			log.Printf("[Viewer] Render failed: %v", err)
			v.lastErr = err.Error()
		}
		return
	}
	v.afterFrame(fb)

	if v.frameImage == nil || v.frameImage.Bounds().Dx() != fb.Width || v.frameImage.Bounds().Dy() != fb.Height {
		v.frameImage = ebiten.NewImage(fb.Width, fb.Height)
	}
	v.frameImage.WritePixels(fb.Pix)

	opts := &ebiten.DrawImageOptions{}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	opts.GeoM.Scale(float64(sw)/float64(fb.Width), float64(sh)/float64(fb.Height))
	screen.DrawImage(v.frameImage, opts)
}

// afterFrame handles everything that reads the finished frame: clamp
// reports, snapshots, recording and periodic performance logs.
func (v *Viewer) afterFrame(fb *engine.FrameBuffer) {
	stats := v.renderer.Stats()
	if stats.CameraClamped && !v.lastClamped {
		log.Printf("[Viewer] Camera clamped into the grid at (%.2f, %.2f)", stats.CameraX, stats.CameraY)
		v.camera.X, v.camera.Y = stats.CameraX, stats.CameraY
	}
	v.lastClamped = stats.CameraClamped
	if stats.TablesRebuilt && stats.Frame > 1 {
		log.Printf("[Viewer] Lookup tables rebuilt for %dx%d fov %.1f°", stats.Width, stats.Height, mathutil.RadToDeg(v.camera.FOV))
	}

	if v.snapshotRequested {
		v.snapshotRequested = false
		if path, err := v.saveSnapshot(fb); err != nil {
			log.Printf("[Viewer] Snapshot failed: %v", err)
		} else {
			log.Printf("[Viewer] Snapshot saved to %s", path)
		}
	}

	if v.recorder != nil {
		if err := v.recorder.Record(fb, v.camera); err != nil {
			log.Printf("[Viewer] Recording failed, stopping: %v", err)
			v.stopRecording()
		}
	}

	interval := time.Duration(v.cfg.Monitoring.LogIntervalSeconds * float64(time.Second))
	if interval > 0 && time.Since(v.lastLog) >= interval {
		v.lastLog = time.Now()
		log.Printf("[Perf] %s", v.threading.GetDetailedStats())
		for _, alert := range v.threading.CheckPerformanceAlerts() {
			log.Printf("[Perf] %s: %s", alert.Severity, alert.Message)
		}
		if len(stats.MissingTexture) > 0 {
			log.Printf("[Viewer] Missing textures: %v", stats.MissingTexture)
		}
	}
}

func (v *Viewer) saveSnapshot(fb *engine.FrameBuffer) (string, error) {
	v.snapshotCount++
	name := fmt.Sprintf("frame_%s_%03d.%s", time.Now().Format("20060102_150405"), v.snapshotCount, v.cfg.Capture.Format)
	path := filepath.Join(v.cfg.Capture.Dir, name)
	return path, capture.SaveImage(path, fb.Clone().Image())
}

func (v *Viewer) toggleRecording() {
	if v.recorder != nil {
		v.stopRecording()
		return
	}
	if err := os.MkdirAll(v.cfg.Capture.Dir, 0o755); err != nil {
		log.Printf("[Viewer] Could not start recording: %v", err)
		return
	}
	path := filepath.Join(v.cfg.Capture.Dir, fmt.Sprintf("recording_%s%s", time.Now().Format("20060102_150405"), recordingExt))
	rec, err := capture.CreateRecorder(path)
	if err != nil {
		log.Printf("[Viewer] Could not start recording: %v", err)
		return
	}
	v.recorder = rec
	log.Printf("[Viewer] Recording to %s", path)
}

func (v *Viewer) stopRecording() {
	if v.recorder == nil {
		return
	}
	n := v.recorder.Count()
	if err := v.recorder.Close(); err != nil {
		log.Printf("[Viewer] Closing recording: %v", err)
	}
	v.recorder = nil
	log.Printf("[Viewer] Recording stopped after %d frames", n)
}

// Layout keeps the logical screen at the configured window size. Draw
// scales the frame buffer to it.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.cfg.GetScreenWidth(), v.cfg.GetScreenHeight()
}

// Close flushes an active recording and stops the worker pool.
func (v *Viewer) Close() {
	v.stopRecording()
	v.threading.Shutdown()
}
