package engine

import (
	"image/color"
	"time"

	"raymode7/internal/world"
)

// Texture samples a 2D image with wrapped texture coordinates in [0, 1).
type Texture interface {
	Sample(u, v float64) color.RGBA
}

// TextureSource is the asset capability injected into each render. It returns
// nil for ids it does not know; the renderer then draws the missing-texture
// placeholder.
type TextureSource interface {
	Texture(id world.TextureID) Texture
}

// Executor runs fn for every index in [start, end), possibly in parallel, and
// returns when all calls have finished.
type Executor interface {
	ParallelFor(start, end int, fn func(int))
}

// PhaseRecorder receives the duration of each render phase.
type PhaseRecorder interface {
	RecordPhase(phase string, d time.Duration)
}

// Render phase names reported to a PhaseRecorder.
const (
	PhaseRaycast   = "raycast"
	PhasePlanes    = "planes"
	PhaseComposite = "composite"
	PhaseSprites   = "sprites"
)

func runFor(exec Executor, n int, fn func(int)) {
	if exec == nil {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	exec.ParallelFor(0, n, fn)
}
