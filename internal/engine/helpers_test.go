package engine

import (
	"image/color"
	"math"
	"sync"
	"time"

	"raymode7/internal/world"
)

const (
	testWidth  = 320
	testHeight = 200
)

var (
	red    = color.RGBA{200, 0, 0, 255}
	green  = color.RGBA{0, 200, 0, 255}
	blue   = color.RGBA{0, 0, 200, 255}
	yellow = color.RGBA{220, 220, 0, 255}
)

// solidTexture samples to one colour everywhere.
type solidTexture color.RGBA

func (s solidTexture) Sample(u, v float64) color.RGBA {
	return color.RGBA(s)
}

// testAssets maps texture ids to flat colours; unknown ids return nil.
type testAssets map[world.TextureID]color.RGBA

func (a testAssets) Texture(id world.TextureID) Texture {
	c, ok := a[id]
	if !ok {
		return nil
	}
	return solidTexture(c)
}

func defaultAssets() testAssets {
	return testAssets{1: red, 10: green, 11: blue, 20: yellow}
}

// openRoom returns an n×n grid with no interior walls. Rays stop at the
// out-of-bounds boundary wall.
func openRoom(n int) *world.Grid {
	g := world.NewGrid(n, n)
	g.DefaultFloor = 10
	g.DefaultCeiling = 11
	return g
}

// flatOptions disables shading so colours can be compared exactly.
func flatOptions() Options {
	return Options{
		Width:       testWidth,
		Height:      testHeight,
		MaxDistance: 32,
		Shader:      Shader{Curve: CurveLinear, ViewDistance: 32, Min: 1, SideFactor: 1},
	}
}

func readyTables(t interface{ Fatalf(string, ...any) }, fov float64) *LookupTables {
	tables := NewLookupTables()
	if err := tables.Rebuild(testWidth, testHeight, fov); err != nil {
		t.Fatalf("rebuild tables: %v", err)
	}
	return tables
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// goExecutor runs every index on its own goroutine.
type goExecutor struct{}

func (goExecutor) ParallelFor(start, end int, fn func(int)) {
	var wg sync.WaitGroup
	for i := start; i < end; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fn(i)
		}(i)
	}
	wg.Wait()
}

type phaseCounter struct {
	mu     sync.Mutex
	phases map[string]int
}

func (p *phaseCounter) RecordPhase(phase string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.phases == nil {
		p.phases = make(map[string]int)
	}
	p.phases[phase]++
}
