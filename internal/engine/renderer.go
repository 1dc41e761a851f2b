package engine

import (
	"image/color"
	"math"
	"sort"
	"sync"
	"time"

	"raymode7/internal/mathutil"
	"raymode7/internal/world"
)

// Options configures a Renderer. Zero values pick defaults.
type Options struct {
	Width       int
	Height      int
	MaxDistance float64
	Shader      Shader

	SkyColor     color.RGBA // horizon rows without a wall
	FloorColor   color.RGBA // floors with no texture
	CeilingColor color.RGBA // ceilings with no texture
	FogColor     color.RGBA // planes beyond MaxDistance
	MissingColor color.RGBA // textures the asset source does not know

	Executor Executor
	Recorder PhaseRecorder
}

// Default colours.
var (
	DefaultSkyColor     = color.RGBA{70, 90, 130, 255}
	DefaultFloorColor   = color.RGBA{60, 60, 60, 255}
	DefaultCeilingColor = color.RGBA{40, 40, 48, 255}
	DefaultFogColor     = color.RGBA{20, 20, 24, 255}
	DefaultMissingColor = color.RGBA{128, 0, 128, 255}
)

// DefaultMaxDistance is the view distance used when Options leaves it unset.
const DefaultMaxDistance = 32.0

// Stats describes the last rendered frame.
type Stats struct {
	Frame          uint64
	Width, Height  int
	WallColumns    int
	SpritesDrawn   int
	TablesRebuilt  bool
	CameraClamped  bool
	CameraX        float64
	CameraY        float64
	MissingTexture []world.TextureID
	Duration       time.Duration
}

// Renderer composites walls, floors, ceilings and sprites into a frame buffer.
// Renders are serialized; the returned frame is valid until the next render.
type Renderer struct {
	mu sync.Mutex

	opts   Options
	tables *LookupTables
	caster *RayCaster
	planes *Mode7Renderer

	zbuf    ZBuffer
	frame   *FrameBuffer
	hits    []RayHit
	samples []PlaneSample
	sorted  []projectedSprite

	textures map[world.TextureID]Texture
	missing  map[world.TextureID]bool

	frameCount uint64
	stats      Stats
}

// NewRenderer creates a renderer. Width and height may be zero until Resize.
func NewRenderer(opts Options) *Renderer {
	if opts.MaxDistance <= 0 {
		opts.MaxDistance = DefaultMaxDistance
	}
	def := DefaultShader(opts.MaxDistance)
	if opts.Shader == (Shader{}) {
		opts.Shader = def
	}
	if opts.Shader.Curve == "" {
		opts.Shader.Curve = def.Curve
	}
	if opts.Shader.ViewDistance <= 0 {
		opts.Shader.ViewDistance = def.ViewDistance
	}
	if opts.Shader.SideFactor <= 0 {
		opts.Shader.SideFactor = def.SideFactor
	}
	setDefault(&opts.SkyColor, DefaultSkyColor)
	setDefault(&opts.FloorColor, DefaultFloorColor)
	setDefault(&opts.CeilingColor, DefaultCeilingColor)
	setDefault(&opts.FogColor, DefaultFogColor)
	setDefault(&opts.MissingColor, DefaultMissingColor)

	caster := NewRayCaster(opts.MaxDistance)
	caster.Executor = opts.Executor
	planes := NewMode7Renderer(opts.MaxDistance)
	planes.Executor = opts.Executor

	r := &Renderer{
		opts:     opts,
		tables:   NewLookupTables(),
		caster:   caster,
		planes:   planes,
		textures: make(map[world.TextureID]Texture),
		missing:  make(map[world.TextureID]bool),
	}
	r.allocate()
	return r
}

func setDefault(c *color.RGBA, def color.RGBA) {
	if *c == (color.RGBA{}) {
		*c = def
	}
}

func (r *Renderer) allocate() {
	w, h := r.opts.Width, r.opts.Height
	if w <= 0 || h <= 0 {
		return
	}
	r.zbuf = NewZBuffer(w)
	r.frame = NewFrameBuffer(w, h)
	r.hits = make([]RayHit, w)
	r.samples = make([]PlaneSample, w*h)
}

// Resize changes the output resolution. The tables are rebuilt on the next frame.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return &ConfigurationError{Field: "resolution", Reason: "width and height must be positive"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if width == r.opts.Width && height == r.opts.Height {
		return nil
	}
	r.opts.Width, r.opts.Height = width, height
	r.allocate()
	if r.tables.Ready() {
		return r.tables.Rebuild(width, height, r.tables.FOV())
	}
	return nil
}

// Size returns the output resolution.
func (r *Renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts.Width, r.opts.Height
}

// Tables exposes the lookup tables built for the last frame.
func (r *Renderer) Tables() *LookupTables {
	return r.tables
}

// ZBuffer returns the wall depths of the last frame.
func (r *Renderer) ZBuffer() ZBuffer {
	return r.zbuf
}

// Stats returns statistics for the last frame.
func (r *Renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.stats
	s.MissingTexture = append([]world.TextureID(nil), r.stats.MissingTexture...)
	return s
}

// RenderFrame draws one frame. assets may be nil, in which case every
// textured surface shows the missing-texture colour.
func (r *Renderer) RenderFrame(cam Camera, grid *world.Grid, assets TextureSource, sprites ...Sprite) (*FrameBuffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	w, h := r.opts.Width, r.opts.Height
	if w <= 0 || h <= 0 {
		return nil, notInitialized("resolution")
	}
	if grid == nil {
		return nil, &ConfigurationError{Field: "grid", Reason: "nothing to render"}
	}
	if cam.FOV <= 0 {
		cam.FOV = DefaultFOV
	}

	stats := Stats{Width: w, Height: h}
	if !r.tables.Matches(w, h, cam.FOV) {
		if err := r.tables.Rebuild(w, h, cam.FOV); err != nil {
			return nil, err
		}
		stats.TablesRebuilt = true
	}

	cam.X, cam.Y, stats.CameraClamped = grid.ClampPosition(cam.X, cam.Y)
	stats.CameraX, stats.CameraY = cam.X, cam.Y
	cam.Pitch = mathutil.IntClamp(cam.Pitch, -h, h)

	r.zbuf.Reset()

	t := time.Now()
	hits, err := r.caster.CastRays(cam, grid, r.tables, r.hits)
	if err != nil {
		return nil, err
	}
	r.hits = hits
	r.record(PhaseRaycast, t)

	t = time.Now()
	samples, err := r.planes.RenderPlanes(cam, grid, r.tables, r.samples)
	if err != nil {
		return nil, err
	}
	r.samples = samples
	r.record(PhasePlanes, t)

	t = time.Now()
	r.resolveTextures(assets, sprites)
	r.composite(cam)
	r.record(PhaseComposite, t)

	if len(sprites) > 0 {
		t = time.Now()
		stats.SpritesDrawn = r.drawSprites(cam, sprites)
		r.record(PhaseSprites, t)
	}

	for _, hit := range r.hits {
		if hit.Hit {
			stats.WallColumns++
		}
	}
	for id := range r.missing {
		stats.MissingTexture = append(stats.MissingTexture, id)
	}
	sort.Slice(stats.MissingTexture, func(i, j int) bool { return stats.MissingTexture[i] < stats.MissingTexture[j] })
	r.frameCount++
	stats.Frame = r.frameCount
	stats.Duration = time.Since(start)
	r.stats = stats
	return r.frame, nil
}

func (r *Renderer) record(phase string, since time.Time) {
	if r.opts.Recorder != nil {
		r.opts.Recorder.RecordPhase(phase, time.Since(since))
	}
}

// resolveTextures looks up every texture id the frame needs once, so the
// parallel composite only reads a plain map.
func (r *Renderer) resolveTextures(assets TextureSource, sprites []Sprite) {
	clear(r.textures)
	clear(r.missing)
	last := world.TextureID(math.MinInt32)
	want := func(id world.TextureID) {
		if id == last || id == world.TextureNone {
			return
		}
		last = id
		if _, seen := r.textures[id]; seen {
			return
		}
		var tex Texture
		if assets != nil {
			tex = assets.Texture(id)
		}
		r.textures[id] = tex
		if tex == nil {
			r.missing[id] = true
		}
	}
	for _, hit := range r.hits {
		if hit.Hit {
			want(hit.Texture)
		}
	}
	for _, s := range r.samples {
		if s.Kind != PlaneNone {
			want(s.Texture)
		}
	}
	for _, sp := range sprites {
		want(sp.Texture)
	}
}

func (r *Renderer) sample(id world.TextureID, u, v float64) color.RGBA {
	tex := r.textures[id]
	if tex == nil {
		return r.opts.MissingColor
	}
	return tex.Sample(u, v)
}

func (r *Renderer) composite(cam Camera) {
	w, h := r.opts.Width, r.opts.Height
	horizon := Horizon(cam, h)
	eye := cam.EyeHeight()
	focal := r.tables.Focal()
	shader := r.opts.Shader
	pix := r.frame.Pix

	runFor(r.opts.Executor, w, func(c int) {
		hit := r.hits[c]
		if hit.Hit {
			r.zbuf.TestAndSet(c, hit.PerpDistance)
		}
		depth := r.zbuf.At(c)

		for row := 0; row < h; row++ {
			s := r.samples[row*w+c]
			var px color.RGBA
			switch {
			case hit.Hit && s.Distance >= depth:
				// Height on the wall measured down from its top edge.
				v := 1 - eye + float64(row-horizon)*hit.PerpDistance/focal
				v = mathutil.Clamp(v, 0, math.Nextafter(1, 0))
				px = shader.Shade(r.sample(hit.Texture, hit.U, v), hit.PerpDistance, hit.Face.YSide())
			case s.Kind == PlaneNone:
				px = r.opts.SkyColor
			case s.Distance > r.caster.MaxDistance:
				px = r.opts.FogColor
			case s.Texture == world.TextureNone:
				flat := r.opts.FloorColor
				if s.Kind == PlaneCeiling {
					flat = r.opts.CeilingColor
				}
				px = shader.Shade(flat, s.Distance, false)
			default:
				px = shader.Shade(r.sample(s.Texture, s.U, s.V), s.Distance, false)
			}
			i := (row*w + c) * 4
			pix[i] = px.R
			pix[i+1] = px.G
			pix[i+2] = px.B
			pix[i+3] = 255
		}
	})
}
