package monitoring

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"raymode7/internal/threading/core"
)

// DefaultMinFPS is the frame rate below which a low_fps alert is raised.
const DefaultMinFPS = 30.0

const (
	highMemoryBytes = 500 * 1024 * 1024
	queueBacklog    = 100
)

// PerformanceMonitor tracks frame timing, per-phase render timing and worker
// pool activity. Phase times are fed by the renderer through RecordPhase.
type PerformanceMonitor struct {
	frameCount     atomic.Int64
	totalFrameTime atomic.Int64 // nanoseconds
	lastFrameTime  atomic.Int64 // nanoseconds
	frameStart     atomic.Int64 // unix nanoseconds, 0 when no frame is open

	mu     sync.Mutex
	phases map[string]*phaseStats

	workerPool *core.WorkerPool
	minFPS     float64
	startTime  time.Time
}

type phaseStats struct {
	count int64
	total time.Duration
	last  time.Duration
	max   time.Duration
}

// PerformanceMetrics is a point-in-time snapshot of the monitor.
type PerformanceMetrics struct {
	FrameCount    int64
	AvgFrameTime  time.Duration
	LastFrameTime time.Duration
	FPS           float64
	Phases        map[string]PhaseMetrics

	ActiveWorkers int
	QueuedJobs    int64
	CompletedJobs int64

	MemoryUsage uint64
	Goroutines  int
	Uptime      time.Duration
}

// PhaseMetrics summarizes one render phase.
type PhaseMetrics struct {
	Count int64
	Avg   time.Duration
	Last  time.Duration
	Max   time.Duration
}

// PerformanceAlert describes a threshold the monitor has crossed.
type PerformanceAlert struct {
	Type     string
	Message  string
	Severity string
}

// NewPerformanceMonitor creates a monitor. pool may be nil when rendering
// runs on a single goroutine.
func NewPerformanceMonitor(pool *core.WorkerPool) *PerformanceMonitor {
	return &PerformanceMonitor{
		phases:     make(map[string]*phaseStats),
		workerPool: pool,
		minFPS:     DefaultMinFPS,
		startTime:  time.Now(),
	}
}

// SetMinFPS changes the low_fps alert threshold. Non-positive values restore the default.
func (pm *PerformanceMonitor) SetMinFPS(fps float64) {
	if fps <= 0 {
		fps = DefaultMinFPS
	}
	pm.minFPS = fps
}

// StartFrame marks the beginning of a frame
func (pm *PerformanceMonitor) StartFrame() {
	pm.frameStart.Store(time.Now().UnixNano())
}

// EndFrame marks the end of a frame. It is a no-op without a matching StartFrame.
func (pm *PerformanceMonitor) EndFrame() {
	start := pm.frameStart.Swap(0)
	if start == 0 {
		return
	}
	pm.RecordFrame(time.Duration(time.Now().UnixNano() - start))
}

// RecordFrame adds a frame of the given duration.
func (pm *PerformanceMonitor) RecordFrame(d time.Duration) {
	pm.lastFrameTime.Store(int64(d))
	pm.totalFrameTime.Add(int64(d))
	pm.frameCount.Add(1)
}

// RecordPhase adds one timing sample for a named render phase.
func (pm *PerformanceMonitor) RecordPhase(phase string, d time.Duration) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	s, ok := pm.phases[phase]
	if !ok {
		s = &phaseStats{}
		pm.phases[phase] = s
	}
	s.count++
	s.total += d
	s.last = d
	if d > s.max {
		s.max = d
	}
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() PerformanceMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	frames := pm.frameCount.Load()
	metrics := PerformanceMetrics{
		FrameCount:    frames,
		LastFrameTime: time.Duration(pm.lastFrameTime.Load()),
		Phases:        make(map[string]PhaseMetrics),
		MemoryUsage:   m.Alloc,
		Goroutines:    runtime.NumGoroutine(),
		Uptime:        time.Since(pm.startTime),
	}
	if frames > 0 {
		metrics.AvgFrameTime = time.Duration(pm.totalFrameTime.Load() / frames)
		if metrics.AvgFrameTime > 0 {
			metrics.FPS = float64(time.Second) / float64(metrics.AvgFrameTime)
		}
	}

	pm.mu.Lock()
	for name, s := range pm.phases {
		pmx := PhaseMetrics{Count: s.count, Last: s.last, Max: s.max}
		if s.count > 0 {
			pmx.Avg = s.total / time.Duration(s.count)
		}
		metrics.Phases[name] = pmx
	}
	pm.mu.Unlock()

	if pm.workerPool != nil {
		metrics.ActiveWorkers = pm.workerPool.GetNumWorkers()
		metrics.QueuedJobs = pm.workerPool.QueuedJobs()
		metrics.CompletedJobs = pm.workerPool.CompletedJobs()
	}
	return metrics
}

// GetDetailedStats returns a one-line human readable summary, suitable for
// periodic logging.
func (pm *PerformanceMonitor) GetDetailedStats() string {
	m := pm.GetCurrentMetrics()

	s := fmt.Sprintf("frames=%d fps=%.1f avg=%v last=%v", m.FrameCount, m.FPS, m.AvgFrameTime, m.LastFrameTime)

	names := make([]string, 0, len(m.Phases))
	for name := range m.Phases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s += fmt.Sprintf(" %s=%v", name, m.Phases[name].Avg)
	}

	if pm.workerPool != nil {
		s += fmt.Sprintf(" workers=%d queued=%d completed=%d", m.ActiveWorkers, m.QueuedJobs, m.CompletedJobs)
	}
	s += fmt.Sprintf(" mem=%.1fMB goroutines=%d", float64(m.MemoryUsage)/1024/1024, m.Goroutines)
	return s
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	m := pm.GetCurrentMetrics()
	var alerts []PerformanceAlert

	if m.FrameCount > 0 && m.FPS < pm.minFPS {
		alerts = append(alerts, PerformanceAlert{
			Type:     "low_fps",
			Message:  fmt.Sprintf("FPS dropped to %.1f (min %.0f)", m.FPS, pm.minFPS),
			Severity: "warning",
		})
	}

	if m.MemoryUsage > highMemoryBytes {
		alerts = append(alerts, PerformanceAlert{
			Type:     "high_memory",
			Message:  fmt.Sprintf("Memory usage: %.1f MB", float64(m.MemoryUsage)/1024/1024),
			Severity: "warning",
		})
	}

	if m.QueuedJobs > queueBacklog {
		alerts = append(alerts, PerformanceAlert{
			Type:     "queue_backlog",
			Message:  fmt.Sprintf("Worker queue backlog: %d jobs", m.QueuedJobs),
			Severity: "info",
		})
	}

	return alerts
}

// Reset clears frame and phase statistics.
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.totalFrameTime.Store(0)
	pm.lastFrameTime.Store(0)
	pm.frameStart.Store(0)

	pm.mu.Lock()
	pm.phases = make(map[string]*phaseStats)
	pm.mu.Unlock()
	pm.startTime = time.Now()
}

// ProfiledFunction runs fn and records its duration under phase.
func (pm *PerformanceMonitor) ProfiledFunction(phase string, fn func()) {
	start := time.Now()
	fn()
	pm.RecordPhase(phase, time.Since(start))
}
