package threading

import (
	"log"

	"raymode7/internal/config"
	"raymode7/internal/engine"
	"raymode7/internal/threading/core"
	"raymode7/internal/threading/monitoring"
	"raymode7/internal/threading/rendering"
)

// ThreadingComponents holds the parallel executor and performance monitor
// used by the viewer and the snapshot tool.
type ThreadingComponents struct {
	WorkerPool         *core.WorkerPool
	ParallelRenderer   *rendering.ParallelRenderer
	PerformanceMonitor *monitoring.PerformanceMonitor
}

// NewThreadingComponents creates the threading components described by cfg.
// With threading disabled only the monitor is created and rendering stays on
// the calling goroutine.
func NewThreadingComponents(cfg *config.Config) *ThreadingComponents {
	tc := &ThreadingComponents{}

	if cfg.Threading.Enabled {
		tc.WorkerPool = core.NewWorkerPool(cfg.Threading.Workers)
		tc.WorkerPool.Start()
		tc.ParallelRenderer = rendering.NewParallelRendererWithPool(tc.WorkerPool)
		log.Printf("[Threading] Worker pool started with %d workers", tc.WorkerPool.GetNumWorkers())
	}

	tc.PerformanceMonitor = monitoring.NewPerformanceMonitor(tc.WorkerPool)
	tc.PerformanceMonitor.SetMinFPS(cfg.Monitoring.MinFPS)
	return tc
}

// Executor returns the executor to hand to the renderer, or nil when
// threading is disabled.
func (tc *ThreadingComponents) Executor() engine.Executor {
	if tc.ParallelRenderer == nil {
		return nil
	}
	return tc.ParallelRenderer
}

// Recorder returns the phase recorder to hand to the renderer.
func (tc *ThreadingComponents) Recorder() engine.PhaseRecorder {
	if tc.PerformanceMonitor == nil {
		return nil
	}
	return tc.PerformanceMonitor
}

// Shutdown stops the worker pool.
func (tc *ThreadingComponents) Shutdown() {
	if tc.WorkerPool != nil {
		tc.WorkerPool.Stop()
	}
}

// GetPerformanceMetrics returns current performance metrics
func (tc *ThreadingComponents) GetPerformanceMetrics() monitoring.PerformanceMetrics {
	return tc.PerformanceMonitor.GetCurrentMetrics()
}

// GetDetailedStats returns the monitor's summary line
func (tc *ThreadingComponents) GetDetailedStats() string {
	return tc.PerformanceMonitor.GetDetailedStats()
}

// CheckPerformanceAlerts returns any performance alerts
func (tc *ThreadingComponents) CheckPerformanceAlerts() []monitoring.PerformanceAlert {
	return tc.PerformanceMonitor.CheckPerformanceAlerts()
}
