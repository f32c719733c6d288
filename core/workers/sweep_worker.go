// ABOUTME: Sweep worker periodically evicts expired share entries in the background
// ABOUTME: Layers on top of lazy eviction without changing the read path

package workers

import (
	"context"
	"sync"
	"time"

	"shoplist-api/core/interfaces"
)

// Sweeper removes expired entries and reports how many were removed
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// SweepConfig holds configuration for the sweep worker
type SweepConfig struct {
	// Interval between sweeps
	Interval time.Duration

	// Timeout bounds a single sweep
	Timeout time.Duration
}

// DefaultSweepConfig returns the default sweep configuration
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Interval: time.Hour,
		Timeout:  time.Minute,
	}
}

// SweepWorker runs a Sweeper on a fixed interval
type SweepWorker struct {
	sweeper  Sweeper
	logger   interfaces.Logger
	interval time.Duration
	timeout  time.Duration

	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
}

// NewSweepWorker creates a new sweep worker
func NewSweepWorker(sweeper Sweeper, config SweepConfig, logger interfaces.Logger) *SweepWorker {
	if config.Interval <= 0 {
		config.Interval = DefaultSweepConfig().Interval
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultSweepConfig().Timeout
	}

	return &SweepWorker{
		sweeper:  sweeper,
		logger:   logger,
		interval: config.Interval,
		timeout:  config.Timeout,
	}
}

// Start launches the sweep loop. Calling Start on a running worker does nothing.
func (sw *SweepWorker) Start() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.running {
		return nil
	}
	if sw.sweeper == nil {
		return ErrNoSweeper
	}

	ctx, cancel := context.WithCancel(context.Background())
	sw.cancel = cancel

	sw.wg.Add(1)
	go sw.run(ctx)

	sw.running = true
	return nil
}

// Stop cancels the loop and waits for an in-flight sweep to return
func (sw *SweepWorker) Stop() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if !sw.running {
		return nil
	}

	sw.cancel()
	sw.wg.Wait()

	sw.running = false
	return nil
}

// Running reports whether the loop is active
func (sw *SweepWorker) Running() bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.running
}

// RunOnce performs a single sweep bounded by the configured timeout
func (sw *SweepWorker) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, sw.timeout)
	defer cancel()

	start := time.Now()
	evicted, err := sw.sweeper.Sweep(ctx)
	if err != nil {
		sw.log().Error("Share sweep failed", map[string]interface{}{
			"error":   err.Error(),
			"evicted": evicted,
		})
		return evicted, err
	}

	sw.log().Debug("Share sweep finished", map[string]interface{}{
		"evicted":     evicted,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return evicted, nil
}

// run is the main loop
func (sw *SweepWorker) run(ctx context.Context) {
	defer sw.wg.Done()

	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = sw.RunOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (sw *SweepWorker) log() interfaces.Logger {
	if sw.logger == nil {
		return discardLogger{}
	}
	return sw.logger
}

type discardLogger struct{}

func (discardLogger) Debug(string, map[string]interface{}) {}
func (discardLogger) Info(string, map[string]interface{})  {}
func (discardLogger) Warn(string, map[string]interface{})  {}
func (discardLogger) Error(string, map[string]interface{}) {}

// Error definitions
var (
	ErrNoSweeper = &WorkerError{Message: "sweep worker has no sweeper"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
