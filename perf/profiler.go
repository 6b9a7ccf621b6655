package perf

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Profiler captures a CPU profile and an execution trace in the background
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	profilesDir     string
	captureDuration time.Duration
	wg              sync.WaitGroup
	log             logrus.FieldLogger
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, duration time.Duration, log logrus.FieldLogger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profiles dir: %w", err)
	}
	return &Profiler{
		captureCooldown: 10 * time.Second, // Don't capture more than once every 10 seconds
		profilesDir:     dir,
		captureDuration: duration,
		log:             log,
	}, nil
}

// Capture starts a capture tagged with reason and returns immediately
func (p *Profiler) Capture(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}
	if !p.lastCaptureTime.IsZero() && time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", time.Since(p.lastCaptureTime))
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()

	timestamp := time.Now().Format("20060102-150405")
	baseName := fmt.Sprintf("fps-drop-%s-%s", timestamp, reason)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		// CPU profile and trace in parallel
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.log.WithError(err).Error("cpu profile capture failed")
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.log.WithError(err).Error("trace capture failed")
			}
		}()
		wg.Wait()

		p.report(baseName)
	}()

	return nil
}

// Wait blocks until running captures are written
func (p *Profiler) Wait() {
	p.wg.Wait()
}

// IsProfiling returns whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	p.log.WithField("path", profilePath).Info("cpu profile saved")
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	p.log.WithField("path", tracePath).Info("trace saved")
	return nil
}

// report logs where the capture went and the memory stats at the end of it
func (p *Profiler) report(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	info, err := os.Stat(profilePath)
	if err != nil {
		p.log.WithError(err).Warn("could not inspect profile")
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.log.WithFields(logrus.Fields{
		"profile":      profilePath,
		"size_kb":      float64(info.Size()) / 1024,
		"alloc_kb":     m.Alloc / 1024,
		"sys_kb":       m.Sys / 1024,
		"num_gc":       m.NumGC,
		"heap_objects": m.HeapObjects,
	}).Infof("view with: go tool pprof -http=:8080 %s", profilePath)
}
