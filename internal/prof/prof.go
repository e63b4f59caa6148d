package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Config names the profile outputs; empty paths disable a profile.
type Config struct {
	CPUPath string
	MemPath string
}

// Profiler owns the CPU profile file between Start and Stop.
type Profiler struct {
	cfg     Config
	cpuFile *os.File
	stopped bool
}

// Start enables the profiles requested by cfg.
func Start(cfg Config) (*Profiler, error) {
	p := &Profiler{cfg: cfg}
	if cfg.CPUPath == "" {
		return p, nil
	}
	f, err := os.Create(cfg.CPUPath)
	if err != nil {
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	p.cpuFile = f
	return p, nil
}

// Stop finishes the CPU profile and writes the heap profile. Repeated
// calls do nothing.
func (p *Profiler) Stop() error {
	if p == nil || p.stopped {
		return nil
	}
	p.stopped = true

	var errs []error
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := p.cpuFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cpu profile: %w", err))
		}
		p.cpuFile = nil
	}
	if p.cfg.MemPath != "" {
		if err := writeHeap(p.cfg.MemPath); err != nil {
			errs = append(errs, fmt.Errorf("heap profile: %w", err))
		}
	}
	return errors.Join(errs...)
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
