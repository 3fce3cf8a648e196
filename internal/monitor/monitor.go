package monitor

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// #region sampler

// Sample is a read-only snapshot of host resource usage.
type Sample struct {
	CPUPercent float64
	MemPercent float64
}

// Sampler provides resource snapshots for admission control. Sample is a
// synchronous, bounded-latency call with no side effects on core state.
type Sampler interface {
	Sample() (Sample, error)
}

// #endregion sampler

// #region static

// Static is a fixed-value sampler for tests and replay.
type Static struct {
	CPU float64
	Mem float64
}

// Sample returns the configured values.
func (s *Static) Sample() (Sample, error) {
	return Sample{CPUPercent: s.CPU, MemPercent: s.Mem}, nil
}

// Set updates the values returned by subsequent samples.
func (s *Static) Set(cpu, mem float64) {
	s.CPU = cpu
	s.Mem = mem
}

// #endregion static

// #region proc-sampler

// ProcSampler reads CPU and memory usage from the /proc filesystem. CPU is
// the busy fraction between consecutive samples; the first call reports the
// since-boot average.
type ProcSampler struct {
	statPath    string
	meminfoPath string

	lastTotal uint64
	lastIdle  uint64
}

// NewProcSampler creates a sampler backed by /proc/stat and /proc/meminfo.
func NewProcSampler() *ProcSampler {
	return &ProcSampler{
		statPath:    "/proc/stat",
		meminfoPath: "/proc/meminfo",
	}
}

// Sample reads both proc files and returns current usage percentages.
func (p *ProcSampler) Sample() (Sample, error) {
	cpu, err := p.cpuPercent()
	if err != nil {
		return Sample{}, err
	}
	mem, err := p.memPercent()
	if err != nil {
		return Sample{}, err
	}
	return Sample{CPUPercent: cpu, MemPercent: mem}, nil
}

func (p *ProcSampler) cpuPercent() (float64, error) {
	f, err := os.Open(p.statPath)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", p.statPath, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return 0, fmt.Errorf("read %s: empty", p.statPath)
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) < 5 || fields[0] != "cpu" {
		return 0, fmt.Errorf("parse %s: unexpected first line", p.statPath)
	}

	var total, idle uint64
	for i, field := range fields[1:] {
		v, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %s field %d: %w", p.statPath, i+1, err)
		}
		total += v
		// idle + iowait
		if i == 3 || i == 4 {
			idle += v
		}
	}

	dTotal := total - p.lastTotal
	dIdle := idle - p.lastIdle
	p.lastTotal = total
	p.lastIdle = idle

	if dTotal == 0 {
		return 0, nil
	}
	return 100.0 * float64(dTotal-dIdle) / float64(dTotal), nil
}

func (p *ProcSampler) memPercent() (float64, error) {
	f, err := os.Open(p.meminfoPath)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", p.meminfoPath, err)
	}
	defer f.Close()

	var total, available uint64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			total = v
		case "MemAvailable:":
			available = v
		}
		if total > 0 && available > 0 {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read %s: %w", p.meminfoPath, err)
	}
	if total == 0 {
		return 0, fmt.Errorf("parse %s: MemTotal missing", p.meminfoPath)
	}
	return 100.0 * float64(total-available) / float64(total), nil
}

// #endregion proc-sampler
