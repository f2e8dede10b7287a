package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Profiler accumulates timings of named sections.
type Profiler struct {
	mu           sync.Mutex
	clock        clockwork.Clock
	measurements map[string]*Measurement
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name  string
	Count int
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Average returns the mean time per call.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// NewProfiler creates a profiler reading time from clock. A nil clock uses
// the real one.
func NewProfiler(clock clockwork.Clock) *Profiler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Profiler{
		clock:        clock,
		measurements: make(map[string]*Measurement),
	}
}

// Start begins timing a named section; call the returned func to end it.
func (p *Profiler) Start(name string) func() {
	start := p.clock.Now()
	return func() {
		p.record(name, p.clock.Since(start))
	}
}

func (p *Profiler) record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		m = &Measurement{Name: name, Min: elapsed, Max: elapsed}
		p.measurements[name] = m
	}
	m.Count++
	m.Total += elapsed
	m.Min = min(m.Min, elapsed)
	m.Max = max(m.Max, elapsed)
}

// Measurement returns a copy of the statistics for name.
func (p *Profiler) Measurement(name string) (Measurement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.measurements[name]
	if !ok {
		return Measurement{}, false
	}
	return *m, true
}

// Report formats every measurement, sorted by name.
func (p *Profiler) Report() string {
	p.mu.Lock()
	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	p.mu.Unlock()

	if len(names) == 0 {
		return "no measurements recorded\n"
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		m, _ := p.Measurement(name)
		fmt.Fprintf(&sb, "%-10s count=%d total=%v avg=%v min=%v max=%v\n",
			name, m.Count, m.Total, m.Average(), m.Min, m.Max)
	}
	return sb.String()
}
