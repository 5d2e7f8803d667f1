package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines     int
	Duration       time.Duration
	Episodes       int
	TerminalLeaves int  // Episodes whose selected node was already a finished game
	Skipped        bool // Only one legal move, no tree was built
}

type Collector interface {
	Start(goroutines int)
	Skip()
	AddEpisode()
	AddTerminalLeaf()
	Complete() SearchMetric
}

type collector struct {
	goroutines     int
	startTime      time.Time
	episodes       atomic.Int64
	terminalLeaves atomic.Int64
	skipped        atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
}

func (m *collector) Skip() {
	m.skipped.Store(true)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddTerminalLeaf() {
	m.terminalLeaves.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:     m.goroutines,
		Duration:       time.Since(m.startTime),
		Episodes:       int(m.episodes.Load()),
		TerminalLeaves: int(m.terminalLeaves.Load()),
		Skipped:        m.skipped.Load(),
	}
}

type noCollector struct{}

func NewNoCollector() Collector {
	return &noCollector{}
}

func (m *noCollector) Start(goroutines int)   {}
func (m *noCollector) Skip()                  {}
func (m *noCollector) AddEpisode()            {}
func (m *noCollector) AddTerminalLeaf()       {}
func (m *noCollector) Complete() SearchMetric { return SearchMetric{} }
