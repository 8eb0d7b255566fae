package observability

import (
	"sync"
)

// Metrics provides basic in-memory counters for bot activity.
type Metrics struct {
	mu          sync.Mutex
	actionCount map[string]int64
	errorCount  map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		actionCount: make(map[string]int64),
		errorCount:  make(map[string]int64),
	}
}

// RecordAction increments the counter for a handled bot action.
func (m *Metrics) RecordAction(action string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actionCount[action]++
}

// RecordError increments the counter for a failed action, keyed by error code.
func (m *Metrics) RecordError(action, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[action+"|"+code]++
}

// Snapshot returns copies of the current counters for the status endpoint.
func (m *Metrics) Snapshot() (actions map[string]int64, errors map[string]int64) {
	actions = make(map[string]int64)
	errors = make(map[string]int64)
	if m == nil {
		return actions, errors
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.actionCount {
		actions[k] = v
	}
	for k, v := range m.errorCount {
		errors[k] = v
	}
	return actions, errors
}
