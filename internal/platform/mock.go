package platform

import (
	"context"
	"sync"
)

// Compile-time interface checks.
var _ Client = (*Mock)(nil)

// Mock is a configurable mock for the platform Client interface.
type Mock struct {
	mu sync.RWMutex

	appEngineID     *string
	computeEngineID *string

	// Call counters: method name -> calls
	calls map[string]int
}

// NewMock creates a mock where both lookups are absent.
func NewMock() *Mock {
	return &Mock{calls: make(map[string]int)}
}

// WithAppEngineID makes AppEngineID report id.
func (m *Mock) WithAppEngineID(id string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appEngineID = &id
	return m
}

// WithComputeEngineID makes ComputeEngineID report id.
func (m *Mock) WithComputeEngineID(id string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.computeEngineID = &id
	return m
}

// Calls returns how many times method was invoked.
func (m *Mock) Calls(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[method]
}

func (m *Mock) AppEngineID(_ context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["AppEngineID"]++
	if m.appEngineID == nil {
		return "", false
	}
	return *m.appEngineID, true
}

func (m *Mock) ComputeEngineID(_ context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["ComputeEngineID"]++
	if m.computeEngineID == nil {
		return "", false
	}
	return *m.computeEngineID, true
}
