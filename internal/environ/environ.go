// Package environ holds the implied dataset ID and connection for Datastore
// code. An Environment is created once during startup, filled in by
// initialization code and passed down (directly or via context) to code that
// needs ambient identity.
package environ

import (
	"context"
	"sync"
)

// Connection is an opaque handle to a Datastore backend.
type Connection interface {
	Close() error
}

// Environment holds the implied dataset ID and connection.
// Both slots are absent until explicitly set.
type Environment struct {
	mu         sync.RWMutex
	datasetID  string
	hasDataset bool
	conn       Connection
}

// New returns an Environment with both slots absent.
func New() *Environment {
	return &Environment{}
}

// DatasetID returns the current dataset ID, or false when absent.
func (e *Environment) DatasetID() (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.datasetID, e.hasDataset
}

// SetDatasetID sets the dataset ID. The last assignment wins.
func (e *Environment) SetDatasetID(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.datasetID = id
	e.hasDataset = true
}

// Connection returns the current connection, or false when absent.
func (e *Environment) Connection() (Connection, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.conn, e.conn != nil
}

// SetConnection sets the connection. A nil conn makes the slot absent again.
func (e *Environment) SetConnection(conn Connection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.conn = conn
}

// Close closes the current connection, if any, and clears the slot.
func (e *Environment) Close() error {
	e.mu.Lock()
	conn := e.conn
	e.conn = nil
	e.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying env.
func NewContext(ctx context.Context, env *Environment) context.Context {
	return context.WithValue(ctx, ctxKey{}, env)
}

// FromContext returns the Environment stored in ctx, falling back to Default.
func FromContext(ctx context.Context) *Environment {
	if env, ok := ctx.Value(ctxKey{}).(*Environment); ok && env != nil {
		return env
	}
	return Default()
}
