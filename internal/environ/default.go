package environ

import "sync"

var (
	defaultEnv = New()
	defaultMu  sync.RWMutex
)

// Default returns the process-wide Environment.
func Default() *Environment {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultEnv
}

// SetDefault replaces the process-wide Environment. A nil env installs a
// fresh one with both slots absent.
func SetDefault(env *Environment) {
	if env == nil {
		env = New()
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultEnv = env
}

// DatasetID returns the dataset ID of the process-wide Environment.
func DatasetID() (string, bool) { return Default().DatasetID() }

// SetDatasetID sets the dataset ID of the process-wide Environment.
func SetDatasetID(id string) { Default().SetDatasetID(id) }

// CurrentConnection returns the connection of the process-wide Environment.
func CurrentConnection() (Connection, bool) { return Default().Connection() }

// SetConnection sets the connection of the process-wide Environment.
func SetConnection(conn Connection) { Default().SetConnection(conn) }
