package ledger

import "fmt"

// Backend selects which Store implementation Open returns.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

func (b Backend) Valid() bool {
	return b == BackendSQLite || b == BackendMemory
}

// Open creates the configured ledger store. dbPath is only used by the
// sqlite backend.
func Open(backend Backend, dbPath string) (Store, error) {
	switch backend {
	case BackendSQLite:
		if dbPath == "" {
			return nil, fmt.Errorf("sqlite backend requires a database path")
		}
		return NewSQLiteStore(dbPath)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported ledger backend: %s", backend)
	}
}
