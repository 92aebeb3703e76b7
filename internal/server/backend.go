package server

import (
	"fmt"
	"log/slog"

	"itemstore/internal/shared"
)

// OpenStore builds the Store named by backend. On success the close func
// is non-nil and releases backend resources.
func OpenStore(backend string, logger *slog.Logger) (Store, func() error, error) {
	switch backend {
	case shared.BackendMemory, "":
		return NewMemStore(), func() error { return nil }, nil
	case shared.BackendSQLite:
		db, err := OpenMemoryDB()
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := RunMigrations(db, logger); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrations failed: %w", err)
		}
		return NewSQLiteStore(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", backend)
	}
}

