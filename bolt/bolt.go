package bolt

import (
	"context"
	"sync"

	"github.com/asdine/storm/v3"
)

// DB represents the database. It is constructed once in main and handed to
// each store; Open is safe to call more than once.
type DB struct {
	path    string
	stormDB *storm.DB
	ctx     context.Context
	cancel  func()

	openOnce sync.Once
	openErr  error
}

// NewDB returns a new, unopened database handle
func NewDB(path string) *DB {
	db := &DB{
		path: path,
	}

	db.ctx, db.cancel = context.WithCancel(context.Background())

	return db
}

// Open opens the database connection. Concurrent callers racing during
// startup share a single initialization attempt.
func (db *DB) Open() error {
	db.openOnce.Do(func() {
		stormDB, err := storm.Open(db.path)
		if err != nil {
			db.openErr = err
			return
		}
		db.stormDB = stormDB
	})

	return db.openErr
}

// Close closes the database connection
func (db *DB) Close() error {
	db.cancel()

	if db.stormDB != nil {
		return db.stormDB.Close()
	}

	return nil
}
