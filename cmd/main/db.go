package main

import (
	"fmt"

	"github.com/CTAG07/markovtext/pkg/corpus"
)

// openStore opens the corpus library at the configured path, creating the
// schema if needed. The returned func closes both the store and the database.
func (a *app) openStore() (*corpus.Store, func(), error) {
	path := a.config.Corpus.DatabasePath
	db, err := initDB(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open corpus database %s: %w", path, err)
	}
	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to set up corpus schema: %w", err)
	}
	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare corpus store: %w", err)
	}
	store.SetLogger(a.logger)

	return store, func() {
		store.Close()
		if err := db.Close(); err != nil {
			a.logger.Error("Failed to close database", "error", err)
		}
	}, nil
}
