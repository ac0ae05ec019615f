// Package database manages the SQLite database backing the durable
// credential cache medium.
//
// It wraps database/sql with connection setup (WAL mode, busy timeout,
// single-writer pool), embedded schema migrations, and health checks.
// Higher layers never touch SQL directly; they go through the storage
// package's Medium abstraction.
//
// # Lifecycle
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.Storage.Path})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
