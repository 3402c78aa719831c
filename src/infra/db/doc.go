// Package db provides database connection and schema management.
//
// This package is responsible for:
//   - PostgreSQL connection pool initialization (pgxpool)
//   - A database/sql view of the same pool for repositories and goose
//   - Connection health checks
//   - Embedded schema migrations
//
// Example usage:
//
//	pg, err := db.New(ctx, cfg.Database, log)
//	if err != nil {
//	    return err
//	}
//	defer pg.Close()
//
//	if cfg.Database.Migrate {
//	    if err := db.Migrate(ctx, pg.SQL(), log); err != nil {
//	        return err
//	    }
//	}
package db
