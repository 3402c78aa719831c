// Package repo contains PostgreSQL implementations of the repository ports.
//
// Repositories receive a db.DBTX via constructor injection, so the same code runs
// against the pgx-backed *sql.DB in production and a go-sqlmock handle in tests.
// Every statement that touches diary_entries is scoped by user_id.
package repo
