package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"diarybook/src/core/domain"
	"diarybook/src/core/ports"
	"diarybook/src/infra/db"
)

const entryColumns = `id, user_id, title, content, entry_date, created_at, updated_at`

var _ ports.DiaryRepository = (*DiaryRepository)(nil)

// DiaryRepository implements ports.DiaryRepository on PostgreSQL.
// Every statement is scoped by user_id.
type DiaryRepository struct {
	db  db.DBTX
	log *slog.Logger
}

// NewDiaryRepository constructs a repository bound to the given handle.
func NewDiaryRepository(conn db.DBTX, log *slog.Logger) *DiaryRepository {
	return &DiaryRepository{
		db:  conn,
		log: log,
	}
}

func (r *DiaryRepository) Health(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.DiaryEntry, error) {
	var (
		e     domain.DiaryEntry
		title sql.NullString
	)
	if err := row.Scan(&e.ID, &e.OwnerID, &title, &e.Content, &e.EntryDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Title = title.String
	return &e, nil
}

// Create inserts the entry, then reads it back so storage defaults are visible.
func (r *DiaryRepository) Create(ctx context.Context, entry *domain.DiaryEntry) (*domain.DiaryEntry, error) {
	const q = `
		INSERT INTO diary_entries (user_id, title, content, entry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		entry.OwnerID, entry.Title, entry.Content, entry.EntryDate, entry.CreatedAt, entry.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			// The token names a user that no longer exists.
			return nil, fmt.Errorf("%w: unknown owner %d", domain.ErrInvalidToken, entry.OwnerID)
		}
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	return r.FindOwned(ctx, id, entry.OwnerID)
}

func (r *DiaryRepository) FindOwned(ctx context.Context, id, ownerID int64) (*domain.DiaryEntry, error) {
	const q = `
		SELECT ` + entryColumns + `
		FROM diary_entries
		WHERE id = $1 AND user_id = $2
	`
	e, err := scanEntry(r.db.QueryRowContext(ctx, q, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("diary entry")
		}
		return nil, fmt.Errorf("select entry: %w", err)
	}
	return e, nil
}

// Update writes the mutable fields and returns the row as stored.
// updated_at only moves forward.
func (r *DiaryRepository) Update(ctx context.Context, entry *domain.DiaryEntry, now time.Time) (*domain.DiaryEntry, error) {
	const q = `
		UPDATE diary_entries
		SET title = $3, content = $4, entry_date = $5, updated_at = GREATEST($6, updated_at)
		WHERE id = $1 AND user_id = $2
		RETURNING ` + entryColumns

	e, err := scanEntry(r.db.QueryRowContext(ctx, q,
		entry.ID, entry.OwnerID, entry.Title, entry.Content, entry.EntryDate, now,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("diary entry")
		}
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return e, nil
}

func (r *DiaryRepository) Delete(ctx context.Context, id, ownerID int64) error {
	const q = `
		DELETE FROM diary_entries
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.NewNotFoundError("diary entry")
	}
	return nil
}

func (r *DiaryRepository) Count(ctx context.Context, ownerID int64, filter domain.EntryFilter) (int64, error) {
	p := buildFilter(ownerID, filter)
	q := `SELECT COUNT(id) FROM diary_entries WHERE ` + p.where

	var total int64
	if err := r.db.QueryRowContext(ctx, q, p.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return total, nil
}

// List returns one window of matching entries, newest first, ties broken by id.
func (r *DiaryRepository) List(ctx context.Context, ownerID int64, filter domain.EntryFilter, limit, offset int) ([]domain.DiaryEntry, error) {
	p := buildFilter(ownerID, filter)
	q := `SELECT ` + entryColumns + ` FROM diary_entries WHERE ` + p.where +
		` ORDER BY created_at DESC, id DESC LIMIT ` + p.next(1) + ` OFFSET ` + p.next(2)
	args := append(append([]any{}, p.args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.DiaryEntry, 0, limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	r.log.DebugContext(ctx, "listed entries", "user_id", ownerID, "rows", len(entries), "offset", offset)
	return entries, nil
}
