package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"diarybook/src/core/domain"
	"diarybook/src/core/ports"
)

const entryNotFoundMessage = "Diary entry not found"

// DiaryService implements the diary operations for a verified identity.
// Every method binds the caller's identity to the repository call it makes.
type DiaryService struct {
	repo ports.DiaryRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewDiaryService creates a new DiaryService.
func NewDiaryService(repo ports.DiaryRepository, log *slog.Logger) *DiaryService {
	return &DiaryService{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source. Intended for tests.
func (s *DiaryService) WithClock(now func() time.Time) *DiaryService {
	s.now = now
	return s
}

// CreateEntryInput is the payload for Create. A blank Title is replaced by the generated default.
type CreateEntryInput struct {
	Title     string
	Content   string
	EntryDate *time.Time
}

// UpdateEntryInput is the payload for Update. A blank Title keeps the stored one.
type UpdateEntryInput struct {
	Title     string
	Content   string
	EntryDate *time.Time
}

// ListEntriesInput selects one page of the caller's entries.
type ListEntriesInput struct {
	Filter domain.EntryFilter
	Page   int
}

// Create stores a new entry owned by id.
func (s *DiaryService) Create(ctx context.Context, id domain.Identity, in CreateEntryInput) (*domain.DiaryEntry, error) {
	if id.IsZero() {
		return nil, domain.ErrUnauthenticated
	}

	now := s.now()
	title := domain.TrimText(in.Title)
	if title == "" {
		title = domain.DefaultTitle(now)
	}
	entryDate := domain.StartOfDay(now)
	if in.EntryDate != nil {
		entryDate = domain.StartOfDay(*in.EntryDate)
	}

	entry, err := s.repo.Create(ctx, &domain.DiaryEntry{
		OwnerID:   id.UserID,
		Title:     title,
		Content:   domain.TrimText(in.Content),
		EntryDate: entryDate,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, s.fail(ctx, "create entry", id, err)
	}

	s.log.InfoContext(ctx, "diary entry created", "user_id", id.UserID, "entry_id", entry.ID)
	return entry, nil
}

// Get returns one entry owned by id.
func (s *DiaryService) Get(ctx context.Context, id domain.Identity, entryID int64) (*domain.DiaryEntry, error) {
	return s.fetchOwned(ctx, id, entryID)
}

// Update overwrites content (and title, when supplied) of an entry owned by id.
func (s *DiaryService) Update(ctx context.Context, id domain.Identity, entryID int64, in UpdateEntryInput) (*domain.DiaryEntry, error) {
	existing, err := s.fetchOwned(ctx, id, entryID)
	if err != nil {
		return nil, err
	}

	next := *existing
	if title := domain.TrimText(in.Title); title != "" {
		next.Title = title
	}
	next.Content = domain.TrimText(in.Content)
	if in.EntryDate != nil {
		next.EntryDate = domain.StartOfDay(*in.EntryDate)
	}

	updated, err := s.repo.Update(ctx, &next, s.now())
	if err != nil {
		return nil, s.fail(ctx, "update entry", id, err)
	}

	s.log.InfoContext(ctx, "diary entry updated", "user_id", id.UserID, "entry_id", entryID)
	return updated, nil
}

// Delete permanently removes an entry owned by id.
func (s *DiaryService) Delete(ctx context.Context, id domain.Identity, entryID int64) error {
	if _, err := s.fetchOwned(ctx, id, entryID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, entryID, id.UserID); err != nil {
		return s.fail(ctx, "delete entry", id, err)
	}

	s.log.InfoContext(ctx, "diary entry deleted", "user_id", id.UserID, "entry_id", entryID)
	return nil
}

// List returns one page of the caller's entries, newest first.
// A filter with Clear set, or with no criteria, lists everything the caller owns.
func (s *DiaryService) List(ctx context.Context, id domain.Identity, in ListEntriesInput) (*domain.EntryPage, error) {
	if id.IsZero() {
		return nil, domain.ErrUnauthenticated
	}

	page := domain.NormalizePage(in.Page)
	filter := in.Filter
	if filter.IsEmpty() {
		filter = domain.EntryFilter{}
	}

	total, err := s.repo.Count(ctx, id.UserID, filter)
	if err != nil {
		return nil, s.fail(ctx, "count entries", id, err)
	}

	pagination := domain.NewPagination(page, total)
	entries := []domain.DiaryEntry{}
	// Pages past the last are answered from the count alone.
	if page <= pagination.TotalPages {
		entries, err = s.repo.List(ctx, id.UserID, filter, domain.PageSize, domain.Offset(page))
		if err != nil {
			return nil, s.fail(ctx, "list entries", id, err)
		}
	}

	return &domain.EntryPage{
		Entries:    entries,
		Pagination: pagination,
	}, nil
}

// fetchOwned is the ownership guard. Missing and foreign rows are indistinguishable.
func (s *DiaryService) fetchOwned(ctx context.Context, id domain.Identity, entryID int64) (*domain.DiaryEntry, error) {
	if id.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	if entryID <= 0 {
		return nil, domain.NewNotFoundError(entryNotFoundMessage)
	}

	entry, err := s.repo.FindOwned(ctx, entryID, id.UserID)
	if err != nil {
		return nil, s.fail(ctx, "fetch entry", id, err)
	}
	if entry.OwnerID != id.UserID {
		return nil, domain.NewNotFoundError(entryNotFoundMessage)
	}
	return entry, nil
}

// fail maps a repository error to what the caller may see. Anything that is not
// a not-found or a vanished owner becomes ErrInternal.
func (s *DiaryService) fail(ctx context.Context, op string, id domain.Identity, err error) error {
	if domain.IsNotFound(err) {
		return domain.NewNotFoundError(entryNotFoundMessage)
	}
	if domain.IsInvalidToken(err) {
		s.log.WarnContext(ctx, "identity has no backing user", "op", op, "user_id", id.UserID)
		return domain.ErrInvalidToken
	}
	if errors.Is(err, context.Canceled) {
		s.log.WarnContext(ctx, "request cancelled", "op", op, "user_id", id.UserID)
	} else {
		s.log.ErrorContext(ctx, "storage failure", "op", op, "user_id", id.UserID, "error", err)
	}
	return domain.NewInternalError(op, err)
}
