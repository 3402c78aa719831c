package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diarybook/src/core/domain"
)

// memRepo is an in-memory DiaryRepository with the same filter and ordering rules as Postgres.
type memRepo struct {
	mu        sync.Mutex
	rows      map[int64]domain.DiaryEntry
	nextID    int64
	err       error
	healthErr error

	listOffsets []int
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[int64]domain.DiaryEntry)}
}

func (m *memRepo) Health(ctx context.Context) error { return m.healthErr }

func (m *memRepo) Create(ctx context.Context, e *domain.DiaryEntry) (*domain.DiaryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	row := *e
	row.ID = m.nextID
	m.rows[row.ID] = row
	return &row, nil
}

func (m *memRepo) FindOwned(ctx context.Context, id, ownerID int64) (*domain.DiaryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	row, ok := m.rows[id]
	if !ok || row.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return &row, nil
}

func (m *memRepo) Update(ctx context.Context, e *domain.DiaryEntry, now time.Time) (*domain.DiaryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	row, ok := m.rows[e.ID]
	if !ok || row.OwnerID != e.OwnerID {
		return nil, domain.ErrNotFound
	}
	row.Title, row.Content, row.EntryDate = e.Title, e.Content, e.EntryDate
	if now.After(row.UpdatedAt) {
		row.UpdatedAt = now
	}
	m.rows[e.ID] = row
	return &row, nil
}

func (m *memRepo) Delete(ctx context.Context, id, ownerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	row, ok := m.rows[id]
	if !ok || row.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepo) matching(ownerID int64, f domain.EntryFilter) []domain.DiaryEntry {
	text := strings.ToLower(domain.TrimText(f.Text))
	var out []domain.DiaryEntry
	for _, row := range m.rows {
		if row.OwnerID != ownerID {
			continue
		}
		if !f.Clear {
			if text != "" && !strings.Contains(strings.ToLower(row.Title), text) && !strings.Contains(strings.ToLower(row.Content), text) {
				continue
			}
			if f.From != nil && row.CreatedAt.Before(domain.StartOfDay(*f.From)) {
				continue
			}
			if f.To != nil && row.CreatedAt.After(domain.EndOfDay(*f.To)) {
				continue
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *memRepo) Count(ctx context.Context, ownerID int64, f domain.EntryFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.matching(ownerID, f))), nil
}

func (m *memRepo) List(ctx context.Context, ownerID int64, f domain.EntryFilter, limit, offset int) ([]domain.DiaryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listOffsets = append(m.listOffsets, offset)
	if m.err != nil {
		return nil, m.err
	}
	all := m.matching(ownerID, f)
	if offset >= len(all) {
		return []domain.DiaryEntry{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// stepClock returns a clock that advances by one minute per call.
func stepClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := cur
		cur = cur.Add(time.Minute)
		return t
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	alice = domain.Identity{UserID: 1}
	bob   = domain.Identity{UserID: 2}
	epoch = time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC)
)

func newService(repo *memRepo) *DiaryService {
	return NewDiaryService(repo, discardLogger()).WithClock(stepClock(epoch))
}

func seed(t *testing.T, svc *DiaryService, id domain.Identity, n int) []*domain.DiaryEntry {
	t.Helper()
	out := make([]*domain.DiaryEntry, 0, n)
	for i := 1; i <= n; i++ {
		e, err := svc.Create(context.Background(), id, CreateEntryInput{
			Title:   fmt.Sprintf("Day %d", i),
			Content: fmt.Sprintf("Entry number %d with enough text", i),
		})
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func TestCreate_DefaultsTitleFromCreationDate(t *testing.T) {
	svc := newService(newMemRepo())

	e, err := svc.Create(context.Background(), alice, CreateEntryInput{Content: "Quiet day at home."})
	require.NoError(t, err)

	assert.Equal(t, "Entry - "+e.CreatedAt.Format(domain.TitleDateLayout), e.Title)
	assert.Equal(t, alice.UserID, e.OwnerID)
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
	assert.Equal(t, domain.StartOfDay(e.CreatedAt), e.EntryDate)
	assert.NotZero(t, e.ID)
}

func TestCreate_BlankTitleIsDefaulted(t *testing.T) {
	svc := newService(newMemRepo())

	e, err := svc.Create(context.Background(), alice, CreateEntryInput{Title: "   ", Content: "Quiet day at home."})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(e.Title, "Entry - "))
}

func TestCreate_KeepsSuppliedTitle(t *testing.T) {
	svc := newService(newMemRepo())

	e, err := svc.Create(context.Background(), alice, CreateEntryInput{Title: "Mountain Adventures", Content: "Went hiking all day."})
	require.NoError(t, err)
	assert.Equal(t, "Mountain Adventures", e.Title)
}

func TestCreate_StorageFailureIsInternal(t *testing.T) {
	repo := newMemRepo()
	repo.err = errors.New("connection refused")
	svc := newService(repo)

	_, err := svc.Create(context.Background(), alice, CreateEntryInput{Content: "Quiet day at home."})
	require.Error(t, err)
	assert.True(t, domain.IsInternal(err))
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestOwnership_OtherIdentitySeesNotFound(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	ctx := context.Background()

	e, err := svc.Create(ctx, alice, CreateEntryInput{Title: "Private", Content: "Only for me to read."})
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob, e.ID)
	assert.True(t, domain.IsNotFound(err))

	_, missingErr := svc.Get(ctx, bob, 9999)
	assert.True(t, domain.IsNotFound(missingErr))
	assert.Equal(t, err.Error(), missingErr.Error(), "missing and foreign entries must be indistinguishable")

	_, err = svc.Update(ctx, bob, e.ID, UpdateEntryInput{Content: "Overwritten by bob"})
	assert.True(t, domain.IsNotFound(err))

	err = svc.Delete(ctx, bob, e.ID)
	assert.True(t, domain.IsNotFound(err))

	got, err := svc.Get(ctx, alice, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Only for me to read.", got.Content)
	assert.Equal(t, "Private", got.Title)
}

func TestOwnership_ListOnlyShowsOwnEntries(t *testing.T) {
	svc := newService(newMemRepo())
	seed(t, svc, alice, 3)
	seed(t, svc, bob, 5)

	page, err := svc.List(context.Background(), alice, ListEntriesInput{Page: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Pagination.TotalEntries)
	for _, e := range page.Entries {
		assert.Equal(t, alice.UserID, e.OwnerID)
	}
}

func TestAnonymousIdentityIsRejected(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.Identity{}, CreateEntryInput{Content: "Quiet day at home."})
	assert.True(t, domain.IsUnauthenticated(err))

	_, err = svc.List(ctx, domain.Identity{}, ListEntriesInput{})
	assert.True(t, domain.IsUnauthenticated(err))

	_, err = svc.Get(ctx, domain.Identity{}, 1)
	assert.True(t, domain.IsUnauthenticated(err))
	assert.Empty(t, repo.rows)
}

func TestUpdate_ContentOnlyKeepsTitle(t *testing.T) {
	svc := newService(newMemRepo())
	ctx := context.Background()

	e, err := svc.Create(ctx, alice, CreateEntryInput{Title: "Original", Content: "First draft of the day."})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice, e.ID, UpdateEntryInput{Content: "Second draft of the day."})
	require.NoError(t, err)
	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, "Second draft of the day.", updated.Content)
	assert.True(t, updated.UpdatedAt.After(e.UpdatedAt))
	assert.Equal(t, e.CreatedAt, updated.CreatedAt)
}

func TestUpdate_NewTitleReplacesOld(t *testing.T) {
	svc := newService(newMemRepo())
	ctx := context.Background()

	e, err := svc.Create(ctx, alice, CreateEntryInput{Title: "Original", Content: "First draft of the day."})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice, e.ID, UpdateEntryInput{Title: "Renamed", Content: "First draft of the day."})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestUpdate_UpdatedAtNeverMovesBackwards(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	ctx := context.Background()

	e, err := svc.Create(ctx, alice, CreateEntryInput{Content: "First draft of the day."})
	require.NoError(t, err)

	svc.WithClock(func() time.Time { return epoch.Add(-time.Hour) })
	updated, err := svc.Update(ctx, alice, e.ID, UpdateEntryInput{Content: "Clock skewed edit."})
	require.NoError(t, err)
	assert.False(t, updated.UpdatedAt.Before(e.UpdatedAt))
}

func TestDelete_RemovesEntry(t *testing.T) {
	svc := newService(newMemRepo())
	ctx := context.Background()

	e, err := svc.Create(ctx, alice, CreateEntryInput{Content: "To be removed soon."})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, alice, e.ID))

	_, err = svc.Get(ctx, alice, e.ID)
	assert.True(t, domain.IsNotFound(err))

	err = svc.Delete(ctx, alice, e.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestList_SecondPageOfTwelve(t *testing.T) {
	svc := newService(newMemRepo())
	created := seed(t, svc, alice, 12)

	page, err := svc.List(context.Background(), alice, ListEntriesInput{Page: 2})
	require.NoError(t, err)

	require.Len(t, page.Entries, 2)
	// Newest first: page 2 holds the two oldest entries.
	assert.Equal(t, created[1].ID, page.Entries[0].ID)
	assert.Equal(t, created[0].ID, page.Entries[1].ID)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.EqualValues(t, 12, page.Pagination.TotalEntries)
	assert.Equal(t, domain.PageSize, page.Pagination.EntriesPerPage)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
}

func TestList_PageBeyondLastIsEmpty(t *testing.T) {
	svc := newService(newMemRepo())
	seed(t, svc, alice, 12)

	page, err := svc.List(context.Background(), alice, ListEntriesInput{Page: 3})
	require.NoError(t, err)
	assert.Empty(t, page.Entries)
	assert.NotNil(t, page.Entries)
	assert.Equal(t, 3, page.Pagination.CurrentPage)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNext)
}

func TestList_HugePageNeverReachesStorage(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	seed(t, svc, alice, 3)

	page, err := svc.List(context.Background(), alice, ListEntriesInput{Page: 922337203685477582})
	require.NoError(t, err)

	assert.Empty(t, repo.listOffsets)
	assert.NotNil(t, page.Entries)
	assert.Empty(t, page.Entries)
	assert.Equal(t, 922337203685477582, page.Pagination.CurrentPage)
	assert.Equal(t, 1, page.Pagination.TotalPages)
	assert.EqualValues(t, 3, page.Pagination.TotalEntries)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
}

func TestList_OffsetsStayInsideTotal(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	seed(t, svc, alice, 12)

	for p := 1; p <= 3; p++ {
		_, err := svc.List(context.Background(), alice, ListEntriesInput{Page: p})
		require.NoError(t, err)
	}
	assert.Equal(t, []int{0, 10}, repo.listOffsets)
}

func TestList_DefaultsToFirstPage(t *testing.T) {
	svc := newService(newMemRepo())
	seed(t, svc, alice, 3)

	page, err := svc.List(context.Background(), alice, ListEntriesInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.CurrentPage)
	assert.Len(t, page.Entries, 3)
	assert.False(t, page.Pagination.HasPrev)
}

func TestList_TextSearchMatchesTitleOrContent(t *testing.T) {
	svc := newService(newMemRepo())
	ctx := context.Background()
	seed(t, svc, alice, 4)

	hit, err := svc.Create(ctx, alice, CreateEntryInput{Title: "Weekend Adventures", Content: "Went HIKING up the ridge."})
	require.NoError(t, err)

	page, err := svc.List(ctx, alice, ListEntriesInput{Filter: domain.EntryFilter{Text: "  hiking "}})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, hit.ID, page.Entries[0].ID)
	assert.EqualValues(t, 1, page.Pagination.TotalEntries)

	page, err = svc.List(ctx, alice, ListEntriesInput{Filter: domain.EntryFilter{Text: "adventures"}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Pagination.TotalEntries)
}

func TestList_DateRangeIsInclusive(t *testing.T) {
	repo := newMemRepo()
	svc := NewDiaryService(repo, discardLogger())
	ctx := context.Background()

	days := []time.Time{
		time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 2, 12, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 3, 23, 59, 59, 0, time.UTC),
		time.Date(2026, time.June, 4, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range days {
		d := d
		svc.WithClock(func() time.Time { return d })
		_, err := svc.Create(ctx, alice, CreateEntryInput{Content: "Dated entry content."})
		require.NoError(t, err)
	}

	from := time.Date(2026, time.June, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC)
	page, err := svc.List(ctx, alice, ListEntriesInput{Filter: domain.EntryFilter{From: &from, To: &to}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Pagination.TotalEntries)
}

func TestList_ClearFiltersIgnoresCriteria(t *testing.T) {
	svc := newService(newMemRepo())
	seed(t, svc, alice, 5)

	page, err := svc.List(context.Background(), alice, ListEntriesInput{
		Filter: domain.EntryFilter{Text: "no such words", Clear: true},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Pagination.TotalEntries)
}

func TestList_CountMatchesConcatenatedPages(t *testing.T) {
	svc := newService(newMemRepo())
	ctx := context.Background()
	seed(t, svc, alice, 23)
	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, alice, CreateEntryInput{Title: "Trail log", Content: fmt.Sprintf("hiking trip %d notes", i)})
		require.NoError(t, err)
	}

	for _, filter := range []domain.EntryFilter{{}, {Text: "hiking"}, {Text: "Day 1"}} {
		first, err := svc.List(ctx, alice, ListEntriesInput{Filter: filter, Page: 1})
		require.NoError(t, err)

		seen := map[int64]bool{}
		for p := 1; p <= first.Pagination.TotalPages; p++ {
			page, err := svc.List(ctx, alice, ListEntriesInput{Filter: filter, Page: p})
			require.NoError(t, err)
			for _, e := range page.Entries {
				assert.False(t, seen[e.ID], "entry %d appears on two pages", e.ID)
				seen[e.ID] = true
			}
		}
		assert.EqualValues(t, first.Pagination.TotalEntries, len(seen), "filter %+v", filter)
	}
}

func TestList_StorageFailureIsInternal(t *testing.T) {
	repo := newMemRepo()
	repo.err = errors.New("relation does not exist")
	svc := newService(repo)

	_, err := svc.List(context.Background(), alice, ListEntriesInput{})
	assert.True(t, domain.IsInternal(err))
}

func TestHealthService(t *testing.T) {
	repo := newMemRepo()
	svc := NewHealthService(discardLogger(), repo)

	status := svc.Check(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "healthy", status.Components["database"].Status)

	repo.healthErr = errors.New("dial tcp: refused")
	status = svc.Check(context.Background())
	assert.Equal(t, "degraded", status.Status)
	assert.False(t, svc.Healthy(context.Background()))

	bare := NewHealthService(discardLogger(), nil)
	assert.True(t, bare.Healthy(context.Background()))
}
