package dto

import (
	"strconv"
	"strings"
	"time"

	"diarybook/src/core/domain"
	"diarybook/src/core/usecase"
)

// DateLayout is the calendar date format accepted in requests and rendered in responses.
const DateLayout = "2006-01-02"

// CreateEntryRequest is the payload for POST /diary.
type CreateEntryRequest struct {
	Title     string `json:"title" binding:"max=255"`
	Content   string `json:"content" binding:"required,trimmin=10,trimmax=10000"`
	EntryDate string `json:"entry_date" binding:"omitempty,datetime=2006-01-02"`
}

// ToInput converts the request to the service input.
func (r *CreateEntryRequest) ToInput() usecase.CreateEntryInput {
	return usecase.CreateEntryInput{
		Title:     r.Title,
		Content:   r.Content,
		EntryDate: parseDate(r.EntryDate),
	}
}

// UpdateEntryRequest is the payload for PUT /diary/:id. Title may be omitted.
type UpdateEntryRequest struct {
	Title     string `json:"title" binding:"max=255"`
	Content   string `json:"content" binding:"required,trimmin=10,trimmax=10000"`
	EntryDate string `json:"entry_date" binding:"omitempty,datetime=2006-01-02"`
}

func (r *UpdateEntryRequest) ToInput() usecase.UpdateEntryInput {
	return usecase.UpdateEntryInput{
		Title:     r.Title,
		Content:   r.Content,
		EntryDate: parseDate(r.EntryDate),
	}
}

// ListQuery holds the query string of GET /diary.
// Page stays a string so a non-numeric value falls back to the first page instead of failing.
// The filter fields are checked by a struct-level rule that is skipped when ClearFilters is set.
type ListQuery struct {
	Page         string `form:"page"`
	Query        string `form:"query"`
	DateFrom     string `form:"dateFrom"`
	DateTo       string `form:"dateTo"`
	ClearFilters string `form:"clearFilters"`
}

func (q *ListQuery) clearRequested() bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(q.ClearFilters))
	return v
}

// ToInput converts the query to the service input. It assumes the query passed validation.
func (q *ListQuery) ToInput() usecase.ListEntriesInput {
	page, err := strconv.Atoi(strings.TrimSpace(q.Page))
	if err != nil {
		page = 1
	}
	return usecase.ListEntriesInput{
		Page: page,
		Filter: domain.EntryFilter{
			Text:  strings.TrimSpace(q.Query),
			From:  parseDate(q.DateFrom),
			To:    parseDate(q.DateTo),
			Clear: q.clearRequested(),
		},
	}
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// EntryView is the public projection of a diary entry.
type EntryView struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	ContentPreview string    `json:"content_preview"`
	EntryDate      string    `json:"entry_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewEntryView projects e. The entity itself is left untouched.
func NewEntryView(e *domain.DiaryEntry) EntryView {
	return EntryView{
		ID:             e.ID,
		UserID:         e.OwnerID,
		Title:          e.Title,
		Content:        e.Content,
		ContentPreview: domain.ContentPreview(e.Content),
		EntryDate:      e.EntryDate.Format(DateLayout),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// PaginationView mirrors domain.Pagination with wire names.
type PaginationView struct {
	CurrentPage    int   `json:"current_page"`
	TotalPages     int   `json:"total_pages"`
	TotalEntries   int64 `json:"total_entries"`
	EntriesPerPage int   `json:"entries_per_page"`
	HasNext        bool  `json:"has_next"`
	HasPrev        bool  `json:"has_prev"`
}

// ListView is the data of a GET /diary response.
type ListView struct {
	Entries    []EntryView    `json:"entries"`
	Pagination PaginationView `json:"pagination"`
}

// NewListView projects one page of entries.
func NewListView(p *domain.EntryPage) ListView {
	entries := make([]EntryView, 0, len(p.Entries))
	for i := range p.Entries {
		entries = append(entries, NewEntryView(&p.Entries[i]))
	}
	m := p.Pagination
	return ListView{
		Entries: entries,
		Pagination: PaginationView{
			CurrentPage:    m.CurrentPage,
			TotalPages:     m.TotalPages,
			TotalEntries:   m.TotalEntries,
			EntriesPerPage: m.EntriesPerPage,
			HasNext:        m.HasNext,
			HasPrev:        m.HasPrev,
		},
	}
}
