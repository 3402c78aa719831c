package domain

import "time"

// Identity is the authenticated principal derived from a verified credential.
type Identity struct {
	UserID int64
}

// IsZero reports whether no principal is bound.
func (i Identity) IsZero() bool {
	return i.UserID <= 0
}

// DiaryEntry is a persisted diary record. OwnerID is set once at creation.
type DiaryEntry struct {
	ID        int64
	OwnerID   int64
	Title     string
	Content   string
	EntryDate time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntryFilter holds the search criteria for listing entries.
// From and To are calendar dates; only their year/month/day are used.
type EntryFilter struct {
	Text  string
	From  *time.Time
	To    *time.Time
	Clear bool
}

// IsEmpty reports whether the filter narrows nothing beyond ownership.
func (f EntryFilter) IsEmpty() bool {
	return f.Clear || (TrimText(f.Text) == "" && f.From == nil && f.To == nil)
}

// Pagination describes one page window over an ordered result set.
type Pagination struct {
	CurrentPage    int
	TotalPages     int
	TotalEntries   int64
	EntriesPerPage int
	HasNext        bool
	HasPrev        bool
}

// EntryPage is one page of entries plus its metadata.
type EntryPage struct {
	Entries    []DiaryEntry
	Pagination Pagination
}
