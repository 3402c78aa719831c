package domain

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// PageSize is the fixed number of entries per page.
const PageSize = 10

// PreviewLength is the number of characters kept in a content preview.
const PreviewLength = 100

// PreviewEllipsis marks a truncated preview.
const PreviewEllipsis = "..."

// TitleDateLayout renders the creation date inside a generated title.
const TitleDateLayout = "2006-01-02"

// DefaultTitle returns the title used when the caller supplies none.
func DefaultTitle(createdAt time.Time) string {
	return "Entry - " + createdAt.UTC().Format(TitleDateLayout)
}

// ContentPreview returns the first PreviewLength characters of content,
// followed by PreviewEllipsis when anything was cut.
func ContentPreview(content string) string {
	if utf8.RuneCountInString(content) <= PreviewLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:PreviewLength]) + PreviewEllipsis
}

// TrimText normalizes free text input.
func TrimText(s string) string {
	return strings.TrimSpace(s)
}

// NormalizePage maps absent or out-of-range page numbers to the first page.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset returns the row offset of page, saturating at math.MaxInt.
func Offset(page int) int {
	skipped := NormalizePage(page) - 1
	if skipped > math.MaxInt/PageSize {
		return math.MaxInt
	}
	return skipped * PageSize
}

// NewPagination derives page metadata from the requested page and the total row count.
func NewPagination(page int, total int64) Pagination {
	page = NormalizePage(page)
	totalPages := int((total + PageSize - 1) / PageSize)
	return Pagination{
		CurrentPage:    page,
		TotalPages:     totalPages,
		TotalEntries:   total,
		EntriesPerPage: PageSize,
		HasNext:        page < totalPages,
		HasPrev:        page > 1,
	}
}

// StartOfDay returns 00:00:00 UTC of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns 23:59:59.999 UTC of t's calendar date.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.UTC)
}
