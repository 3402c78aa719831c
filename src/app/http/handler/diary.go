package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"diarybook/src/app/http/dto"
	"diarybook/src/app/http/response"
	"diarybook/src/app/middleware"
	"diarybook/src/core/domain"
	"diarybook/src/core/usecase"
)

// Client-visible confirmation messages.
const (
	msgCreated = "Diary entry created successfully"
	msgUpdated = "Diary entry updated successfully"
	msgDeleted = "Diary entry deleted successfully"
)

// DiaryService is the subset of usecase.DiaryService the handler needs.
type DiaryService interface {
	Create(ctx context.Context, id domain.Identity, in usecase.CreateEntryInput) (*domain.DiaryEntry, error)
	Get(ctx context.Context, id domain.Identity, entryID int64) (*domain.DiaryEntry, error)
	Update(ctx context.Context, id domain.Identity, entryID int64, in usecase.UpdateEntryInput) (*domain.DiaryEntry, error)
	Delete(ctx context.Context, id domain.Identity, entryID int64) error
	List(ctx context.Context, id domain.Identity, in usecase.ListEntriesInput) (*domain.EntryPage, error)
}

// DiaryHandler serves /diary. Every route expects middleware.Authenticate in front of it.
type DiaryHandler struct {
	diaryService DiaryService
	debug        bool
}

// NewDiaryHandler creates a DiaryHandler. With debug set, internal errors carry their detail.
func NewDiaryHandler(diaryService DiaryService, debug bool) *DiaryHandler {
	return &DiaryHandler{diaryService: diaryService, debug: debug}
}

// List returns one page of the caller's entries.
// GET /diary?page=&query=&dateFrom=&dateTo=&clearFilters=
func (h *DiaryHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationFailed(c, validationErrors(err), middleware.GetRequestID(c))
		return
	}

	id, _ := middleware.GetIdentity(c)
	page, err := h.diaryService.List(c.Request.Context(), id, q.ToInput())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, dto.NewListView(page))
}

// Get returns one entry.
// GET /diary/:id
func (h *DiaryHandler) Get(c *gin.Context) {
	id, _ := middleware.GetIdentity(c)
	entry, err := h.diaryService.Get(c.Request.Context(), id, entryID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, dto.NewEntryView(entry))
}

// Create stores a new entry for the caller.
// POST /diary
func (h *DiaryHandler) Create(c *gin.Context) {
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validationErrors(err), middleware.GetRequestID(c))
		return
	}

	id, _ := middleware.GetIdentity(c)
	entry, err := h.diaryService.Create(c.Request.Context(), id, req.ToInput())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Created(c, msgCreated, dto.NewEntryView(entry))
}

// Update rewrites an entry.
// PUT /diary/:id
func (h *DiaryHandler) Update(c *gin.Context) {
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validationErrors(err), middleware.GetRequestID(c))
		return
	}

	id, _ := middleware.GetIdentity(c)
	entry, err := h.diaryService.Update(c.Request.Context(), id, entryID(c), req.ToInput())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Message(c, msgUpdated, dto.NewEntryView(entry))
}

// Delete removes an entry.
// DELETE /diary/:id
func (h *DiaryHandler) Delete(c *gin.Context) {
	id, _ := middleware.GetIdentity(c)
	if err := h.diaryService.Delete(c.Request.Context(), id, entryID(c)); err != nil {
		h.fail(c, err)
		return
	}

	response.Message(c, msgDeleted, nil)
}

func (h *DiaryHandler) fail(c *gin.Context, err error) {
	// Attach error for middleware logging
	_ = c.Error(err)
	response.FromDomainError(c, err, middleware.GetRequestID(c), h.debug)
}

// entryID parses the :id path segment. Anything that is not a positive integer
// becomes 0, which the service reports as not found.
func entryID(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
