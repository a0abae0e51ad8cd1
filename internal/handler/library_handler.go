package handler

import (
	"net/http"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// LibraryHandler handles the catalogue and circulation desk.
type LibraryHandler struct {
	libraryService *service.LibraryService
}

func NewLibraryHandler(libraryService *service.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

type bookSearchQuery struct {
	Query string `form:"q" binding:"omitempty,max=100"`
}

// ListBooks godoc
// GET /api/v1/library/books?q=
func (h *LibraryHandler) ListBooks(c *gin.Context) {
	var q bookSearchQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	books, err := h.libraryService.ListBooks(c.Request.Context(), branchID, q.Query)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, books)
}

// CreateBook godoc
// POST /api/v1/library/books
func (h *LibraryHandler) CreateBook(c *gin.Context) {
	var req model.BookRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	book, err := h.libraryService.CreateBook(c.Request.Context(), branchID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, book)
}

// UpdateBook godoc
// PUT /api/v1/library/books/:id
func (h *LibraryHandler) UpdateBook(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.BookRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	book, err := h.libraryService.UpdateBook(c.Request.Context(), branchID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// DeleteBook godoc
// DELETE /api/v1/library/books/:id
func (h *LibraryHandler) DeleteBook(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	if err := h.libraryService.DeleteBook(c.Request.Context(), branchID, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "book deleted successfully"})
}

// ListIssues godoc
// GET /api/v1/library/issues?student_id=&open=
// Students only ever see their own loans.
func (h *LibraryHandler) ListIssues(c *gin.Context) {
	var f model.IssueFilter
	if fields := validator.BindQuery(c, &f); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	claims, branchID := scope(c)
	issues, err := h.libraryService.ListIssues(c.Request.Context(), claims, branchID, f)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, issues)
}

// Issue godoc
// POST /api/v1/library/issues
func (h *LibraryHandler) Issue(c *gin.Context) {
	var req model.IssueBookRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	claims, branchID := scope(c)
	issue, err := h.libraryService.Issue(c.Request.Context(), claims, branchID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, issue)
}

// Return godoc
// POST /api/v1/library/issues/:id/return
// Closes the loan and records the overdue fine.
func (h *LibraryHandler) Return(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	issue, err := h.libraryService.Return(c.Request.Context(), branchID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, issue)
}
