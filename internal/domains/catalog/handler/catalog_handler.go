package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/catalog/model"
	"smartlibrary-backend/internal/domains/catalog/service"
	"smartlibrary-backend/internal/shared/policy"
	"smartlibrary-backend/internal/shared/response"
)

type CatalogHandler struct {
	service service.ServiceInterface
}

func NewCatalogHandler(svc service.ServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
	}
}

// AddBook handles POST /books
func (h *CatalogHandler) AddBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.service.AddBook(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// GetBook handles GET /books/:id
func (h *CatalogHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// SearchBooks handles GET /books?search=&limit=&offset=
func (h *CatalogHandler) SearchBooks(c *gin.Context) {
	filter := model.BookFilter{
		Search: c.Query("search"),
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}

	books, total, err := h.service.SearchBooks(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Limit:  filter.Limit,
		Offset: filter.Offset,
		Total:  total,
	})
}

// RemoveBook handles DELETE /books/:id
func (h *CatalogHandler) RemoveBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	if err := h.service.RemoveBook(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// CreateAuthor handles POST /authors
func (h *CatalogHandler) CreateAuthor(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	author, err := h.service.CreateAuthor(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, author)
}

// ListAuthors handles GET /authors
func (h *CatalogHandler) ListAuthors(c *gin.Context) {
	authors, err := h.service.ListAuthors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, authors)
}

// DeleteAuthor handles DELETE /authors/:id
func (h *CatalogHandler) DeleteAuthor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	if err := h.service.DeleteAuthor(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrPermissionDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, policy.ErrUnauthenticated):
		response.Unauthorized(c, err.Error())
	default:
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", vErrs)
			return
		}
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
	}
}

func parseIntQuery(c *gin.Context, key string, def int) int {
	if s := c.Query(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}
