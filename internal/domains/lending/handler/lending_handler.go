package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/lending/model"
	"smartlibrary-backend/internal/domains/lending/service"
	"smartlibrary-backend/internal/shared/policy"
	"smartlibrary-backend/internal/shared/response"
)

type LendingHandler struct {
	service service.ServiceInterface
}

func NewLendingHandler(svc service.ServiceInterface) *LendingHandler {
	return &LendingHandler{
		service: svc,
	}
}

// Checkout handles POST /loans
func (h *LendingHandler) Checkout(c *gin.Context) {
	var req model.CheckoutRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	loan, err := h.service.Checkout(c.Request.Context(), req.BookID, req.MemberID, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, loan)
}

// ReturnBook handles POST /loans/:id/return
func (h *LendingHandler) ReturnBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	loan, err := h.service.ReturnBook(c.Request.Context(), id, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// SweepOverdue handles POST /loans/overdue-sweep. The worker runs the same
// sweep on a schedule; this endpoint lets a librarian force one.
func (h *LendingHandler) SweepOverdue(c *gin.Context) {
	count, err := h.service.SweepOverdue(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transitioned": count})
}

// GetLoan handles GET /loans/:id
func (h *LendingHandler) GetLoan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	loan, err := h.service.GetLoan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// ListLoans handles GET /loans?limit=&offset=
func (h *LendingHandler) ListLoans(c *gin.Context) {
	filter := model.LoanFilter{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}

	loans, total, err := h.service.ListLoans(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, loans, &response.Meta{
		Limit:  filter.Limit,
		Offset: filter.Offset,
		Total:  total,
	})
}

// LoanHistory handles GET /members/:id/loans
func (h *LendingHandler) LoanHistory(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	filter := model.LoanFilter{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}

	loans, total, err := h.service.LoanHistory(c.Request.Context(), memberID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, loans, &response.Meta{
		Limit:  filter.Limit,
		Offset: filter.Offset,
		Total:  total,
	})
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
