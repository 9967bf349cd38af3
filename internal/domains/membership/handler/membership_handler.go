package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/membership/model"
	"smartlibrary-backend/internal/domains/membership/service"
	"smartlibrary-backend/internal/shared/policy"
	"smartlibrary-backend/internal/shared/response"
)

type MembershipHandler struct {
	service service.ServiceInterface
}

func NewMembershipHandler(svc service.ServiceInterface) *MembershipHandler {
	return &MembershipHandler{
		service: svc,
	}
}

// AddMember handles POST /members
func (h *MembershipHandler) AddMember(c *gin.Context) {
	var req model.CreateMemberRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.service.AddMember(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, member)
}

// GetMember handles GET /members/:id
func (h *MembershipHandler) GetMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	member, err := h.service.GetMember(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, member)
}

// ListMembers handles GET /members?limit=&offset=
func (h *MembershipHandler) ListMembers(c *gin.Context) {
	filter := model.MemberFilter{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}

	members, total, err := h.service.ListMembers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, members, &response.Meta{
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
