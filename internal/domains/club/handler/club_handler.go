package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/club/model"
	"smartlibrary-backend/internal/domains/club/service"
	"smartlibrary-backend/internal/shared/policy"
	"smartlibrary-backend/internal/shared/response"
)

type ClubHandler struct {
	service service.ServiceInterface
}

func NewClubHandler(svc service.ServiceInterface) *ClubHandler {
	return &ClubHandler{
		service: svc,
	}
}

// CreateClub handles POST /clubs
func (h *ClubHandler) CreateClub(c *gin.Context) {
	var req model.CreateClubRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	club, err := h.service.CreateClub(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, club)
}

// ListClubs handles GET /clubs
func (h *ClubHandler) ListClubs(c *gin.Context) {
	clubs, err := h.service.ListClubs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, clubs)
}

// AddClubMember handles POST /clubs/:id/members
func (h *ClubHandler) AddClubMember(c *gin.Context) {
	clubID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req model.AddClubMemberRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	if err := h.service.AddClubMember(c.Request.Context(), clubID, req.MemberID); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"club_id": clubID, "member_id": req.MemberID})
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
