package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartlibrary-backend/internal/domains/reporting/service"
	"smartlibrary-backend/internal/shared/policy"
	"smartlibrary-backend/internal/shared/response"
)

type ReportingHandler struct {
	service service.ServiceInterface
}

func NewReportingHandler(svc service.ServiceInterface) *ReportingHandler {
	return &ReportingHandler{
		service: svc,
	}
}

// DashboardStats handles GET /dashboard/stats
func (h *ReportingHandler) DashboardStats(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// RecentActivity handles GET /dashboard/recent
func (h *ReportingHandler) RecentActivity(c *gin.Context) {
	loans, err := h.service.RecentActivity(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, loans)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrPermissionDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, policy.ErrUnauthenticated):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}
