package handlers

import (
	"esolve-collections/internal/core/services"
	"esolve-collections/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard returns KPIs and chart series
// @Summary Dashboard overview
// @Description Headline KPIs, cases by status, monthly recovery, agent performance and recent activity
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	return response.Success(c, "Dashboard data retrieved successfully", h.dashboardService.GetDashboard())
}
