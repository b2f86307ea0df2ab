package handlers

import (
	"esolve-collections/internal/core/domain"
	"esolve-collections/internal/core/services"
	"esolve-collections/internal/pkg/pagination"
	"esolve-collections/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ActivityHandler handles the activity log endpoint
type ActivityHandler struct {
	store *services.DataStore
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(store *services.DataStore) *ActivityHandler {
	return &ActivityHandler{store: store}
}

// ListActivities handles listing the activity log, newest first
// @Summary List activities
// @Description Global activity log, newest first, optionally narrowed by type
// @Tags Activities
// @Produce json
// @Security BearerAuth
// @Param type query string false "case_update, agent_update, login, logout or system"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /activities [get]
func (h *ActivityHandler) ListActivities(c *fiber.Ctx) error {
	activities := h.store.Activities()

	if activityType := c.Query("type"); activityType != "" && activityType != services.FilterAll {
		filtered := make([]domain.Activity, 0, len(activities))
		for _, a := range activities {
			if string(a.Type) == activityType {
				filtered = append(filtered, a)
			}
		}
		activities = filtered
	}

	params := pagination.GetParams(c)
	return response.Paginated(c, "Activities retrieved successfully",
		pagination.Slice(activities, params),
		pagination.GetMeta(params, len(activities)),
	)
}
