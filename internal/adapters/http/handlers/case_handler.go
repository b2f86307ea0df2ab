package handlers

import (
	"strconv"
	"strings"
	"time"

	"esolve-collections/internal/adapters/http/middleware"
	"esolve-collections/internal/core/domain"
	"esolve-collections/internal/core/services"
	"esolve-collections/internal/pkg/pagination"
	"esolve-collections/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CaseHandler handles case endpoints
type CaseHandler struct {
	store *services.DataStore
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(store *services.DataStore) *CaseHandler {
	return &CaseHandler{store: store}
}

// ListCases handles the filtered, sorted and paged case list
// @Summary List cases
// @Description Search, filter, sort and page cases. Pages past the end are clamped to the last page.
// @Tags Cases
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search customer name, loan id or customer email"
// @Param status query string false "Case status or all"
// @Param priority query string false "Case priority or all"
// @Param sort query string false "Sort field" default(createdAt)
// @Param order query string false "asc or desc"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /cases [get]
func (h *CaseHandler) ListCases(c *fiber.Ctx) error {
	filter := services.CaseFilter{
		Query:    c.Query("q"),
		Status:   c.Query("status", services.FilterAll),
		Priority: c.Query("priority", services.FilterAll),
	}
	if filter.Status != services.FilterAll && !domain.CaseStatus(filter.Status).Valid() {
		return response.BadRequest(c, "Invalid status filter")
	}
	if filter.Priority != services.FilterAll && !domain.CasePriority(filter.Priority).Valid() {
		return response.BadRequest(c, "Invalid priority filter")
	}

	sort, err := parseCaseSort(c.Query("sort"), c.Query("order"))
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))

	cases := h.store.Cases()
	totalPages := pagination.TotalPages(len(services.FilterCases(cases, filter)), services.CasePageSize)
	query := services.CaseQuery{Filter: filter, Sort: sort, Page: pagination.Clamp(page, totalPages)}

	items, meta := services.QueryCases(cases, query)

	return response.Paginated(c, "Cases retrieved successfully", items, meta)
}

func parseCaseSort(field, order string) (services.CaseSort, error) {
	if field == "" && order == "" {
		return services.DefaultCaseSort, nil
	}

	sort := services.CaseSort{Field: services.DefaultCaseSort.Field, Direction: services.SortAsc}
	if field != "" {
		sort.Field = services.SortField(field)
		if !sort.Field.Valid() {
			return sort, fiber.NewError(fiber.StatusBadRequest, "Invalid sort field")
		}
	}

	switch strings.ToLower(order) {
	case "", string(services.SortAsc):
	case string(services.SortDesc):
		sort.Direction = services.SortDesc
	default:
		return sort, fiber.NewError(fiber.StatusBadRequest, "Invalid sort order")
	}
	return sort, nil
}

// GetCase handles getting a case by ID
// @Summary Get case by ID
// @Description Case detail with notes, payment history and timeline
// @Tags Cases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cases/{id} [get]
func (h *CaseHandler) GetCase(c *fiber.Ctx) error {
	caseItem, ok := h.store.Case(c.Params("id"))
	if !ok {
		return response.NotFound(c, "Case not found")
	}

	return response.Success(c, "Case retrieved successfully", caseItem)
}

// UpdateCaseRequest represents update case request body
type UpdateCaseRequest struct {
	CustomerName      *string          `json:"customer_name"`
	CustomerPhone     *string          `json:"customer_phone"`
	CustomerEmail     *string          `json:"customer_email"`
	OutstandingAmount *decimal.Decimal `json:"outstanding_amount"`
	OverdueAmount     *decimal.Decimal `json:"overdue_amount"`
	DueDate           *time.Time       `json:"due_date"`
	Priority          *string          `json:"priority"`
	AssignedAgentID   *string          `json:"assigned_agent_id"`
	LastContactDate   *time.Time       `json:"last_contact_date"`
	NextFollowUpDate  *time.Time       `json:"next_follow_up_date"`
}

// UpdateCase handles a partial case update. Status changes go through
// UpdateCaseStatus so they reach the timeline.
// @Summary Update case
// @Description Merge case fields. Records no timeline event or activity.
// @Tags Cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param body body UpdateCaseRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cases/{id} [patch]
func (h *CaseHandler) UpdateCase(c *fiber.Ctx) error {
	var req UpdateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	update := services.CaseUpdate{
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		CustomerEmail:     req.CustomerEmail,
		OutstandingAmount: req.OutstandingAmount,
		OverdueAmount:     req.OverdueAmount,
		DueDate:           req.DueDate,
		LastContactDate:   req.LastContactDate,
		NextFollowUpDate:  req.NextFollowUpDate,
	}

	for _, amount := range []*decimal.Decimal{req.OutstandingAmount, req.OverdueAmount} {
		if amount != nil && amount.IsNegative() {
			return response.BadRequest(c, "Amounts must not be negative")
		}
	}

	if req.Priority != nil {
		priority := domain.CasePriority(*req.Priority)
		if !priority.Valid() {
			return response.BadRequest(c, "Invalid priority")
		}
		update.Priority = &priority
	}

	if req.AssignedAgentID != nil {
		agent, ok := h.store.Agent(*req.AssignedAgentID)
		if !ok {
			return response.BadRequest(c, "Assigned agent not found")
		}
		update.AssignedAgentID = &agent.ID
		update.AssignedAgent = &agent.Name
	}

	id := c.Params("id")
	if !h.store.UpdateCase(id, update) {
		return response.NotFound(c, "Case not found")
	}

	caseItem, _ := h.store.Case(id)
	return response.Success(c, "Case updated successfully", caseItem)
}

// AddNoteRequest represents add note request body
type AddNoteRequest struct {
	Content string `json:"content"`
}

// AddNote handles adding a note to a case
// @Summary Add case note
// @Description Append a note; also records a timeline event and an activity
// @Tags Cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param body body AddNoteRequest true "Note"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cases/{id}/notes [post]
func (h *CaseHandler) AddNote(c *fiber.Ctx) error {
	var req AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return response.BadRequest(c, "Note content is required")
	}

	id := c.Params("id")
	actor := domain.ActorFromUser(middleware.CurrentUser(c))
	if !h.store.AddCaseNote(id, content, actor) {
		return response.NotFound(c, "Case not found")
	}

	caseItem, _ := h.store.Case(id)
	return response.Created(c, "Note added successfully", caseItem)
}

// UpdateStatusRequest represents update status request body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles a case status change
// @Summary Update case status
// @Description Change the status; records a timeline event and an activity unless the status is unchanged
// @Tags Cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cases/{id}/status [put]
func (h *CaseHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	status := domain.CaseStatus(req.Status)
	if !status.Valid() {
		return response.BadRequest(c, "Invalid status")
	}

	id := c.Params("id")
	if _, ok := h.store.Case(id); !ok {
		return response.NotFound(c, "Case not found")
	}

	actor := domain.ActorFromUser(middleware.CurrentUser(c))
	message := "Case status updated successfully"
	if !h.store.UpdateCaseStatus(id, status, actor) {
		message = "Case status unchanged"
	}

	caseItem, _ := h.store.Case(id)
	return response.Success(c, message, caseItem)
}
