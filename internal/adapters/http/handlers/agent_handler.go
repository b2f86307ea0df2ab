package handlers

import (
	"strings"
	"time"

	"esolve-collections/internal/adapters/http/middleware"
	"esolve-collections/internal/core/domain"
	"esolve-collections/internal/core/services"
	"esolve-collections/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AgentHandler handles agent endpoints
type AgentHandler struct {
	store *services.DataStore
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(store *services.DataStore) *AgentHandler {
	return &AgentHandler{store: store}
}

// ListAgents handles listing agents
// @Summary List agents
// @Description All agents, optionally narrowed by status
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Param status query string false "active or inactive"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /agents [get]
func (h *AgentHandler) ListAgents(c *fiber.Ctx) error {
	agents := h.store.Agents()

	if status := c.Query("status"); status != "" && status != services.FilterAll {
		if !domain.AgentStatus(status).Valid() {
			return response.BadRequest(c, "Invalid status filter")
		}
		filtered := make([]domain.Agent, 0, len(agents))
		for _, a := range agents {
			if string(a.Status) == status {
				filtered = append(filtered, a)
			}
		}
		agents = filtered
	}

	return response.Success(c, "Agents retrieved successfully", agents)
}

// GetAgent handles getting an agent by ID
// @Summary Get agent by ID
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agents/{id} [get]
func (h *AgentHandler) GetAgent(c *fiber.Ctx) error {
	agent, ok := h.store.Agent(c.Params("id"))
	if !ok {
		return response.NotFound(c, "Agent not found")
	}

	return response.Success(c, "Agent retrieved successfully", agent)
}

// CreateAgentRequest represents create agent request body
type CreateAgentRequest struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	AssignedCases  int             `json:"assigned_cases"`
	RecoveryRate   float64         `json:"recovery_rate"`
	TotalRecovered decimal.Decimal `json:"total_recovered"`
	Status         string          `json:"status"`
	JoinedDate     *time.Time      `json:"joined_date"`
}

// CreateAgent handles creating an agent (Admin only)
// @Summary Create agent
// @Description Add an agent; the id is assigned by the server (Admin only)
// @Tags Agents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAgentRequest true "Agent data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /agents [post]
func (h *AgentHandler) CreateAgent(c *fiber.Ctx) error {
	var req CreateAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := services.AgentInput{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		AssignedCases:  req.AssignedCases,
		RecoveryRate:   req.RecoveryRate,
		TotalRecovered: req.TotalRecovered,
		Status:         domain.AgentActive,
		JoinedDate:     time.Now().UTC(),
	}
	if req.Status != "" {
		input.Status = domain.AgentStatus(req.Status)
	}
	if req.JoinedDate != nil {
		input.JoinedDate = *req.JoinedDate
	}

	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if input.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if msg := validateAgentFields(&input.Status, &input.RecoveryRate, &input.AssignedCases, &input.TotalRecovered); msg != "" {
		return response.BadRequest(c, msg)
	}

	actor := domain.ActorFromUser(middleware.CurrentUser(c))
	agent := h.store.AddAgent(input, actor)

	return response.Created(c, "Agent created successfully", agent)
}

// UpdateAgentRequest represents update agent request body
type UpdateAgentRequest struct {
	Name           *string          `json:"name"`
	Email          *string          `json:"email"`
	Phone          *string          `json:"phone"`
	AssignedCases  *int             `json:"assigned_cases"`
	RecoveryRate   *float64         `json:"recovery_rate"`
	TotalRecovered *decimal.Decimal `json:"total_recovered"`
	Status         *string          `json:"status"`
	JoinedDate     *time.Time       `json:"joined_date"`
}

// UpdateAgent handles updating an agent (Admin only)
// @Summary Update agent
// @Description Merge agent fields (Admin only)
// @Tags Agents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Param body body UpdateAgentRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agents/{id} [put]
func (h *AgentHandler) UpdateAgent(c *fiber.Ctx) error {
	var req UpdateAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	update := services.AgentUpdate{
		Phone:          req.Phone,
		AssignedCases:  req.AssignedCases,
		RecoveryRate:   req.RecoveryRate,
		TotalRecovered: req.TotalRecovered,
		JoinedDate:     req.JoinedDate,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return response.BadRequest(c, "Name must not be empty")
		}
		update.Name = &name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			return response.BadRequest(c, "Email must not be empty")
		}
		update.Email = &email
	}
	if req.Status != nil {
		status := domain.AgentStatus(*req.Status)
		update.Status = &status
	}
	if msg := validateAgentFields(update.Status, update.RecoveryRate, update.AssignedCases, update.TotalRecovered); msg != "" {
		return response.BadRequest(c, msg)
	}

	id := c.Params("id")
	actor := domain.ActorFromUser(middleware.CurrentUser(c))
	if !h.store.UpdateAgent(id, update, actor) {
		return response.NotFound(c, "Agent not found")
	}

	agent, _ := h.store.Agent(id)
	return response.Success(c, "Agent updated successfully", agent)
}

// DeleteAgent handles deleting an agent (Admin only)
// @Summary Delete agent
// @Description Remove an agent. Cases assigned to it keep the assignment. (Admin only)
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agents/{id} [delete]
func (h *AgentHandler) DeleteAgent(c *fiber.Ctx) error {
	actor := domain.ActorFromUser(middleware.CurrentUser(c))
	if !h.store.DeleteAgent(c.Params("id"), actor) {
		return response.NotFound(c, "Agent not found")
	}

	return response.Success(c, "Agent deleted successfully", nil)
}

// validateAgentFields checks the optional numeric and status fields; nil
// pointers are skipped. It returns an error message or "".
func validateAgentFields(status *domain.AgentStatus, rate *float64, assigned *int, recovered *decimal.Decimal) string {
	switch {
	case status != nil && !status.Valid():
		return "Invalid status"
	case rate != nil && (*rate < 0 || *rate > 100):
		return "Recovery rate must be between 0 and 100"
	case assigned != nil && *assigned < 0:
		return "Assigned cases must not be negative"
	case recovered != nil && recovered.IsNegative():
		return "Total recovered must not be negative"
	}
	return ""
}
