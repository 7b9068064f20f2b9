package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/dto"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/service"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util/errorutil"
)

// EngineersHandler manages the roster endpoints.
type EngineersHandler struct {
	service *service.RosterService
}

// NewEngineersHandler constructs handler.
func NewEngineersHandler(rosterService *service.RosterService) *EngineersHandler {
	return &EngineersHandler{service: rosterService}
}

// List GET /api/engineers.
func (h *EngineersHandler) List(c *fiber.Ctx) error {
	roster, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EngineerResponse, 0, len(roster))
	for i := range roster {
		items = append(items, engineerResponse(&roster[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/engineers/:name.
func (h *EngineersHandler) Get(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return apperrors.NewValidationError("engineer name required", nil)
	}
	engineer, err := h.service.Get(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": engineerResponse(engineer)})
}

// Save POST /api/engineers. Creates the engineer or replaces the one with the
// same name.
func (h *EngineersHandler) Save(c *fiber.Ctx) error {
	var req dto.EngineerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	engineer, created, err := h.service.Save(c.UserContext(), service.EngineerInput{
		Name:        req.Name,
		Workplaces:  req.Workplaces,
		Limitations: req.Limitations,
	})
	if err != nil {
		return err
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": engineerResponse(engineer)})
}

// Delete DELETE /api/engineers/:name.
func (h *EngineersHandler) Delete(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return apperrors.NewValidationError("engineer name required", nil)
	}
	if err := h.service.Delete(c.UserContext(), name); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func engineerResponse(e *domain.Engineer) dto.EngineerResponse {
	limitations := e.Limitations
	if limitations == nil {
		limitations = domain.Limitations{}
	}
	return dto.EngineerResponse{Name: e.Name, Workplaces: e.Workplaces, Limitations: limitations}
}
