package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/dto"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/service"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util/errorutil"
)

// AssignmentsHandler manages background auto-assign jobs.
type AssignmentsHandler struct {
	service *service.AssignmentService
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(assignmentService *service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{service: assignmentService}
}

// Start POST /api/assignments.
func (h *AssignmentsHandler) Start(c *fiber.Ctx) error {
	var req dto.AssignmentJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := h.service.StartJob(c.UserContext(), domain.Period{Year: req.Year, Month: req.Month}, req.Workplaces, req.Persist)
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": jobResponse(status)})
}

// Get GET /api/assignments/:id.
func (h *AssignmentsHandler) Get(c *fiber.Ctx) error {
	status, err := h.service.Job(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(status)})
}

// Cancel DELETE /api/assignments/:id.
func (h *AssignmentsHandler) Cancel(c *fiber.Ctx) error {
	status, err := h.service.CancelJob(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(status)})
}

func jobResponse(s service.JobStatus) dto.AssignmentJobResponse {
	return dto.AssignmentJobResponse{
		ID:         s.ID,
		Year:       s.Period.Year,
		Month:      s.Period.Month,
		State:      s.State,
		Persist:    s.Persist,
		Progress:   s.Progress,
		Result:     autoAssignResponse(s.Result),
		Error:      s.Error,
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
	}
}
