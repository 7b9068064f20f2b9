package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/dto"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/service"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util/errorutil"
)

// ScheduleHandler serves the monthly grid.
type ScheduleHandler struct {
	schedules   *service.ScheduleService
	assignments *service.AssignmentService
	now         func() time.Time
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(schedules *service.ScheduleService, assignments *service.AssignmentService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, assignments: assignments, now: time.Now}
}

// Get GET /api/schedule?year=&month=.
func (h *ScheduleHandler) Get(c *fiber.Ctx) error {
	period, err := queryPeriod(c, h.now())
	if err != nil {
		return err
	}
	grid, found, err := h.schedules.Load(c.UserContext(), period)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": scheduleResponse(period, grid, found)})
}

// Save POST /api/schedule.
func (h *ScheduleHandler) Save(c *fiber.Ctx) error {
	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	period := domain.Period{Year: req.Year, Month: req.Month}
	grid, err := h.schedules.Save(c.UserContext(), period, req.Workplaces)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": scheduleResponse(period, grid, true)})
}

// AutoAssign POST /api/schedule/auto-assign. The filled grid is returned for
// review and not saved.
func (h *ScheduleHandler) AutoAssign(c *fiber.Ctx) error {
	var req dto.AutoAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	res, err := h.assignments.AutoAssign(c.UserContext(), domain.Period{Year: req.Year, Month: req.Month}, req.Workplaces)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": autoAssignResponse(res)})
}

func scheduleResponse(period domain.Period, grid domain.Grid, saved bool) dto.ScheduleResponse {
	if grid == nil {
		grid = domain.Grid{}
	}
	return dto.ScheduleResponse{
		Year:       period.Year,
		Month:      period.Month,
		Saved:      saved,
		Days:       dayInfos(period),
		Workplaces: grid,
	}
}

func autoAssignResponse(res *service.AssignmentResult) *dto.AutoAssignResponse {
	if res == nil {
		return nil
	}
	return &dto.AutoAssignResponse{
		Year:       res.Period.Year,
		Month:      res.Period.Month,
		Workplaces: res.Grid,
		Report:     res.Report,
		Summary:    res.Summary,
	}
}
