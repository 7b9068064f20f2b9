package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/dto"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/observability"
)

// ConfigHandler exposes static grid configuration and runtime counters.
type ConfigHandler struct {
	workplaces []string
	metrics    *observability.Metrics
}

// NewConfigHandler constructs handler.
func NewConfigHandler(workplaces []string, metrics *observability.Metrics) *ConfigHandler {
	return &ConfigHandler{workplaces: workplaces, metrics: metrics}
}

// Config GET /api/config.
func (h *ConfigHandler) Config(c *fiber.Ctx) error {
	shifts := make([]dto.ShiftInfo, 0, len(domain.Shifts))
	for _, s := range domain.Shifts {
		shifts = append(shifts, dto.ShiftInfo{ID: s, Label: s.Label()})
	}
	return c.JSON(fiber.Map{"data": dto.ConfigResponse{Workplaces: h.workplaces, Shifts: shifts}})
}

// Metrics GET /metrics.
func (h *ConfigHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.metrics.Snapshot()})
}
