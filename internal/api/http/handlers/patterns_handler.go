package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/dto"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/engine"
	"github.com/spec-kit/shift-scheduler/internal/service"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util/errorutil"
)

// PatternsHandler accepts uploaded recurring patterns.
type PatternsHandler struct {
	service *service.PatternService
}

// NewPatternsHandler constructs handler.
func NewPatternsHandler(patternService *service.PatternService) *PatternsHandler {
	return &PatternsHandler{service: patternService}
}

// Apply POST /api/patterns/apply (multipart). Fields: file, year, month,
// workplace, grid (JSON, optional), override_existing, respect_limitations.
func (h *PatternsHandler) Apply(c *fiber.Ctx) error {
	period, err := formPeriod(c)
	if err != nil {
		return err
	}
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("pattern file required", nil)
	}

	var grid domain.Grid
	if raw := c.FormValue("grid"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &grid); err != nil {
			return apperrors.NewValidationError("grid must be a JSON schedule", map[string]any{"reason": err.Error()})
		}
	}

	file, err := header.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer file.Close()

	res, err := h.service.Apply(c.UserContext(), service.PatternRequest{
		Period:    period,
		Workplace: c.FormValue("workplace"),
		FileName:  header.Filename,
		File:      file,
		Grid:      grid,
		Options: engine.PatternOptions{
			OverrideExisting:   formBool(c, "override_existing"),
			RespectLimitations: formBool(c, "respect_limitations"),
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PatternResponse{
		Year:       res.Period.Year,
		Month:      res.Period.Month,
		Workplace:  res.Workplace,
		Workplaces: res.Grid,
		Report:     res.Report,
	}})
}
