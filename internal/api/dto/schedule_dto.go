package dto

import (
	"time"

	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/engine"
	"github.com/spec-kit/shift-scheduler/internal/service"
)

// EngineerRequest payload. Limitation days are string keys as sent by forms.
type EngineerRequest struct {
	Name        string              `json:"name"`
	Workplaces  []string            `json:"workplaces"`
	Limitations map[string][]string `json:"limitations"`
}

// EngineerResponse represents one roster entry.
type EngineerResponse struct {
	Name        string             `json:"name"`
	Workplaces  []string           `json:"workplaces"`
	Limitations domain.Limitations `json:"limitations"`
}

// ShiftInfo describes a shift column.
type ShiftInfo struct {
	ID    domain.Shift `json:"id"`
	Label string       `json:"label"`
}

// ConfigResponse lists the fixed grid dimensions.
type ConfigResponse struct {
	Workplaces []string    `json:"workplaces"`
	Shifts     []ShiftInfo `json:"shifts"`
}

// DayInfo labels one row of the grid.
type DayInfo struct {
	Day     int    `json:"day"`
	Label   string `json:"label"`
	Weekend bool   `json:"weekend"`
}

// ScheduleRequest payload for saving a grid.
type ScheduleRequest struct {
	Year       int         `json:"year"`
	Month      int         `json:"month"`
	Workplaces domain.Grid `json:"workplaces"`
}

// ScheduleResponse carries a grid and its calendar.
type ScheduleResponse struct {
	Year       int         `json:"year"`
	Month      int         `json:"month"`
	Saved      bool        `json:"saved"`
	Days       []DayInfo   `json:"days"`
	Workplaces domain.Grid `json:"workplaces"`
}

// AutoAssignRequest payload. Omitting workplaces runs against the saved grid.
type AutoAssignRequest struct {
	Year       int         `json:"year"`
	Month      int         `json:"month"`
	Workplaces domain.Grid `json:"workplaces"`
}

// AutoAssignResponse returns the filled grid for review.
type AutoAssignResponse struct {
	Year       int                     `json:"year"`
	Month      int                     `json:"month"`
	Workplaces domain.Grid             `json:"workplaces"`
	Report     engine.AssignmentReport `json:"report"`
	Summary    []engine.EngineerCount  `json:"summary"`
}

// AssignmentJobRequest payload for a background run.
type AssignmentJobRequest struct {
	Year       int         `json:"year"`
	Month      int         `json:"month"`
	Workplaces domain.Grid `json:"workplaces"`
	Persist    bool        `json:"persist"`
}

// AssignmentJobResponse reports a background run.
type AssignmentJobResponse struct {
	ID         string              `json:"id"`
	Year       int                 `json:"year"`
	Month      int                 `json:"month"`
	State      service.JobState    `json:"state"`
	Persist    bool                `json:"persist"`
	Progress   engine.Progress     `json:"progress"`
	Result     *AutoAssignResponse `json:"result,omitempty"`
	Error      string              `json:"error,omitempty"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt *time.Time          `json:"finished_at,omitempty"`
}

// PatternResponse returns the reconciled grid for review.
type PatternResponse struct {
	Year       int                         `json:"year"`
	Month      int                         `json:"month"`
	Workplace  string                      `json:"workplace"`
	Workplaces domain.Grid                 `json:"workplaces"`
	Report     engine.ReconciliationReport `json:"report"`
}

// GenerateExportRequest payload.
type GenerateExportRequest struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Format string `json:"format"`
}

// GenerateExportResponse lists generated files.
type GenerateExportResponse struct {
	Files []service.ExportedFile `json:"files"`
}
