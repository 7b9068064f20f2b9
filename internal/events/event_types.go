package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEngineerSaved       EventType = "engineer_saved"
	EventEngineerDeleted     EventType = "engineer_deleted"
	EventScheduleSaved       EventType = "schedule_saved"
	EventAutoAssignCompleted EventType = "auto_assign_completed"
	EventPatternApplied      EventType = "pattern_applied"
	EventExportGenerated     EventType = "export_generated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Period    string      `json:"period,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EngineerPayload payload.
type EngineerPayload struct {
	Name       string   `json:"name"`
	Workplaces []string `json:"workplaces,omitempty"`
	Created    bool     `json:"created,omitempty"`
}

// ScheduleSavedPayload payload.
type ScheduleSavedPayload struct {
	FilledCells int `json:"filled_cells"`
}

// AutoAssignCompletedPayload payload.
type AutoAssignCompletedPayload struct {
	JobID     string         `json:"job_id,omitempty"`
	Total     int            `json:"total"`
	Unfilled  int            `json:"unfilled"`
	Counts    map[string]int `json:"counts"`
	Cancelled bool           `json:"cancelled"`
}

// PatternAppliedPayload payload.
type PatternAppliedPayload struct {
	Workplace               string `json:"workplace"`
	Applied                 int    `json:"applied"`
	SkippedDueToLimitations int    `json:"skipped_due_to_limitations"`
	SkippedDueToExisting    int    `json:"skipped_due_to_existing"`
}

// ExportGeneratedPayload payload.
type ExportGeneratedPayload struct {
	Files []string `json:"files"`
}
