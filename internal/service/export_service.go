package service

import (
	"context"
	"encoding/hex"
	"errors"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/filestore"
	"github.com/spec-kit/shift-scheduler/internal/repository"
	"github.com/spec-kit/shift-scheduler/internal/signing"
	"github.com/spec-kit/shift-scheduler/internal/spreadsheet"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util/errorutil"
)

const downloadPath = "/api/download/"

// ExportedFile describes one generated spreadsheet.
type ExportedFile struct {
	Name      string    `json:"name"`
	Workplace string    `json:"workplace"`
	Checksum  string    `json:"checksum"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExportService renders saved grids to spreadsheets.
type ExportService struct {
	schedules  repository.ScheduleRepository
	files      filestore.Store
	tokens     *signing.TokenManager
	workplaces []string
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ExportDependencies bundles collaborators of the export service.
type ExportDependencies struct {
	ScheduleRepo repository.ScheduleRepository
	Files        filestore.Store
	Tokens       *signing.TokenManager
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(cfg config.SchedulerConfig, deps ExportDependencies) *ExportService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		schedules:  deps.ScheduleRepo,
		files:      deps.Files,
		tokens:     deps.Tokens,
		workplaces: cfg.Workplaces,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Generate renders one file per configured workplace from the saved grid of
// the period.
func (s *ExportService) Generate(ctx context.Context, period domain.Period, format spreadsheet.Format) ([]ExportedFile, error) {
	if _, err := validatePeriod(period); err != nil {
		return nil, err
	}
	grid, found, err := s.schedules.Get(ctx, period)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !found {
		return nil, apperrors.NewPrecondition(apperrors.CodeScheduleNotFound,
			"no schedule saved for this month", http.StatusNotFound,
			map[string]any{"year": period.Year, "month": period.Month})
	}

	files := make([]ExportedFile, 0, len(s.workplaces))
	names := make([]string, 0, len(s.workplaces))
	for _, wp := range s.workplaces {
		data, err := spreadsheet.Render(format, wp, period, grid.Workplace(wp))
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		name := spreadsheet.FileName(wp, period, format)
		if err := s.files.Put(ctx, name, data); err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		token, expiresAt, err := s.tokens.Issue(name)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		sum := blake2b.Sum256(data)
		files = append(files, ExportedFile{
			Name:      name,
			Workplace: wp,
			Checksum:  hex.EncodeToString(sum[:]),
			URL:       downloadPath + url.PathEscape(name) + "?token=" + url.QueryEscape(token),
			ExpiresAt: expiresAt,
		})
		names = append(names, name)
	}

	s.logger.Info("schedule exported", zap.String("period", period.Key()), zap.String("format", string(format)), zap.Strings("files", names))
	publish(ctx, s.dispatcher, s.logger, events.EventExportGenerated, period.Key(), events.ExportGeneratedPayload{Files: names})
	return files, nil
}

// Download returns the bytes of a generated file after checking its token.
func (s *ExportService) Download(ctx context.Context, name, token string) ([]byte, error) {
	if err := filestore.ValidateName(name); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	if err := s.tokens.Verify(token, name); err != nil {
		return nil, apperrors.NewForbidden("download link is invalid or expired")
	}
	data, err := s.files.Get(ctx, name)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return nil, apperrors.NewNotFound("file", map[string]any{"name": name})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return data, nil
}
