package handlers

import (
	"mime"
	"net/url"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/dto"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/service"
	"github.com/spec-kit/shift-scheduler/internal/spreadsheet"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util/errorutil"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportsHandler generates and serves spreadsheet exports.
type ExportsHandler struct {
	service *service.ExportService
}

// NewExportsHandler constructs handler.
func NewExportsHandler(exportService *service.ExportService) *ExportsHandler {
	return &ExportsHandler{service: exportService}
}

// Generate POST /api/generate_excel.
func (h *ExportsHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateExportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	format, err := spreadsheet.ParseFormat(req.Format)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	files, err := h.service.Generate(c.UserContext(), domain.Period{Year: req.Year, Month: req.Month}, format)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.GenerateExportResponse{Files: files}})
}

// Download GET /api/download/:filename?token=.
func (h *ExportsHandler) Download(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("filename"))
	if err != nil {
		return apperrors.NewValidationError("invalid file name", map[string]any{"filename": c.Params("filename")})
	}
	data, err := h.service.Download(c.UserContext(), name, c.Query("token"))
	if err != nil {
		return err
	}
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, contentType(name))
	return c.Send(data)
}

func contentType(name string) string {
	ext := filepath.Ext(name)
	if ext == ".xlsx" {
		return xlsxContentType
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return fiber.MIMEOctetStream
}
