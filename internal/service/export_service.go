package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/attendance-bridge/internal/models"
	"github.com/noah-isme/attendance-bridge/pkg/config"
	appErrors "github.com/noah-isme/attendance-bridge/pkg/errors"
	"github.com/noah-isme/attendance-bridge/pkg/export"
)

type attendanceLister interface {
	Get(ctx context.Context, month, year string, sectionID *string, teacherID string) ([]models.AttendanceEntry, error)
}

// ExportFormat names a supported report format.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered report back over the bridge. Content is
// base64 in the JSON envelope.
type ExportResult struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"content"`
}

// ExportService renders monthly attendance sheets.
type ExportService struct {
	attendance attendanceLister
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
	cfg        config.ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(attendance attendanceLister, logger *zap.Logger, cfg config.ExportConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 5000
	}
	return &ExportService{
		attendance: attendance,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
		cfg:        cfg,
	}
}

// Monthly renders one month of the teacher's attendance as CSV or PDF.
func (s *ExportService) Monthly(ctx context.Context, teacherID, month, year string, sectionID *string, format ExportFormat) (*ExportResult, error) {
	entries, err := s.attendance.Get(ctx, month, year, sectionID, teacherID)
	if err != nil {
		return nil, err
	}
	if len(entries) > s.cfg.MaxRows {
		entries = entries[:s.cfg.MaxRows]
		s.logger.Warn("export truncated", zap.Int("max_rows", s.cfg.MaxRows))
	}

	sheet := export.Sheet{
		Title:   fmt.Sprintf("Attendance %s/%s", month, year),
		Headers: []string{"Date", "Student ID", "Name", "Section", "Status"},
	}
	for _, entry := range entries {
		status := "Absent"
		if entry.Present {
			status = "Present"
		}
		section := ""
		if entry.SectionName != nil {
			section = *entry.SectionName
		}
		sheet.Rows = append(sheet.Rows, []string{entry.Date, entry.StudentCode, entry.StudentName, section, status})
	}

	base := fmt.Sprintf("attendance-%s-%s", year, month)
	switch format {
	case FormatCSV:
		content, err := s.csv.Render(sheet)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{FileName: base + ".csv", ContentType: "text/csv", Content: content}, nil
	case FormatPDF:
		content, err := s.pdf.Render(sheet)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{FileName: base + ".pdf", ContentType: "application/pdf", Content: content}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}
}
