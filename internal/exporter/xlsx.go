package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"sctk/internal/report"
)

// XLSXSink writes report documents as Excel workbooks, one sheet per
// document sheet.
type XLSXSink struct {
	dir    string
	logger *slog.Logger
}

// NewXLSXSink returns a sink writing workbooks into dir.
func NewXLSXSink(dir string, logger *slog.Logger) *XLSXSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXSink{dir: dir, logger: logger}
}

// Write saves the document and returns the workbook path.
func (s *XLSXSink) Write(doc *report.Document) (string, error) {
	if len(doc.Sheets) == 0 {
		return "", fmt.Errorf("document %s has no sheets", doc.Title)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range doc.Sheets {
		name := report.SafeSheetName(sheet.Name)
		if i == 0 {
			// Rename the workbook's default sheet instead of leaving
			// an empty Sheet1 behind.
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return "", fmt.Errorf("failed to name sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("failed to add sheet %q: %w", name, err)
		}

		for r, row := range sheet.Rows {
			for c, cell := range row {
				if cell.Type == report.CellEmpty {
					continue
				}
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return "", fmt.Errorf("invalid cell coordinates: %w", err)
				}
				if err := f.SetCellValue(name, axis, cell.Value()); err != nil {
					return "", fmt.Errorf("failed to write cell %s!%s: %w", name, axis, err)
				}
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.SetDocProps(&excelize.DocProperties{
		Identifier: doc.ID,
		Title:      doc.Title,
	}); err != nil {
		return "", fmt.Errorf("failed to set document properties: %w", err)
	}

	path := filepath.Join(s.dir, fileName(doc, "xlsx"))
	s.logger.Info("writing report workbook",
		slog.String("path", path),
		slog.String("document_id", doc.ID),
		slog.Int("sheet_count", len(doc.Sheets)))

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

// fileName builds the timestamped output name, e.g.
// Study_Hour_Report_SP2024_2024-05-17-10-30-00.xlsx.
func fileName(doc *report.Document, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s",
		doc.Title, doc.Term, doc.GeneratedAt.Format("2006-01-02-15-04-05"), ext)
}
