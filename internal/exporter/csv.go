package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sctk/internal/report"
)

// CSVSink writes report documents as CSV files, one file per sheet.
type CSVSink struct {
	dir    string
	logger *slog.Logger

	// BOMPrefix adds a UTF-8 BOM so Excel opens the files correctly.
	BOMPrefix bool
}

// NewCSVSink returns a sink writing CSV files into dir.
func NewCSVSink(dir string, logger *slog.Logger) *CSVSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVSink{dir: dir, logger: logger}
}

// Write saves one CSV per sheet and returns the directory they were
// written to.
func (s *CSVSink) Write(doc *report.Document) (string, error) {
	if len(doc.Sheets) == 0 {
		return "", fmt.Errorf("document %s has no sheets", doc.Title)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	base := strings.TrimSuffix(fileName(doc, "csv"), ".csv")
	for _, sheet := range doc.Sheets {
		name := fmt.Sprintf("%s_%s.csv", base, sanitizeFileName(sheet.Name))
		path := filepath.Join(s.dir, name)
		if err := s.writeSheet(path, sheet); err != nil {
			return "", fmt.Errorf("failed to write sheet %q: %w", sheet.Name, err)
		}
	}

	s.logger.Info("writing report CSV files",
		slog.String("dir", s.dir),
		slog.String("document_id", doc.ID),
		slog.Int("sheet_count", len(doc.Sheets)))
	return s.dir, nil
}

func (s *CSVSink) writeSheet(path string, sheet report.Sheet) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if s.BOMPrefix {
		if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	w := csv.NewWriter(f)
	for _, row := range sheet.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = cellText(cell)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func cellText(cell report.Cell) string {
	switch cell.Type {
	case report.CellString:
		return cell.Str
	case report.CellFloat:
		return strconv.FormatFloat(cell.Float, 'f', -1, 64)
	case report.CellInt:
		return strconv.Itoa(cell.Int)
	case report.CellBool:
		return strconv.FormatBool(cell.Bool)
	default:
		return ""
	}
}

var fileNameReplacer = strings.NewReplacer(" ", "_", "/", "-", "\\", "-")

func sanitizeFileName(name string) string {
	return fileNameReplacer.Replace(name)
}
