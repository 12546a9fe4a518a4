// Command sctk generates academic-standing reports for the chapter
// from a roster file and a directory of per-term grade reports.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sctk/internal/config"
	"sctk/internal/domain"
	"sctk/internal/exporter"
	"sctk/internal/gradebook"
	"sctk/internal/report"
	"sctk/internal/roster"
	"sctk/internal/schema"
	"sctk/internal/source"
	"sctk/internal/standing"
)

var builders = map[string]report.Builder{
	"study-hours":   report.StudyHourBuilder{},
	"study-checks":  report.StudyCheckBuilder{},
	"files-due":     report.FilesDueBuilder{},
	"member-report": report.MembershipBuilder{},
}

func main() {
	reportType := flag.String("report-type", "", "study-hours | study-checks | files-due | member-report")
	rosterPath := flag.String("roster", "", "path to the chapter roster file")
	reportDir := flag.String("report-dir", "", "directory containing per-term grade report files")
	outDir := flag.String("out", "reports", "output directory")
	termFlag := flag.String("term", "", "target term, e.g. SP2024 (member-report defaults to latest)")
	configPath := flag.String("config", "", "optional config file path")
	format := flag.String("format", "xlsx", "output format: xlsx | csv")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logging.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	builder, ok := builders[*reportType]
	if !ok {
		slog.Error("Unknown report type", "report_type", *reportType)
		os.Exit(1)
	}
	if *rosterPath == "" || *reportDir == "" {
		slog.Error("Both -roster and -report-dir are required")
		os.Exit(1)
	}

	var term domain.Term
	if *termFlag != "" {
		term, err = domain.ParseTerm(*termFlag)
		if err != nil {
			slog.Error("Invalid target term", "term", *termFlag, "error", err)
			os.Exit(1)
		}
	} else if *reportType != "member-report" {
		slog.Error("-term is required for this report type", "report_type", *reportType)
		os.Exit(1)
	}

	var sink report.Sink
	switch *format {
	case "xlsx":
		sink = exporter.NewXLSXSink(*outDir, logger)
	case "csv":
		sink = exporter.NewCSVSink(*outDir, logger)
	default:
		slog.Error("Unknown output format", "format", *format)
		os.Exit(1)
	}

	path, err := run(cfg, logger, builder, sink, *rosterPath, *reportDir, term)
	if err != nil {
		slog.Error("Report generation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Report written",
		slog.String("report_type", *reportType),
		slog.String("path", path))
}

// run executes one report generation: load roster, ingest every grade
// file, classify, build, persist. Any failure aborts the whole run so
// a partially-ingested data set never reaches a report.
func run(cfg config.Config, logger *slog.Logger, builder report.Builder, sink report.Sink, rosterPath, reportDir string, term domain.Term) (string, error) {
	r, err := loadRoster(cfg, rosterPath)
	if err != nil {
		return "", fmt.Errorf("roster %s: %w", filepath.Base(rosterPath), err)
	}
	logger.Info("Roster loaded",
		slog.String("term", r.Term().String()),
		slog.Int("member_count", r.Len()))

	agg := gradebook.New(r, logger)
	files, err := source.GradeFiles(reportDir)
	if err != nil {
		return "", err
	}
	for _, path := range files {
		if err := ingestGradeFile(cfg, agg, path); err != nil {
			return "", fmt.Errorf("grade report %s: %w", filepath.Base(path), err)
		}
	}

	if term.IsZero() {
		latest, ok := agg.LatestTerm()
		if !ok {
			return "", fmt.Errorf("no grade data ingested, cannot pick a target term")
		}
		term = latest
		logger.Info("Using latest ingested term", slog.String("term", term.String()))
	}

	classifier, err := standing.NewClassifier(cfg.Policy.Standing())
	if err != nil {
		return "", err
	}

	doc, err := builder.Build(report.Inputs{
		Roster:     r,
		Grades:     agg,
		Classifier: classifier,
		Logger:     logger,
	}, term)
	if err != nil {
		return "", err
	}

	return sink.Write(doc)
}

func loadRoster(cfg config.Config, path string) (*roster.Roster, error) {
	raw, err := source.ReadTable(path)
	if err != nil {
		return nil, err
	}
	table, err := schema.Validate(raw, schema.Descriptor{
		HeaderRow: cfg.Inputs.RosterHeaderRow,
		Columns:   roster.Columns,
	})
	if err != nil {
		return nil, err
	}
	return roster.Load(table)
}

func ingestGradeFile(cfg config.Config, agg *gradebook.Aggregator, path string) error {
	raw, err := source.ReadTable(path)
	if err != nil {
		return err
	}
	table, err := schema.Validate(raw, schema.Descriptor{
		HeaderRow: cfg.Inputs.GradeHeaderRow,
		Columns:   gradebook.Columns,
	})
	if err != nil {
		return err
	}
	return agg.Ingest(table)
}
