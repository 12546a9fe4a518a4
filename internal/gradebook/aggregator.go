// Package gradebook merges per-term campus grade reports into a
// per-member academic history. Grade files may arrive in any order and
// may be resubmitted wholesale when grades are corrected; the
// aggregator reconciles them into at most one TermSummary per member
// per term.
package gradebook

import (
	"fmt"
	"log/slog"
	"sort"

	"sctk/internal/domain"
	"sctk/internal/roster"
	"sctk/internal/schema"
)

// Columns is the exact header of the individual grade report extract.
var Columns = []string{
	"Name",
	"Term",
	"Chapter",
	"New Member",
	"Enroll Hrs",
	"Priv GPA",
	"Priv Cum GPA",
	"Term GPA",
	"Term Cum GPA",
	"Class",
	"Catalog No",
	"Hrs",
	"Grade",
	"Grade Type",
}

// DefaultHeaderRow is where the grade report extract places its header,
// after two rows of preamble.
const DefaultHeaderRow = 2

// sharedColumns must hold a single value across all of a member's rows
// in one file; the extract repeats them per course row.
var sharedColumns = []string{
	"Term",
	"Chapter",
	"New Member",
	"Enroll Hrs",
	"Priv GPA",
	"Priv Cum GPA",
	"Term GPA",
	"Term Cum GPA",
}

// FormatError reports a grade file whose contents violate the format
// guarantees: inconsistent shared-column values, a malformed term
// token, or an invalid New Member flag.
type FormatError struct {
	Row     int
	Message string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("gradebook: row %d: %s", e.Row+1, e.Message)
	}
	return "gradebook: " + e.Message
}

// termEntry accumulates one member's data for one term. Courses are
// keyed by course identity so a resubmitted report replaces rather
// than duplicates.
type termEntry struct {
	summary domain.TermSummary
	courses map[domain.CourseID]domain.CourseRecord
	order   []domain.CourseID // ingestion order for stable output
}

// Aggregator owns the per-member academic histories. Report builders
// only ever see copies, via HistoryOf.
type Aggregator struct {
	roster    *roster.Roster
	histories map[domain.MemberKey]map[domain.Term]*termEntry
	logger    *slog.Logger
}

// New creates an aggregator restricted to members of the given roster.
func New(r *roster.Roster, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		roster:    r,
		histories: make(map[domain.MemberKey]map[domain.Term]*termEntry),
		logger:    logger,
	}
}

// Ingest merges one validated grade table into the histories. Rows for
// members absent from the roster are dropped silently; grade data for
// alumni and departed members is expected and ignored. Duplicate
// (member, term, course) rows follow last-write-wins, so re-ingesting
// an identical file is a no-op.
func (a *Aggregator) Ingest(table *schema.Table) error {
	rows, err := a.collectRows(table)
	if err != nil {
		return err
	}

	dropped := 0
	for _, record := range rows {
		if !a.roster.Contains(record.Member) {
			dropped++
			a.logger.Debug("dropping grade row for non-roster member",
				slog.String("member", record.Member.String()),
				slog.String("term", record.Term.String()))
			continue
		}
		a.merge(record)
	}

	if dropped > 0 {
		a.logger.Info("ignored grade rows for members not on roster",
			slog.Int("rows", dropped))
	}
	return nil
}

// collectRows parses every data row and enforces the file-level format
// guarantees before anything is merged, so a malformed file cannot
// leave the histories half-updated.
func (a *Aggregator) collectRows(table *schema.Table) ([]domain.CourseRecord, error) {
	var (
		records     []domain.CourseRecord
		fileTerm    domain.Term
		chapter     string
		chapterSeen bool
		shared      = make(map[domain.MemberKey][]string)
	)

	for i := 0; i < table.Len(); i++ {
		name := table.Cell(i, "Name")
		if name == "" {
			continue
		}

		term, err := domain.ParseTerm(table.Cell(i, "Term"))
		if err != nil {
			return nil, &FormatError{Row: i, Message: err.Error()}
		}
		if fileTerm.IsZero() {
			fileTerm = term
		} else if term != fileTerm {
			return nil, &FormatError{
				Row:     i,
				Message: fmt.Sprintf("more than one term in grade report: %s and %s", fileTerm, term),
			}
		}

		if !chapterSeen {
			chapter = table.Cell(i, "Chapter")
			chapterSeen = true
		} else if c := table.Cell(i, "Chapter"); c != chapter {
			return nil, &FormatError{
				Row:     i,
				Message: fmt.Sprintf("more than one chapter in grade report: %q and %q", chapter, c),
			}
		}

		newMember := table.Cell(i, "New Member")
		if newMember != "Y" && newMember != "N" {
			return nil, &FormatError{
				Row:     i,
				Message: fmt.Sprintf("New Member must be 'Y' or 'N', got %q", newMember),
			}
		}

		// The per-term columns repeat on every row of a member's
		// block; a mismatch means the file is corrupt.
		key := domain.KeyFromFullName(name)
		values := make([]string, len(sharedColumns))
		for j, col := range sharedColumns {
			values[j] = table.Cell(i, col)
		}
		if prev, seen := shared[key]; seen {
			for j, col := range sharedColumns {
				if prev[j] != values[j] {
					return nil, &FormatError{
						Row: i,
						Message: fmt.Sprintf("member %q has differing %q values: %q and %q",
							name, col, prev[j], values[j]),
					}
				}
			}
		} else {
			shared[key] = values
		}

		record, err := a.parseRow(table, i, key, term)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// parseRow converts one table row into an immutable CourseRecord.
func (a *Aggregator) parseRow(table *schema.Table, row int, key domain.MemberKey, term domain.Term) (domain.CourseRecord, error) {
	enrollHours, err := parseFloat(table.Cell(row, "Enroll Hrs"))
	if err != nil {
		return domain.CourseRecord{}, &FormatError{Row: row, Message: "Enroll Hrs: " + err.Error()}
	}
	hours, err := parseFloat(table.Cell(row, "Hrs"))
	if err != nil {
		return domain.CourseRecord{}, &FormatError{Row: row, Message: "Hrs: " + err.Error()}
	}

	gpas := make([]domain.GPA, 4)
	for i, col := range []string{"Term GPA", "Term Cum GPA", "Priv GPA", "Priv Cum GPA"} {
		gpa, err := parseGPA(table.Cell(row, col))
		if err != nil {
			return domain.CourseRecord{}, &FormatError{Row: row, Message: col + ": " + err.Error()}
		}
		gpas[i] = gpa
	}

	letter := table.Cell(row, "Grade")
	grade, graded := domain.ParseGrade(letter)

	return domain.CourseRecord{
		Member:      key,
		Term:        term,
		Chapter:     table.Cell(row, "Chapter"),
		Class:       table.Cell(row, "Class"),
		CatalogNo:   table.Cell(row, "Catalog No"),
		Hours:       hours,
		Letter:      letter,
		Grade:       grade,
		Graded:      graded,
		GradeType:   table.Cell(row, "Grade Type"),
		EnrollHours: enrollHours,
		TermGPA:     gpas[0],
		CumGPA:      gpas[1],
		PrivGPA:     gpas[2],
		PrivCumGPA:  gpas[3],
		NewMember:   table.Cell(row, "New Member") == "Y",
	}, nil
}

// merge applies one record to the member's history, last write wins.
func (a *Aggregator) merge(record domain.CourseRecord) {
	terms, ok := a.histories[record.Member]
	if !ok {
		terms = make(map[domain.Term]*termEntry)
		a.histories[record.Member] = terms
	}

	entry, ok := terms[record.Term]
	if !ok {
		entry = &termEntry{courses: make(map[domain.CourseID]domain.CourseRecord)}
		terms[record.Term] = entry
	}

	// The shared per-term fields are identical across the member's
	// rows of a file; the latest file wins on resubmission.
	entry.summary = domain.TermSummary{
		Term:        record.Term,
		Chapter:     record.Chapter,
		NewMember:   record.NewMember,
		EnrollHours: record.EnrollHours,
		TermGPA:     record.TermGPA,
		CumGPA:      record.CumGPA,
		PrivGPA:     record.PrivGPA,
		PrivCumGPA:  record.PrivCumGPA,
	}

	id := record.ID()
	if _, seen := entry.courses[id]; !seen {
		entry.order = append(entry.order, id)
	}
	entry.courses[id] = record
}

// HistoryOf returns the member's TermSummary sequence in term order,
// restricted to terms at or before upTo. Future-dated grade files that
// have already been ingested never leak into a report generated for an
// earlier target term. The returned slices are copies; callers cannot
// mutate the aggregator's state through them.
func (a *Aggregator) HistoryOf(key domain.MemberKey, upTo domain.Term) []domain.TermSummary {
	terms, ok := a.histories[key]
	if !ok {
		return nil
	}

	var history []domain.TermSummary
	for term, entry := range terms {
		if term.After(upTo) {
			continue
		}
		summary := entry.summary
		summary.Courses = make([]domain.CourseRecord, 0, len(entry.order))
		for _, id := range entry.order {
			summary.Courses = append(summary.Courses, entry.courses[id])
		}
		history = append(history, summary)
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Term.Before(history[j].Term)
	})
	return history
}

// LatestTerm returns the most recent term seen across all histories.
func (a *Aggregator) LatestTerm() (domain.Term, bool) {
	var latest domain.Term
	found := false
	for _, terms := range a.histories {
		for term := range terms {
			if !found || term.After(latest) {
				latest = term
				found = true
			}
		}
	}
	return latest, found
}
