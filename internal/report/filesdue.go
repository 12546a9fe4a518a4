package report

import (
	"fmt"
	"sort"

	"sctk/internal/domain"
)

// FilesDueBuilder produces the course file checklist: every course
// taken by a roster member in the target term, with one checklist row
// per enrolled member. Grade rows for people not on the roster never
// reach the aggregator, so departed members are absent by
// construction.
type FilesDueBuilder struct{}

// Build renders the files-due report for the target term.
func (FilesDueBuilder) Build(in Inputs, term domain.Term) (*Document, error) {
	type enrollment struct {
		id      domain.CourseID
		members []string
	}

	courses := map[domain.CourseID]*enrollment{}
	for m := range in.Roster.All() {
		for _, ts := range in.Grades.HistoryOf(m.Key(), term) {
			if ts.Term.Compare(term) != 0 {
				continue
			}
			for _, course := range ts.Courses {
				id := course.ID()
				e := courses[id]
				if e == nil {
					e = &enrollment{id: id}
					courses[id] = e
				}
				e.members = append(e.members, m.FullName())
			}
		}
	}

	sorted := make([]*enrollment, 0, len(courses))
	for _, e := range courses {
		sort.Strings(e.members)
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].id, sorted[j].id
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		return a.CatalogNo < b.CatalogNo
	})

	doc := NewDocument("Files_Due_Report", term)
	sheet := doc.AddSheet("Files Due")

	sheet.AppendRow(String(fmt.Sprintf("File Responsibility Report for %s", term)))
	sheet.AppendRow(String(fmt.Sprintf("Total: %d courses", len(sorted))))
	sheet.AppendRow()

	for _, e := range sorted {
		sheet.AppendRow(String(e.id.Class), String(e.id.CatalogNo))
		for _, name := range e.members {
			// Leading blank column keeps member rows indented under
			// their course block; trailing cell is the checkbox slot.
			sheet.AppendRow(Empty(), String(name), Empty())
		}
	}

	return doc, nil
}
