package report

import (
	"sctk/internal/domain"
)

// StudyCheckBuilder produces the weekly study check sheet: in-house
// members holding assigned study hours, alternately split into
// first-half and second-half slots. The split is a starting point the
// study check chairman adjusts by hand.
type StudyCheckBuilder struct{}

// Build renders the study check report for the target term.
func (StudyCheckBuilder) Build(in Inputs, term domain.Term) (*Document, error) {
	rows := collectRows(in, term)
	sortRows(rows)

	doc := NewDocument("Study_Check_Report", term)
	sheet := doc.AddSheet("Study Checks")

	sheet.AppendRow(String("Name"), String("Study Hours"), String("Half"))

	n := 0
	for _, row := range rows {
		if row.member.OutOfHouse || !row.classified {
			continue
		}
		if row.result.HoursExempt || row.result.AssignedHours == 0 {
			continue
		}
		half := "First"
		if n%2 == 1 {
			half = "Second"
		}
		sheet.AppendRow(
			String(row.member.FullName()),
			Int(row.result.AssignedHours),
			String(half),
		)
		n++
	}

	return doc, nil
}
