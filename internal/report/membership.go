package report

import (
	"fmt"
	"sort"

	"sctk/internal/domain"
)

// MembershipBuilder produces the membership standing report: a master
// sheet totalling every member's strikes through the target term, plus
// one sheet per member listing their full course history with per-term
// GPAs and strike marks.
type MembershipBuilder struct{}

// Build renders the membership report as of the target term.
func (MembershipBuilder) Build(in Inputs, term domain.Term) (*Document, error) {
	rows := collectRows(in, term)
	sortRows(rows)

	doc := NewDocument("Member_Report", term)
	master := doc.AddSheet("Overview")

	master.AppendRow(
		String("Name"), String("Pledge Class"), String("Terms"),
		String("Strikes"), String("Super Strikes"),
	)

	names := map[string]int{}
	for _, row := range rows {
		pledge := Empty()
		if row.hasPledge {
			pledge = String(row.pledgeClass.String())
		}

		strikes, supers := 0, 0
		if row.classified {
			strikes, supers = row.result.Strikes, row.result.SuperStrikes
		}
		master.AppendRow(
			String(row.member.FullName()),
			pledge,
			Int(len(row.history)),
			Int(strikes),
			Int(supers),
		)

		// The course listing covers the whole history, including
		// members whose terms carry no classifiable GPA at all
		// (pass/fail-only semesters).
		if len(row.history) > 0 {
			writeMemberSheet(doc, in, row, uniqueSheetName(names, row.member.FullName()))
		}
	}

	return doc, nil
}

// uniqueSheetName disambiguates members sharing a display name, since
// sheet names must be unique within a workbook.
func uniqueSheetName(seen map[string]int, name string) string {
	base := SafeSheetName(name)
	seen[base]++
	if n := seen[base]; n > 1 {
		return SafeSheetName(fmt.Sprintf("%.27s (%d)", base, n))
	}
	return base
}

// writeMemberSheet renders one member's term-by-term history: the
// per-term summary block with strike marks, then every course row.
func writeMemberSheet(doc *Document, in Inputs, row memberRow, name string) {
	sheet := doc.AddSheet(name)

	sheet.AppendRow(String(row.member.FullName()))
	sheet.AppendRow()
	sheet.AppendRow(
		String("Term"), String("Term GPA"), String("Cum GPA"),
		String("Hours"), String("Strike"), String("Super Strike"),
	)
	for _, ts := range row.history {
		strike, super := in.Classifier.StrikeMarks(ts)
		sheet.AppendRow(
			String(ts.Term.String()),
			FloatOr(ts.EffectiveGPA()),
			FloatOr(ts.CumGPA),
			Float(ts.CreditHours()),
			markCell(strike),
			markCell(super),
		)
	}

	sheet.AppendRow()
	sheet.AppendRow(
		String("Term"), String("Catalog No"), String("Class"),
		String("Hours"), String("Grade"),
	)
	for _, ts := range row.history {
		courses := make([]domain.CourseRecord, len(ts.Courses))
		copy(courses, ts.Courses)
		sort.Slice(courses, func(i, j int) bool {
			if courses[i].CatalogNo != courses[j].CatalogNo {
				return courses[i].CatalogNo < courses[j].CatalogNo
			}
			return courses[i].Class < courses[j].Class
		})
		for _, course := range courses {
			sheet.AppendRow(
				String(ts.Term.String()),
				String(course.CatalogNo),
				String(course.Class),
				Float(course.Hours),
				String(course.Letter),
			)
		}
	}
}

func markCell(marked bool) Cell {
	if marked {
		return String("X")
	}
	return Empty()
}
