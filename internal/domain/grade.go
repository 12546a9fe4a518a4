package domain

import "strings"

// Grade is a letter grade expressed as grade points per credit hour.
type Grade int

const (
	GradeF Grade = 0
	GradeD Grade = 1
	GradeC Grade = 2
	GradeB Grade = 3
	GradeA Grade = 4
)

var gradeLetters = map[string]Grade{
	"A": GradeA,
	"B": GradeB,
	"C": GradeC,
	"D": GradeD,
	"F": GradeF,
}

// ParseGrade maps a letter grade to its grade points. The second return
// is false for anything that is not A-F (pass/fail marks, withdrawals,
// in-progress grades); such courses carry no grade points.
func ParseGrade(letter string) (Grade, bool) {
	g, ok := gradeLetters[strings.ToUpper(strings.TrimSpace(letter))]
	return g, ok
}

// String returns the letter for the grade.
func (g Grade) String() string {
	switch g {
	case GradeA:
		return "A"
	case GradeB:
		return "B"
	case GradeC:
		return "C"
	case GradeD:
		return "D"
	case GradeF:
		return "F"
	default:
		return ""
	}
}

// GPA is a grade point average that may be absent from a report.
// Campus extracts leave GPA cells blank for new members and for
// pass/fail-only terms, so absence is a normal state, not an error.
type GPA struct {
	Value float64
	Valid bool
}

// GPAOf returns a present GPA value.
func GPAOf(v float64) GPA {
	return GPA{Value: v, Valid: true}
}

// Or returns g if present, otherwise fallback.
func (g GPA) Or(fallback GPA) GPA {
	if g.Valid {
		return g
	}
	return fallback
}
