package domain

// TermSummary is the per-member, per-term aggregate derived from the
// grade report rows for that term. A member's academic history holds at
// most one TermSummary per distinct term.
type TermSummary struct {
	Term      Term
	Chapter   string
	NewMember bool

	// Shared per-term columns from the report.
	EnrollHours float64
	TermGPA     GPA // reported term GPA
	CumGPA      GPA // reported cumulative GPA
	PrivGPA     GPA // previous-term GPA as reported
	PrivCumGPA  GPA // previous-term cumulative GPA as reported

	Courses []CourseRecord
}

// ComputedGPA calculates the term GPA from the letter-graded courses:
// grade points weighted by credit hours. Absent when no course carries
// grade points (all pass/fail, or no courses).
func (ts TermSummary) ComputedGPA() GPA {
	var points, hours float64
	for _, c := range ts.Courses {
		if !c.Graded {
			continue
		}
		points += float64(c.Grade) * c.Hours
		hours += c.Hours
	}
	if hours == 0 {
		return GPA{}
	}
	return GPAOf(points / hours)
}

// EffectiveGPA is the term GPA used for classification: the GPA
// computed from course grades, falling back to the reported term GPA
// when no graded course exists.
func (ts TermSummary) EffectiveGPA() GPA {
	return ts.ComputedGPA().Or(ts.TermGPA)
}

// CreditHours sums the credit hours of all courses in the term.
func (ts TermSummary) CreditHours() float64 {
	var hours float64
	for _, c := range ts.Courses {
		hours += c.Hours
	}
	return hours
}

// FullTime reports whether the member's enrollment hours meet the
// given full-time threshold. Members below it (co-op, part-time) are
// exempt from physical study hour assignment but remain tracked.
func (ts TermSummary) FullTime(threshold float64) bool {
	return ts.EnrollHours >= threshold
}
