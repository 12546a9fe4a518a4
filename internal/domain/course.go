package domain

// CourseRecord is one row of a campus grade report, immutable once
// parsed. The per-term columns (enrollment hours, GPAs, new-member
// flag) are repeated on every row of a member's block and are carried
// here verbatim.
type CourseRecord struct {
	Member  MemberKey
	Term    Term
	Chapter string

	Class     string
	CatalogNo string
	Hours     float64
	Letter    string
	Grade     Grade
	Graded    bool // Letter is A-F and contributes grade points
	GradeType string

	EnrollHours float64
	TermGPA     GPA
	CumGPA      GPA
	PrivGPA     GPA
	PrivCumGPA  GPA
	NewMember   bool
}

// CourseID identifies a course offering within a term.
type CourseID struct {
	Class     string
	CatalogNo string
}

// ID returns the record's course identifier.
func (c CourseRecord) ID() CourseID {
	return CourseID{Class: c.Class, CatalogNo: c.CatalogNo}
}
