package domain

import (
	"fmt"
	"regexp"
)

// Season is the half of the academic year a term falls in.
type Season string

const (
	// Spring terms are tagged SP in campus reports.
	Spring Season = "SP"
	// Fall terms are tagged FS in campus reports.
	Fall Season = "FS"
)

var termPattern = regexp.MustCompile(`^(SP|FS)\d{4}$`)

// Term identifies one academic term, e.g. SP2024 or FS2024.
// Terms are totally ordered by year, with spring before fall
// within the same year.
type Term struct {
	Season Season
	Year   int
}

// ParseTerm parses a term token of the form SPXXXX or FSXXXX.
func ParseTerm(s string) (Term, error) {
	if !termPattern.MatchString(s) {
		return Term{}, fmt.Errorf("term must be in format 'SPXXXX' or 'FSXXXX', got %q", s)
	}

	var year int
	fmt.Sscanf(s[2:], "%d", &year)
	return Term{Season: Season(s[:2]), Year: year}, nil
}

// String returns the campus report token for the term.
func (t Term) String() string {
	return fmt.Sprintf("%s%04d", t.Season, t.Year)
}

// IsZero reports whether the term is the zero value.
func (t Term) IsZero() bool {
	return t.Season == "" && t.Year == 0
}

// ordinal maps a term onto a single comparable integer.
func (t Term) ordinal() int {
	n := t.Year * 2
	if t.Season == Fall {
		n++
	}
	return n
}

// Compare returns -1, 0, or 1 as t is earlier than, equal to, or
// later than other.
func (t Term) Compare(other Term) int {
	switch {
	case t.ordinal() < other.ordinal():
		return -1
	case t.ordinal() > other.ordinal():
		return 1
	default:
		return 0
	}
}

// Before reports whether t is strictly earlier than other.
func (t Term) Before(other Term) bool {
	return t.Compare(other) < 0
}

// After reports whether t is strictly later than other.
func (t Term) After(other Term) bool {
	return t.Compare(other) > 0
}
