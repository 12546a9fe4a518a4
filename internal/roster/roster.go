// Package roster builds the canonical member set from the Greek-life
// roster report. The roster is the authority on who is currently a
// member: grade data for anyone not on it is discarded upstream.
package roster

import (
	"fmt"
	"iter"

	"sctk/internal/domain"
	"sctk/internal/schema"
)

// Columns is the exact header of the roster report extract.
var Columns = []string{
	"Last Name",
	"First Name",
	"Chapter Name",
	"in/out House",
	"Email",
	"Term",
}

// DefaultHeaderRow is where the roster extract usually places its
// header, after three rows of preamble.
const DefaultHeaderRow = 3

// FormatError reports a roster file whose contents violate the format
// guarantees: mixed Term values, a malformed term token, or a house
// status other than IN/OUT.
type FormatError struct {
	Row     int
	Message string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("roster: row %d: %s", e.Row+1, e.Message)
	}
	return "roster: " + e.Message
}

// Roster is the deduplicated set of current members, in file order.
type Roster struct {
	members []domain.Member
	index   map[domain.MemberKey]int
	term    domain.Term
}

// Load builds the member set from a validated roster table. Each
// distinct normalized (first, last) pair yields exactly one Member
// regardless of row order; the first row for a name wins. All rows in
// one roster file must share a single Term value.
func Load(table *schema.Table) (*Roster, error) {
	r := &Roster{index: make(map[domain.MemberKey]int)}

	for i := 0; i < table.Len(); i++ {
		first := table.Cell(i, "First Name")
		last := table.Cell(i, "Last Name")
		if first == "" && last == "" {
			continue // trailing blank rows are common in exports
		}

		house := table.Cell(i, "in/out House")
		if house != "IN" && house != "OUT" {
			return nil, &FormatError{
				Row:     i,
				Message: fmt.Sprintf("in/out House must be 'IN' or 'OUT', got %q", house),
			}
		}

		term, err := domain.ParseTerm(table.Cell(i, "Term"))
		if err != nil {
			return nil, &FormatError{Row: i, Message: err.Error()}
		}
		if r.term.IsZero() {
			r.term = term
		} else if term != r.term {
			return nil, &FormatError{
				Row:     i,
				Message: fmt.Sprintf("more than one term in roster: %s and %s", r.term, term),
			}
		}

		member := domain.Member{
			FirstName:  first,
			LastName:   last,
			Email:      table.Cell(i, "Email"),
			OutOfHouse: house == "OUT",
			RosterTerm: term,
			Active:     true,
		}
		key := member.Key()
		if _, exists := r.index[key]; exists {
			continue
		}
		r.index[key] = len(r.members)
		r.members = append(r.members, member)
	}

	if len(r.members) == 0 {
		return nil, &FormatError{Row: -1, Message: "no members found"}
	}
	return r, nil
}

// Term returns the single term the roster file is for.
func (r *Roster) Term() domain.Term {
	return r.term
}

// Len returns the number of distinct members.
func (r *Roster) Len() int {
	return len(r.members)
}

// Contains reports whether the key belongs to a current member.
func (r *Roster) Contains(key domain.MemberKey) bool {
	_, ok := r.index[key]
	return ok
}

// Member returns the member for the key, if present.
func (r *Roster) Member(key domain.MemberKey) (domain.Member, bool) {
	idx, ok := r.index[key]
	if !ok {
		return domain.Member{}, false
	}
	return r.members[idx], true
}

// All yields every member in stable file order. The sequence is
// restartable: ranging over it again starts from the beginning.
func (r *Roster) All() iter.Seq[domain.Member] {
	return func(yield func(domain.Member) bool) {
		for _, m := range r.members {
			if !yield(m) {
				return
			}
		}
	}
}
