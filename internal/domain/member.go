package domain

import "strings"

// MemberKey is the normalized (first, last) name identity of a member.
// The roster and the grade reports are produced by different campus
// systems that only share name spelling, so all matching between the
// two funnels through NewMemberKey.
type MemberKey struct {
	First string
	Last  string
}

// NewMemberKey normalizes a first/last name pair into an identity key.
// Matching is case-insensitive and ignores surrounding whitespace.
func NewMemberKey(first, last string) MemberKey {
	return MemberKey{
		First: strings.ToLower(strings.TrimSpace(first)),
		Last:  strings.ToLower(strings.TrimSpace(last)),
	}
}

// KeyFromFullName derives a MemberKey from a single "First Last" name
// cell as found in grade reports. The first field is the first name,
// everything after it the last name.
func KeyFromFullName(name string) MemberKey {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return MemberKey{}
	}
	return NewMemberKey(fields[0], strings.Join(fields[1:], " "))
}

// IsZero reports whether the key is empty.
func (k MemberKey) IsZero() bool {
	return k.First == "" && k.Last == ""
}

// String returns the key as "first last", for log output.
func (k MemberKey) String() string {
	return k.First + " " + k.Last
}

// Member is one current member from the chapter roster. Identity is the
// normalized name key; the remaining attributes reflect the most recent
// roster snapshot.
type Member struct {
	FirstName  string
	LastName   string
	Email      string
	OutOfHouse bool
	RosterTerm Term
	Active     bool
}

// Key returns the member's normalized identity key.
func (m Member) Key() MemberKey {
	return NewMemberKey(m.FirstName, m.LastName)
}

// FullName returns the display name as "First Last".
func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}
