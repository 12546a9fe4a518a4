// Package standing classifies a member's academic history into a
// standing tier and accumulates strikes per the chapter's scholarship
// policy. Classification is a pure function of the history up to the
// requested term and the tier configuration; nothing is cached, so a
// threshold change is always reflected on the next call.
package standing

import (
	"fmt"

	"sctk/internal/domain"
)

// Tier is one academic-standing bucket. A member lands in the highest
// tier whose term and cumulative minimums are BOTH satisfied.
type Tier struct {
	Name      string
	MinGPA    float64 // minimum term GPA, inclusive
	MinCumGPA float64 // minimum cumulative GPA, inclusive
	// AppliesToNewMembers controls the grace period: a false value
	// makes new-member terms skip this tier (and its strikes) entirely.
	AppliesToNewMembers bool
}

// Config is the resolved scholarship policy the classifier runs on.
// It is constructed once and passed explicitly; there is no ambient
// configuration lookup.
type Config struct {
	// Tiers in descending GPA order, best standing first. The last
	// tier acts as the catch-all and should have zero minimums.
	Tiers []Tier
	// FullTimeHours is the enrollment-hour cutoff below which a member
	// (co-op, part-time) is exempt from physical study hours.
	FullTimeHours float64
	// StudyHours assigns the physical study hour count per tier name.
	StudyHours map[string]int
	// StrikeTier names the tier at or below which a term earns a
	// strike; SuperStrikeTier the (lower) tier earning a super-strike.
	StrikeTier      string
	SuperStrikeTier string
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if len(c.Tiers) == 0 {
		return fmt.Errorf("at least one tier is required")
	}
	names := make(map[string]bool, len(c.Tiers))
	for i, tier := range c.Tiers {
		if tier.Name == "" {
			return fmt.Errorf("tier %d has no name", i)
		}
		if names[tier.Name] {
			return fmt.Errorf("duplicate tier name %q", tier.Name)
		}
		names[tier.Name] = true
		if tier.MinGPA < 0 || tier.MinGPA > 4 || tier.MinCumGPA < 0 || tier.MinCumGPA > 4 {
			return fmt.Errorf("tier %q: GPA minimums must be between 0.00 and 4.00", tier.Name)
		}
		if i > 0 && tier.MinGPA > c.Tiers[i-1].MinGPA {
			return fmt.Errorf("tier %q: tiers must be in descending GPA order", tier.Name)
		}
	}
	if last := c.Tiers[len(c.Tiers)-1]; last.MinGPA != 0 || last.MinCumGPA != 0 {
		return fmt.Errorf("last tier %q must be a catch-all with zero minimums", last.Name)
	}
	if c.StrikeTier != "" && !names[c.StrikeTier] {
		return fmt.Errorf("strike tier %q is not a configured tier", c.StrikeTier)
	}
	if c.SuperStrikeTier != "" && !names[c.SuperStrikeTier] {
		return fmt.Errorf("super-strike tier %q is not a configured tier", c.SuperStrikeTier)
	}
	for name := range c.StudyHours {
		if !names[name] {
			return fmt.Errorf("study hours configured for unknown tier %q", name)
		}
	}
	if c.FullTimeHours <= 0 {
		return fmt.Errorf("full-time hours cutoff must be positive")
	}
	return nil
}

// tierIndex returns the ordinal of a tier name, or -1 when unset.
func (c Config) tierIndex(name string) int {
	for i, tier := range c.Tiers {
		if tier.Name == name {
			return i
		}
	}
	return -1
}

// ClassificationError reports a member who cannot be classified
// because they have no usable grade history at or before the
// requested term. Callers must surface this as insufficient data,
// never default it to good standing.
type ClassificationError struct {
	Member domain.MemberKey
	Term   domain.Term
}

// Error implements the error interface.
func (e *ClassificationError) Error() string {
	return fmt.Sprintf("standing: no grade history for %q at or before %s", e.Member, e.Term)
}

// Result is the classification of one member as of one term.
type Result struct {
	// Term is the latest term at or before the requested term with
	// usable grade data; the tier and GPAs are evaluated there.
	Term      domain.Term
	Tier      Tier
	TierIndex int
	TermGPA   domain.GPA
	CumGPA    domain.GPA
	NewMember bool

	// AssignedHours is the physical study hour count for the tier,
	// zeroed when HoursExempt.
	AssignedHours int
	// HoursExempt marks members below the full-time cutoff (co-op),
	// who are not assigned physical study hours but remain tracked.
	HoursExempt bool

	// Strikes and SuperStrikes accumulate over the member's entire
	// history at or before the requested term.
	Strikes      int
	SuperStrikes int
}
