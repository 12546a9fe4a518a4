package standing

import (
	"fmt"

	"sctk/internal/domain"
)

// Classifier applies the scholarship policy to academic histories.
type Classifier struct {
	cfg Config
}

// NewClassifier validates the configuration and returns a classifier.
func NewClassifier(cfg Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid standing configuration: %w", err)
	}
	return &Classifier{cfg: cfg}, nil
}

// Config returns the policy the classifier was built with.
func (c *Classifier) Config() Config {
	return c.cfg
}

// HoursFor returns the configured study hour count for a tier.
func (c *Classifier) HoursFor(tier Tier) int {
	return c.cfg.StudyHours[tier.Name]
}

// Classify evaluates a member's history as of upTo. The history must
// be in term order, as produced by the aggregator; entries after upTo
// are ignored. It returns *ClassificationError when no term at or
// before upTo carries usable grade data.
func (c *Classifier) Classify(key domain.MemberKey, history []domain.TermSummary, upTo domain.Term) (Result, error) {
	var (
		current    *domain.TermSummary
		currentGPA domain.GPA
		strikes    int
		supers     int
	)

	strikeIdx := c.cfg.tierIndex(c.cfg.StrikeTier)
	superIdx := c.cfg.tierIndex(c.cfg.SuperStrikeTier)

	for i := range history {
		ts := history[i]
		if ts.Term.After(upTo) {
			continue
		}

		gpa := ts.EffectiveGPA()
		if !gpa.Valid {
			// A term with no graded data: no tier, no strike. Gaps in
			// coverage are treated as missing data, never as failure.
			continue
		}

		idx, _, ok := c.matchTier(gpa, ts.CumGPA, ts.NewMember)
		if !ok {
			// New-member grace period for this term.
			continue
		}

		if strikeIdx >= 0 && idx >= strikeIdx {
			strikes++
		}
		if superIdx >= 0 && idx >= superIdx {
			supers++
		}

		current = &history[i]
		currentGPA = gpa
	}

	if current == nil {
		return Result{}, &ClassificationError{Member: key, Term: upTo}
	}

	idx, tier, ok := c.matchTier(currentGPA, current.CumGPA, current.NewMember)
	if !ok {
		// The latest usable term fell under the grace period; the
		// member holds the top tier with whatever strikes history
		// already accumulated.
		idx, tier = 0, c.cfg.Tiers[0]
	}

	result := Result{
		Term:          current.Term,
		Tier:          tier,
		TierIndex:     idx,
		TermGPA:       currentGPA,
		CumGPA:        current.CumGPA,
		NewMember:     current.NewMember,
		AssignedHours: c.cfg.StudyHours[tier.Name],
		Strikes:       strikes,
		SuperStrikes:  supers,
	}

	if !current.FullTime(c.cfg.FullTimeHours) {
		result.HoursExempt = true
		result.AssignedHours = 0
	}

	return result, nil
}

// StrikeMarks reports whether the term on its own earns a strike and
// a super-strike. Terms without usable grade data and terms under the
// new-member grace period earn neither.
func (c *Classifier) StrikeMarks(ts domain.TermSummary) (strike, super bool) {
	gpa := ts.EffectiveGPA()
	if !gpa.Valid {
		return false, false
	}
	idx, _, ok := c.matchTier(gpa, ts.CumGPA, ts.NewMember)
	if !ok {
		return false, false
	}
	strikeIdx := c.cfg.tierIndex(c.cfg.StrikeTier)
	superIdx := c.cfg.tierIndex(c.cfg.SuperStrikeTier)
	return strikeIdx >= 0 && idx >= strikeIdx, superIdx >= 0 && idx >= superIdx
}

// matchTier finds the highest tier satisfied by both the term GPA and
// the cumulative GPA. An absent cumulative GPA cannot fail a
// threshold; extracts leave it blank for first-term members. The third
// return is false when the matched tier does not apply to new members
// and the term is a new-member term.
func (c *Classifier) matchTier(termGPA, cumGPA domain.GPA, newMember bool) (int, Tier, bool) {
	for i, tier := range c.cfg.Tiers {
		if termGPA.Value < tier.MinGPA {
			continue
		}
		if cumGPA.Valid && cumGPA.Value < tier.MinCumGPA {
			continue
		}
		if newMember && !tier.AppliesToNewMembers {
			return i, tier, false
		}
		return i, tier, true
	}
	// Unreachable with a valid catch-all tier, but keep the zero
	// answer well-defined.
	last := len(c.cfg.Tiers) - 1
	return last, c.cfg.Tiers[last], true
}
