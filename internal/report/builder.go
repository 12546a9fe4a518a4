package report

import (
	"log/slog"
	"sort"

	"sctk/internal/domain"
	"sctk/internal/gradebook"
	"sctk/internal/roster"
	"sctk/internal/standing"
)

// Inputs bundles the models every builder consumes.
type Inputs struct {
	Roster     *roster.Roster
	Grades     *gradebook.Aggregator
	Classifier *standing.Classifier
	Logger     *slog.Logger
}

func (in Inputs) logger() *slog.Logger {
	if in.Logger != nil {
		return in.Logger
	}
	return slog.Default()
}

// Builder produces one report document for a target term.
type Builder interface {
	Build(in Inputs, term domain.Term) (*Document, error)
}

// pledgeClass returns the earliest term a member appears as a new
// member, absent when no term marks them as one (older members whose
// pledge term predates the available grade files).
func pledgeClass(history []domain.TermSummary) (domain.Term, bool) {
	for _, ts := range history {
		if ts.NewMember {
			return ts.Term, true
		}
	}
	return domain.Term{}, false
}

// previousSummary returns the latest term strictly before upTo that
// carries usable grade data. Terms with no grade coverage are skipped,
// so a co-op gap walks further back instead of reporting a blank.
func previousSummary(history []domain.TermSummary, upTo domain.Term) (domain.TermSummary, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		ts := history[i]
		if !ts.Term.Before(upTo) {
			continue
		}
		if ts.EffectiveGPA().Valid {
			return ts, true
		}
	}
	return domain.TermSummary{}, false
}

// memberRow is the classified per-member view the roster-ordered
// reports sort and render.
type memberRow struct {
	member      domain.Member
	pledgeClass domain.Term
	hasPledge   bool
	result      standing.Result
	classified  bool
	history     []domain.TermSummary
}

// collectRows classifies every roster member as of the target term.
// Members with no usable history stay in the output unclassified; the
// builders render them as name-only rows rather than dropping them.
func collectRows(in Inputs, term domain.Term) []memberRow {
	log := in.logger()

	var rows []memberRow
	for m := range in.Roster.All() {
		row := memberRow{member: m}
		row.history = in.Grades.HistoryOf(m.Key(), term)
		row.pledgeClass, row.hasPledge = pledgeClass(row.history)

		res, err := in.Classifier.Classify(m.Key(), row.history, term)
		if err != nil {
			log.Warn("member has no grade data at or before term",
				"member", m.Key().String(), "term", term.String())
		} else {
			row.result = res
			row.classified = true
		}
		rows = append(rows, row)
	}
	return rows
}

// sortRows orders rows the way the standing reports list members:
// out-of-house before in-house, then pledge class (year, spring before
// fall, unknown classes last), then last name.
func sortRows(rows []memberRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.member.OutOfHouse != b.member.OutOfHouse {
			return a.member.OutOfHouse
		}
		if a.hasPledge != b.hasPledge {
			return a.hasPledge
		}
		if a.hasPledge && b.hasPledge {
			if c := a.pledgeClass.Compare(b.pledgeClass); c != 0 {
				return c < 0
			}
		}
		return a.member.LastName < b.member.LastName
	})
}
