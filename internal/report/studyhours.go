package report

import (
	"fmt"
	"sort"

	"sctk/internal/domain"
)

// StudyHourBuilder produces the per-term study hour assignment report:
// one row per roster member with standing tier and assigned hours,
// followed by the tier key and cohort GPA statistics.
type StudyHourBuilder struct{}

// Build renders the study hour report for the target term.
func (StudyHourBuilder) Build(in Inputs, term domain.Term) (*Document, error) {
	rows := collectRows(in, term)
	sortRows(rows)

	doc := NewDocument("Study_Hour_Report", term)
	sheet := doc.AddSheet("Study Hours")

	sheet.AppendRow(
		String("Name"), String("Pledge Class"), String("Standing"),
		String("Cum GPA"), String("Prev Term"), String("Prev GPA"),
		String("Term"), String("Term GPA"), String("Study Hours"),
	)

	for _, row := range rows {
		cells := []Cell{String(row.member.FullName())}
		if row.hasPledge {
			cells = append(cells, String(row.pledgeClass.String()))
		} else {
			cells = append(cells, Empty())
		}

		if !row.classified {
			// No grade data at or before the term: name-only row so
			// the chairman still sees the member on the list.
			cells = append(cells, Empty(), Empty(), Empty(), Empty(), Empty(), Empty(), Empty())
			sheet.Rows = append(sheet.Rows, cells)
			continue
		}

		prevTerm, prevGPA := Empty(), Empty()
		if prev, ok := previousSummary(row.history, row.result.Term); ok {
			prevTerm = String(prev.Term.String())
			prevGPA = FloatOr(prev.EffectiveGPA())
		}

		hours := Empty()
		if !row.result.HoursExempt && row.result.AssignedHours > 0 {
			hours = Int(row.result.AssignedHours)
		}

		cells = append(cells,
			String(row.result.Tier.Name),
			FloatOr(row.result.CumGPA),
			prevTerm,
			prevGPA,
			String(row.result.Term.String()),
			FloatOr(row.result.TermGPA),
			hours,
		)
		sheet.Rows = append(sheet.Rows, cells)
	}

	writeTierKey(sheet, in)
	writeCohortStats(sheet, rows)

	return doc, nil
}

// writeTierKey appends the legend mapping tiers to their GPA
// thresholds and assigned hours.
func writeTierKey(sheet *Sheet, in Inputs) {
	cfg := in.Classifier.Config()

	sheet.AppendRow()
	sheet.AppendRow(String("Key"))
	sheet.AppendRow(
		String("Standing"), String("Min Term GPA"), String("Min Cum GPA"),
		String("Study Hours"), String("Strike"),
	)

	idx := func(name string) int {
		for i, t := range cfg.Tiers {
			if t.Name == name {
				return i
			}
		}
		return -1
	}
	strikeIdx := idx(cfg.StrikeTier)
	superIdx := idx(cfg.SuperStrikeTier)

	for i, tier := range cfg.Tiers {
		mark := Empty()
		switch {
		case superIdx >= 0 && i >= superIdx:
			mark = String("Super Strike")
		case strikeIdx >= 0 && i >= strikeIdx:
			mark = String("Strike")
		}
		sheet.AppendRow(
			String(tier.Name),
			Float(tier.MinGPA),
			Float(tier.MinCumGPA),
			Int(cfg.StudyHours[tier.Name]),
			mark,
		)
	}
}

// writeCohortStats appends the whole-house average term GPA and the
// per-pledge-class, GPA-ranked cohort statistics.
func writeCohortStats(sheet *Sheet, rows []memberRow) {
	type cohort struct {
		class    domain.Term
		count    int
		termSum  float64
		termN    int
		prevSum  float64
		prevN    int
		termMean domain.GPA
	}

	var (
		houseSum float64
		houseN   int
		cohorts  = map[domain.Term]*cohort{}
	)
	for _, row := range rows {
		if !row.classified {
			continue
		}
		gpa := row.result.TermGPA
		if gpa.Valid {
			houseSum += gpa.Value
			houseN++
		}
		if !row.hasPledge {
			continue
		}
		c := cohorts[row.pledgeClass]
		if c == nil {
			c = &cohort{class: row.pledgeClass}
			cohorts[row.pledgeClass] = c
		}
		c.count++
		if gpa.Valid {
			c.termSum += gpa.Value
			c.termN++
		}
		if prev, ok := previousSummary(row.history, row.result.Term); ok {
			if g := prev.EffectiveGPA(); g.Valid {
				c.prevSum += g.Value
				c.prevN++
			}
		}
	}

	sheet.AppendRow()
	sheet.AppendRow(String("House Average Term GPA"), houseAverage(houseSum, houseN))

	classes := make([]*cohort, 0, len(cohorts))
	for _, c := range cohorts {
		if c.termN > 0 {
			c.termMean = domain.GPAOf(c.termSum / float64(c.termN))
		}
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].class.Before(classes[j].class)
	})

	// Rank cohorts by mean term GPA, highest first; cohorts with no
	// usable GPA go unranked.
	ranked := make([]*cohort, len(classes))
	copy(ranked, classes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].termMean.Or(domain.GPAOf(-1)).Value >
			ranked[j].termMean.Or(domain.GPAOf(-1)).Value
	})
	rankOf := map[domain.Term]int{}
	for i, c := range ranked {
		if c.termMean.Valid {
			rankOf[c.class] = i + 1
		}
	}

	sheet.AppendRow()
	sheet.AppendRow(
		String("Pledge Class"), String("Members"), String("Avg Term GPA"),
		String("Avg Prev GPA"), String("Change"), String("Rank"),
	)
	for _, c := range classes {
		termMean, prevMean, change := Empty(), Empty(), Empty()
		if c.termMean.Valid {
			termMean = Float(c.termMean.Value)
		}
		if c.prevN > 0 {
			prevMean = Float(c.prevSum / float64(c.prevN))
		}
		if c.termMean.Valid && c.prevN > 0 {
			change = Float(c.termMean.Value - c.prevSum/float64(c.prevN))
		}
		rank := Empty()
		if r, ok := rankOf[c.class]; ok {
			rank = String(fmt.Sprintf("%d", r))
		}
		sheet.AppendRow(
			String(c.class.String()), Int(c.count), termMean, prevMean, change, rank,
		)
	}
}

func houseAverage(sum float64, n int) Cell {
	if n == 0 {
		return Empty()
	}
	return Float(sum / float64(n))
}
