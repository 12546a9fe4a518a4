package standing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sctk/internal/domain"
)

func testConfig() Config {
	return Config{
		Tiers: []Tier{
			{Name: "GoodStanding", MinGPA: 3.00, MinCumGPA: 2.75, AppliesToNewMembers: true},
			{Name: "StudyHours1", MinGPA: 2.75, MinCumGPA: 2.50, AppliesToNewMembers: true},
			{Name: "StudyHours2", MinGPA: 2.50, MinCumGPA: 2.25, AppliesToNewMembers: true},
			{Name: "Probation", MinGPA: 0, MinCumGPA: 0, AppliesToNewMembers: false},
		},
		FullTimeHours:   12,
		StudyHours:      map[string]int{"GoodStanding": 0, "StudyHours1": 2, "StudyHours2": 4, "Probation": 6},
		StrikeTier:      "StudyHours2",
		SuperStrikeTier: "Probation",
	}
}

func term(s string) domain.Term {
	t, err := domain.ParseTerm(s)
	if err != nil {
		panic(err)
	}
	return t
}

// summary builds a TermSummary carrying reported GPA values, the way
// extracts without course detail present them.
func summary(termToken string, termGPA, cumGPA float64, enrollHours float64, newMember bool) domain.TermSummary {
	ts := domain.TermSummary{
		Term:        term(termToken),
		Chapter:     "Beta Sig",
		NewMember:   newMember,
		EnrollHours: enrollHours,
		TermGPA:     domain.GPAOf(termGPA),
		CumGPA:      domain.GPAOf(cumGPA),
	}
	return ts
}

func mustClassifier(t *testing.T, cfg Config) *Classifier {
	t.Helper()
	c, err := NewClassifier(cfg)
	require.NoError(t, err)
	return c
}

var jane = domain.NewMemberKey("Jane", "Doe")

func TestClassifyTopTier(t *testing.T) {
	c := mustClassifier(t, testConfig())

	res, err := c.Classify(jane, []domain.TermSummary{
		summary("SP2023", 3.5, 3.2, 15, false),
	}, term("SP2023"))
	require.NoError(t, err)

	assert.Equal(t, "GoodStanding", res.Tier.Name)
	assert.Equal(t, 0, res.Strikes)
	assert.Equal(t, 0, res.SuperStrikes)
	assert.Equal(t, 0, res.AssignedHours)
	assert.False(t, res.HoursExempt)
}

func TestClassifyBothThresholdsMustHold(t *testing.T) {
	c := mustClassifier(t, testConfig())

	// Term GPA clears GoodStanding but cumulative does not.
	res, err := c.Classify(jane, []domain.TermSummary{
		summary("SP2023", 3.5, 2.6, 15, false),
	}, term("SP2023"))
	require.NoError(t, err)

	assert.Equal(t, "StudyHours1", res.Tier.Name)
	assert.Equal(t, 2, res.AssignedHours)
}

func TestClassifyZeroHistory(t *testing.T) {
	c := mustClassifier(t, testConfig())

	_, err := c.Classify(jane, nil, term("SP2023"))
	var classErr *ClassificationError
	require.ErrorAs(t, err, &classErr)
	assert.Equal(t, jane, classErr.Member)
}

func TestClassifyIgnoresLaterTerms(t *testing.T) {
	c := mustClassifier(t, testConfig())

	history := []domain.TermSummary{
		summary("SP2023", 2.0, 2.0, 15, false),
		summary("FS2023", 3.5, 3.0, 15, false),
	}

	res, err := c.Classify(jane, history, term("SP2023"))
	require.NoError(t, err)
	assert.Equal(t, term("SP2023"), res.Term)
	assert.Equal(t, "Probation", res.Tier.Name)

	_, err = c.Classify(jane, history[1:], term("SP2023"))
	require.Error(t, err)
}

func TestStrikeAccumulation(t *testing.T) {
	c := mustClassifier(t, testConfig())

	history := []domain.TermSummary{
		summary("SP2022", 2.6, 2.4, 15, false), // StudyHours2: strike
		summary("FS2022", 1.9, 2.1, 15, false), // Probation: strike + super
		summary("SP2023", 3.2, 2.8, 15, false), // GoodStanding
	}

	res, err := c.Classify(jane, history, term("SP2023"))
	require.NoError(t, err)
	assert.Equal(t, "GoodStanding", res.Tier.Name)
	assert.Equal(t, 2, res.Strikes)
	assert.Equal(t, 1, res.SuperStrikes)
}

func TestStrikesMonotonicAndStable(t *testing.T) {
	c := mustClassifier(t, testConfig())

	history := []domain.TermSummary{
		summary("SP2022", 2.3, 2.3, 15, false),
	}
	res, err := c.Classify(jane, history, term("SP2022"))
	require.NoError(t, err)
	require.Equal(t, 1, res.Strikes)

	// A later qualifying term adds a strike.
	history = append(history, summary("FS2022", 2.0, 2.1, 15, false))
	res, err = c.Classify(jane, history, term("FS2022"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Strikes)

	// A later non-qualifying term leaves the count unchanged.
	history = append(history, summary("SP2023", 3.5, 3.0, 15, false))
	res, err = c.Classify(jane, history, term("SP2023"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Strikes)
}

func TestStrikesCountBackfilledEarlierTerms(t *testing.T) {
	c := mustClassifier(t, testConfig())

	// FS2022 was ingested first; the chronologically earlier SP2022
	// file arrived later. Both count toward the FS2022 report.
	history := []domain.TermSummary{
		summary("SP2022", 2.0, 2.0, 15, false),
		summary("FS2022", 2.6, 2.4, 15, false),
	}

	res, err := c.Classify(jane, history, term("FS2022"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Strikes)
	assert.Equal(t, 1, res.SuperStrikes)
}

func TestNewMemberGracePeriod(t *testing.T) {
	c := mustClassifier(t, testConfig())

	// Probation does not apply to new members: no tier, no strike.
	history := []domain.TermSummary{
		summary("SP2023", 1.5, 1.5, 15, true),
	}

	_, err := c.Classify(jane, history, term("SP2023"))
	var classErr *ClassificationError
	require.ErrorAs(t, err, &classErr)

	// Once a later term has usable standing, the graced term still
	// contributes no strike.
	history = append(history, summary("FS2023", 2.0, 1.8, 15, false))
	res, err := c.Classify(jane, history, term("FS2023"))
	require.NoError(t, err)
	assert.Equal(t, "Probation", res.Tier.Name)
	assert.Equal(t, 1, res.Strikes)
	assert.Equal(t, 1, res.SuperStrikes)
}

func TestPartTimeExemption(t *testing.T) {
	c := mustClassifier(t, testConfig())

	// Co-op member: 6 enrollment hours, below the 12-hour cutoff.
	history := []domain.TermSummary{
		summary("SP2023", 2.6, 2.4, 6, false),
	}

	res, err := c.Classify(jane, history, term("SP2023"))
	require.NoError(t, err)
	assert.True(t, res.HoursExempt)
	assert.Equal(t, 0, res.AssignedHours)
	// Still tracked academically: the tier and strike stand.
	assert.Equal(t, "StudyHours2", res.Tier.Name)
	assert.Equal(t, 1, res.Strikes)
}

func TestMissingCumulativeGPACannotFailThreshold(t *testing.T) {
	c := mustClassifier(t, testConfig())

	history := []domain.TermSummary{
		{
			Term:        term("SP2023"),
			EnrollHours: 15,
			TermGPA:     domain.GPAOf(3.2),
			// CumGPA left absent, as extracts do for first terms.
		},
	}

	res, err := c.Classify(jane, history, term("SP2023"))
	require.NoError(t, err)
	assert.Equal(t, "GoodStanding", res.Tier.Name)
}

func TestSpecExampleStudyHours(t *testing.T) {
	// Two-tier policy: GoodStanding 2.0/2.0, StudyHours1 catch-all.
	c := mustClassifier(t, Config{
		Tiers: []Tier{
			{Name: "GoodStanding", MinGPA: 2.0, MinCumGPA: 2.0, AppliesToNewMembers: true},
			{Name: "StudyHours1", MinGPA: 0, MinCumGPA: 0, AppliesToNewMembers: true},
		},
		FullTimeHours: 12,
		StudyHours:    map[string]int{"GoodStanding": 0, "StudyHours1": 4},
		StrikeTier:    "StudyHours1",
	})

	res, err := c.Classify(jane, []domain.TermSummary{
		summary("SP2023", 1.8, 1.9, 15, false),
	}, term("SP2023"))
	require.NoError(t, err)

	assert.Equal(t, "StudyHours1", res.Tier.Name)
	assert.Equal(t, 4, res.AssignedHours)
	assert.Equal(t, 1, res.Strikes)
	assert.Equal(t, 0, res.SuperStrikes)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no tiers",
			mutate:  func(c *Config) { c.Tiers = nil },
			wantErr: "at least one tier",
		},
		{
			name: "ascending order",
			mutate: func(c *Config) {
				c.Tiers[1].MinGPA = 3.5
			},
			wantErr: "descending",
		},
		{
			name: "no catch-all",
			mutate: func(c *Config) {
				c.Tiers[len(c.Tiers)-1].MinGPA = 1.0
			},
			wantErr: "catch-all",
		},
		{
			name:    "unknown strike tier",
			mutate:  func(c *Config) { c.StrikeTier = "Banished" },
			wantErr: "strike tier",
		},
		{
			name:    "hours for unknown tier",
			mutate:  func(c *Config) { c.StudyHours["Banished"] = 8 },
			wantErr: "unknown tier",
		},
		{
			name:    "out of range minimum",
			mutate:  func(c *Config) { c.Tiers[0].MinGPA = 4.5 },
			wantErr: "between 0.00 and 4.00",
		},
		{
			name:    "zero full-time cutoff",
			mutate:  func(c *Config) { c.FullTimeHours = 0 },
			wantErr: "full-time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
