package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"sctk/internal/gradebook"
	"sctk/internal/roster"
	"sctk/internal/standing"
)

// Config is the resolved application configuration.
type Config struct {
	Policy  PolicyConfig  `yaml:"policy" envconfig:"POLICY"`
	Inputs  InputConfig   `yaml:"inputs" envconfig:"INPUTS"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// TierConfig is one standing tier of the scholarship policy.
type TierConfig struct {
	Name                string  `yaml:"name" validate:"required"`
	MinGPA              float64 `yaml:"min_gpa" validate:"gte=0,lte=4"`
	MinCumGPA           float64 `yaml:"min_cum_gpa" validate:"gte=0,lte=4"`
	AppliesToNewMembers bool    `yaml:"applies_to_new_members"`
	StudyHours          int     `yaml:"study_hours" validate:"gte=0"`
}

// PolicyConfig holds the GPA thresholds and strike rules. Tiers are
// ordered best standing first and come from the config file only;
// environment variables cannot express the list.
type PolicyConfig struct {
	Tiers           []TierConfig `yaml:"tiers" ignored:"true" validate:"min=1,dive"`
	FullTimeHours   float64      `yaml:"full_time_hours" envconfig:"FULL_TIME_HOURS" validate:"gt=0"`
	StrikeTier      string       `yaml:"strike_tier" envconfig:"STRIKE_TIER"`
	SuperStrikeTier string       `yaml:"super_strike_tier" envconfig:"SUPER_STRIKE_TIER"`
}

// InputConfig holds the fixed header offsets of the two input formats.
type InputConfig struct {
	RosterHeaderRow int `yaml:"roster_header_row" envconfig:"ROSTER_HEADER_ROW" validate:"gte=0"`
	GradeHeaderRow  int `yaml:"grade_header_row" envconfig:"GRADE_HEADER_ROW" validate:"gte=0"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
}

// Default returns the configuration the chapter runs with when no
// overrides are given.
func Default() Config {
	return Config{
		Policy: PolicyConfig{
			Tiers: []TierConfig{
				{Name: "GoodStanding", MinGPA: 3.00, MinCumGPA: 2.75, AppliesToNewMembers: true},
				{Name: "StudyHours1", MinGPA: 2.75, MinCumGPA: 2.50, AppliesToNewMembers: true, StudyHours: 2},
				{Name: "StudyHours2", MinGPA: 2.50, MinCumGPA: 2.25, AppliesToNewMembers: true, StudyHours: 4},
				{Name: "Probation", StudyHours: 6},
			},
			FullTimeHours:   12,
			StrikeTier:      "StudyHours2",
			SuperStrikeTier: "Probation",
		},
		Inputs: InputConfig{
			RosterHeaderRow: roster.DefaultHeaderRow,
			GradeHeaderRow:  gradebook.DefaultHeaderRow,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load resolves the configuration: defaults, then the YAML file when
// given, then SCTK-prefixed environment variables. The result is
// validated before it is returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("SCTK", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints and the policy's internal
// consistency, the same checks the classifier applies.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	return c.Policy.Standing().Validate()
}

// Standing maps the policy onto the classifier's configuration.
func (p PolicyConfig) Standing() standing.Config {
	tiers := make([]standing.Tier, len(p.Tiers))
	hours := make(map[string]int, len(p.Tiers))
	for i, t := range p.Tiers {
		tiers[i] = standing.Tier{
			Name:                t.Name,
			MinGPA:              t.MinGPA,
			MinCumGPA:           t.MinCumGPA,
			AppliesToNewMembers: t.AppliesToNewMembers,
		}
		hours[t.Name] = t.StudyHours
	}
	return standing.Config{
		Tiers:           tiers,
		FullTimeHours:   p.FullTimeHours,
		StudyHours:      hours,
		StrikeTier:      p.StrikeTier,
		SuperStrikeTier: p.SuperStrikeTier,
	}
}

// NewLogger builds the application logger per the logging settings.
func (l LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch l.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
