package gradebook

import (
	"fmt"
	"strconv"
	"strings"

	"sctk/internal/domain"
)

// parseFloat parses a numeric cell. Empty cells read as zero; the
// extract leaves hour columns blank for some withdrawn courses.
func parseFloat(cell string) (float64, error) {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cell == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", cell)
	}
	return v, nil
}

// parseGPA parses a GPA cell. Empty cells are a normal absent value,
// not an error: the campus extract leaves them blank for new members.
func parseGPA(cell string) (domain.GPA, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return domain.GPA{}, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return domain.GPA{}, fmt.Errorf("invalid GPA %q", cell)
	}
	if v < 0 || v > 4 {
		return domain.GPA{}, fmt.Errorf("GPA %v out of range 0.00-4.00", v)
	}
	return domain.GPAOf(v), nil
}
