package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGrade(t *testing.T) {
	tests := []struct {
		letter string
		want   Grade
		ok     bool
	}{
		{"A", GradeA, true},
		{"b", GradeB, true},
		{" C ", GradeC, true},
		{"F", GradeF, true},
		{"S", 0, false},  // satisfactory, no grade points
		{"WD", 0, false}, // withdrawal
		{"I", 0, false},  // in progress
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseGrade(tt.letter)
		assert.Equal(t, tt.ok, ok, "letter %q", tt.letter)
		if tt.ok {
			assert.Equal(t, tt.want, got, "letter %q", tt.letter)
		}
	}
}

func TestComputedGPA(t *testing.T) {
	graded := func(letter string, hours float64) CourseRecord {
		g, ok := ParseGrade(letter)
		return CourseRecord{Letter: letter, Grade: g, Graded: ok, Hours: hours}
	}

	tests := []struct {
		name    string
		courses []CourseRecord
		want    float64
		absent  bool
	}{
		{
			name:    "two B two C evenly weighted",
			courses: []CourseRecord{graded("B", 3), graded("B", 3), graded("C", 3), graded("C", 3)},
			want:    2.5,
		},
		{
			name:    "hour weighting",
			courses: []CourseRecord{graded("A", 4), graded("C", 1)},
			want:    (4*4 + 2*1) / 5.0,
		},
		{
			name:    "pass fail excluded",
			courses: []CourseRecord{graded("B", 3), graded("S", 1)},
			want:    3.0,
		},
		{
			name:    "all pass fail",
			courses: []CourseRecord{graded("S", 3), graded("S", 3)},
			absent:  true,
		},
		{
			name:   "no courses",
			absent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TermSummary{Courses: tt.courses}.ComputedGPA()
			if tt.absent {
				assert.False(t, got.Valid)
				return
			}
			assert.True(t, got.Valid)
			assert.InDelta(t, tt.want, got.Value, 1e-9)
		})
	}
}

func TestEffectiveGPAFallsBackToReported(t *testing.T) {
	ts := TermSummary{TermGPA: GPAOf(3.25)}
	got := ts.EffectiveGPA()
	assert.True(t, got.Valid)
	assert.Equal(t, 3.25, got.Value)

	// Computed wins over reported when grades are present.
	g, _ := ParseGrade("A")
	ts.Courses = []CourseRecord{{Grade: g, Graded: true, Hours: 3}}
	assert.Equal(t, 4.0, ts.EffectiveGPA().Value)
}

func TestMemberKey(t *testing.T) {
	assert.Equal(t, NewMemberKey("Jane", "Doe"), NewMemberKey(" jane ", "DOE"))
	assert.Equal(t, NewMemberKey("Jane", "Doe"), KeyFromFullName("Jane Doe"))
	assert.Equal(t, NewMemberKey("Juan", "De La Cruz"), KeyFromFullName("Juan De La Cruz"))
	assert.True(t, KeyFromFullName("").IsZero())
}
