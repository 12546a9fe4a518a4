package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sctk/internal/domain"
	"sctk/internal/schema"
)

func rosterTable(t *testing.T, rows [][]string) *schema.Table {
	t.Helper()
	raw := [][]string{Columns}
	raw = append(raw, rows...)
	table, err := schema.Validate(raw, schema.Descriptor{HeaderRow: 0, Columns: Columns})
	require.NoError(t, err)
	return table
}

func TestLoad(t *testing.T) {
	table := rosterTable(t, [][]string{
		{"Doe", "Jane", "Beta Sig", "IN", "jdoe@mst.edu", "SP2023"},
		{"Smith", "John", "Beta Sig", "OUT", "jsmith@mst.edu", "SP2023"},
	})

	r, err := Load(table)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, domain.Term{Season: domain.Spring, Year: 2023}, r.Term())
	assert.True(t, r.Contains(domain.NewMemberKey("Jane", "Doe")))
	assert.False(t, r.Contains(domain.NewMemberKey("Jim", "Doe")))

	m, ok := r.Member(domain.NewMemberKey("john", "smith"))
	require.True(t, ok)
	assert.True(t, m.OutOfHouse)
	assert.Equal(t, "jsmith@mst.edu", m.Email)
}

func TestLoadDeduplicates(t *testing.T) {
	// Same member twice with different casing and spacing; one Member
	// comes out regardless of which row is seen first.
	for name, rows := range map[string][][]string{
		"duplicate first": {
			{"Doe", "Jane", "Beta Sig", "IN", "jdoe@mst.edu", "SP2023"},
			{"DOE", " jane ", "Beta Sig", "IN", "other@mst.edu", "SP2023"},
			{"Smith", "John", "Beta Sig", "IN", "jsmith@mst.edu", "SP2023"},
		},
		"duplicate last": {
			{"Smith", "John", "Beta Sig", "IN", "jsmith@mst.edu", "SP2023"},
			{"Doe", "Jane", "Beta Sig", "IN", "jdoe@mst.edu", "SP2023"},
			{"DOE", " jane ", "Beta Sig", "IN", "other@mst.edu", "SP2023"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			r, err := Load(rosterTable(t, rows))
			require.NoError(t, err)
			assert.Equal(t, 2, r.Len())
		})
	}
}

func TestLoadRejectsMixedTerms(t *testing.T) {
	table := rosterTable(t, [][]string{
		{"Doe", "Jane", "Beta Sig", "IN", "jdoe@mst.edu", "SP2023"},
		{"Smith", "John", "Beta Sig", "IN", "jsmith@mst.edu", "FS2023"},
	})

	_, err := Load(table)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, err.Error(), "more than one term")
}

func TestLoadRejectsBadTermToken(t *testing.T) {
	table := rosterTable(t, [][]string{
		{"Doe", "Jane", "Beta Sig", "IN", "jdoe@mst.edu", "SU2023"},
	})

	_, err := Load(table)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestLoadRejectsBadHouseStatus(t *testing.T) {
	table := rosterTable(t, [][]string{
		{"Doe", "Jane", "Beta Sig", "inside", "jdoe@mst.edu", "SP2023"},
	})

	_, err := Load(table)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, err.Error(), "in/out House")
}

func TestAllIsStableAndRestartable(t *testing.T) {
	table := rosterTable(t, [][]string{
		{"Doe", "Jane", "Beta Sig", "IN", "jdoe@mst.edu", "SP2023"},
		{"Smith", "John", "Beta Sig", "OUT", "jsmith@mst.edu", "SP2023"},
		{"Adams", "Amy", "Beta Sig", "IN", "aadams@mst.edu", "SP2023"},
	})
	r, err := Load(table)
	require.NoError(t, err)

	var first, second []string
	for m := range r.All() {
		first = append(first, m.FullName())
	}
	for m := range r.All() {
		second = append(second, m.FullName())
	}

	assert.Equal(t, []string{"Jane Doe", "John Smith", "Amy Adams"}, first)
	assert.Equal(t, first, second)
}
