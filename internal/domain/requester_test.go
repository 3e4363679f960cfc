package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeam_EffectiveSize(t *testing.T) {
	team := &Team{
		ID:   1,
		Name: "Development Team",
		Members: []Member{
			{ID: 1, Username: "john_doe", Age: 25},
			{ID: 2, Username: "jane_smith", Age: 30},
			{ID: 3, Username: "child_user", Age: 8},
		},
	}

	// Двое взрослых занимают места, ребенок добавляет только headcount
	assert.Equal(t, 2, team.EffectiveSize())
	assert.Equal(t, 3, team.Headcount())
}

func TestRequester_UserVariant(t *testing.T) {
	adult := NewUserRequester(&Member{ID: 7, Username: "bob_wilson", Age: 28})

	assert.False(t, adult.IsTeam())
	assert.Equal(t, 1, adult.EffectiveSize())
	assert.Equal(t, 1, adult.Headcount())
	assert.Equal(t, int64(7), adult.ID())
	assert.Equal(t, "user:7", adult.Key())
}

func TestRequester_ChildUserOccupiesNoSeat(t *testing.T) {
	child := NewUserRequester(&Member{ID: 9, Username: "child_user", Age: 8})

	assert.Equal(t, 0, child.EffectiveSize())
	assert.Equal(t, 1, child.Headcount())
}

func TestRequester_TeamVariant(t *testing.T) {
	team := NewTeamRequester(&Team{
		ID:   3,
		Name: "Marketing Team",
		Members: []Member{
			{ID: 1, Age: 25},
			{ID: 2, Age: 31},
		},
	})

	assert.True(t, team.IsTeam())
	assert.Equal(t, 2, team.EffectiveSize())
	assert.Equal(t, "Marketing Team", team.Name())
	assert.Equal(t, "team:3", team.Key())
}

func TestMember_IsChild(t *testing.T) {
	assert.True(t, (&Member{Age: 9}).IsChild())
	assert.False(t, (&Member{Age: 10}).IsChild())
	assert.False(t, (&Member{Age: 25}).IsChild())
}
