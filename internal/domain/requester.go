package domain

import (
	"fmt"
	"time"
)

// Member represents an individual user of the workspace
type Member struct {
	ID       int64
	Username string
	Age      int
}

// IsChild returns true if the member does not occupy a seat on their own
func (m *Member) IsChild() bool {
	return m.Age < ChildAgeThreshold
}

// Team represents a named group of members for conference and shared desk bookings
type Team struct {
	ID        int64
	Name      string
	Members   []Member
	CreatedAt time.Time
}

// EffectiveSize returns the member count excluding children (age < 10)
func (t *Team) EffectiveSize() int {
	count := 0
	for i := range t.Members {
		if !t.Members[i].IsChild() {
			count++
		}
	}
	return count
}

// Headcount returns the total member count including children
func (t *Team) Headcount() int {
	return len(t.Members)
}

// RequesterKind discriminates the requester variant
type RequesterKind string

const (
	RequesterUser RequesterKind = "user"
	RequesterTeam RequesterKind = "team"
)

// Requester is a tagged variant over {individual user, team}
// Exactly one of User/Team is set depending on Kind; both variants expose
// the same effective-size and headcount capabilities consumed by the
// capacity policy and the occupancy accounting
type Requester struct {
	Kind RequesterKind
	User *Member
	Team *Team
}

// NewUserRequester создает requester-вариант для индивидуального пользователя
func NewUserRequester(user *Member) Requester {
	return Requester{Kind: RequesterUser, User: user}
}

// NewTeamRequester создает requester-вариант для команды
func NewTeamRequester(team *Team) Requester {
	return Requester{Kind: RequesterTeam, Team: team}
}

// IsTeam returns true for the team variant
func (r Requester) IsTeam() bool {
	return r.Kind == RequesterTeam
}

// EffectiveSize returns the number of seats the requester occupies
// An individual contributes 0 if they are a child, otherwise 1;
// a team contributes one seat per member aged 10 and above
func (r Requester) EffectiveSize() int {
	if r.Kind == RequesterTeam {
		return r.Team.EffectiveSize()
	}
	if r.User.IsChild() {
		return 0
	}
	return 1
}

// Headcount returns the total number of people behind the requester
func (r Requester) Headcount() int {
	if r.Kind == RequesterTeam {
		return r.Team.Headcount()
	}
	return 1
}

// ID возвращает идентификатор пользователя или команды
func (r Requester) ID() int64 {
	if r.Kind == RequesterTeam {
		return r.Team.ID
	}
	return r.User.ID
}

// Name возвращает имя пользователя или название команды
func (r Requester) Name() string {
	if r.Kind == RequesterTeam {
		return r.Team.Name
	}
	return r.User.Username
}

// Key возвращает строковый ключ requester (используется для блокировок)
func (r Requester) Key() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID())
}
