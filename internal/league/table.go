package league

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownTeam signals a fixture or query referencing a team that is not
// part of the standings snapshot. This is mismatched input data, not a
// recoverable runtime condition.
var ErrUnknownTeam = errors.New("unknown team")

// Table maps team names to their standings entries. The authoritative table
// built at load time is treated as read-only; every simulation run works on
// a private Clone.
type Table struct {
	teams map[string]*Team
}

// NewTable creates an empty standings table.
func NewTable() *Table {
	return &Table{teams: make(map[string]*Team)}
}

// AddTeam inserts a team with zero simulated wins, replacing any previous
// entry with the same name.
func (t *Table) AddTeam(name string, points, goalDiff int) {
	t.teams[name] = &Team{Name: name, Points: points, GoalDiff: goalDiff}
}

// Has reports whether the named team is present.
func (t *Table) Has(name string) bool {
	_, ok := t.teams[name]
	return ok
}

// Get returns a copy of the named team's entry.
func (t *Table) Get(name string) (Team, bool) {
	team, ok := t.teams[name]
	if !ok {
		return Team{}, false
	}
	return *team, true
}

// Len returns the number of teams in the table.
func (t *Table) Len() int {
	return len(t.teams)
}

// Clone returns a deep copy. Concurrent runs each mutate their own clone and
// never the source table.
func (t *Table) Clone() *Table {
	clone := &Table{teams: make(map[string]*Team, len(t.teams))}
	for name, team := range t.teams {
		copied := *team
		clone.teams[name] = &copied
	}
	return clone
}

// Apply folds a sampled result into both sides of the fixture: the winner
// gets 3 points and a win, a draw gives both sides 1 point, and the two
// goal-difference deltas are exact opposites.
func (t *Table) Apply(m Match, homeGoals, awayGoals int) error {
	home, ok := t.teams[m.Home]
	if !ok {
		return fmt.Errorf("applying %s vs %s: %w: %s", m.Home, m.Away, ErrUnknownTeam, m.Home)
	}
	away, ok := t.teams[m.Away]
	if !ok {
		return fmt.Errorf("applying %s vs %s: %w: %s", m.Home, m.Away, ErrUnknownTeam, m.Away)
	}

	diff := homeGoals - awayGoals
	home.apply(diff)
	away.apply(-diff)
	return nil
}

// Standings returns the table entries ordered by points descending, with
// goal difference as the tie-break. Order among teams equal on both keys is
// unspecified.
func (t *Table) Standings() []Team {
	entries := make([]Team, 0, len(t.teams))
	for _, team := range t.teams {
		entries = append(entries, *team)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].GoalDiff > entries[j].GoalDiff
	})
	return entries
}

// FinalRank returns the named team's 1-based position in the current
// standings order plus its accumulated simulated win count. Rank is 1 plus
// the number of teams strictly ahead on (points, goal difference), so teams
// tied on both keys share a rank. The full re-sort per call is a deliberate
// simplicity choice at league sizes around 20 teams.
func (t *Table) FinalRank(team string) (rank, wins int, err error) {
	target, ok := t.teams[team]
	if !ok {
		return 0, 0, fmt.Errorf("ranking: %w: %s", ErrUnknownTeam, team)
	}

	rank = 1
	for _, entry := range t.Standings() {
		if entry.Points > target.Points ||
			(entry.Points == target.Points && entry.GoalDiff > target.GoalDiff) {
			rank++
		}
	}
	return rank, target.Wins, nil
}
