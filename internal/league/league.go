package league

// Team holds the standings entry for a single club. Points and goal
// difference are mutated only through Table.Apply; Wins counts victories
// accrued during the simulated remainder of the season, never the wins
// already baked into the starting standings.
type Team struct {
	Name     string `json:"name"`
	Points   int    `json:"pts"`
	GoalDiff int    `json:"goal_diff"`
	Wins     int    `json:"wins,omitempty"`
}

// apply folds one match outcome into the team's totals. goalDiff is the
// margin from this team's perspective: positive for a win, zero for a draw.
func (t *Team) apply(goalDiff int) {
	t.GoalDiff += goalDiff
	switch {
	case goalDiff > 0:
		t.Points += 3
		t.Wins++
	case goalDiff == 0:
		t.Points++
	}
}

// Match is a scheduled, not-yet-played fixture. It carries no score; scores
// are sampled fresh for every simulation run.
type Match struct {
	Home string `json:"home"`
	Away string `json:"away"`
}
