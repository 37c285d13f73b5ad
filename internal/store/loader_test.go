package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"league-odds/internal/league"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadSnapshot(t *testing.T) {
	dir := t.TempDir()
	standings := writeFile(t, dir, "standings.json", `[
		{"name": "Liverpool", "pts": 67, "goal_diff": 40},
		{"name": "Arsenal", "pts": 54, "goal_diff": 28},
		{"name": "Brighton", "pts": 47, "goal_diff": 6}
	]`)
	fixtures := writeFile(t, dir, "fixtures_list.json", `[
		{"home": "Liverpool", "away": "Arsenal"},
		{"home": "Brighton", "away": "Liverpool"}
	]`)

	table, matches, err := LoadSnapshot(standings, fixtures)
	if err != nil {
		t.Fatalf("LoadSnapshot() returned error: %v", err)
	}

	if table.Len() != 3 {
		t.Errorf("loaded %d teams, want 3", table.Len())
	}
	if len(matches) != 2 {
		t.Errorf("loaded %d fixtures, want 2", len(matches))
	}

	team, ok := table.Get("Liverpool")
	if !ok {
		t.Fatal("Liverpool missing from loaded table")
	}
	if team.Points != 67 || team.GoalDiff != 40 {
		t.Errorf("Liverpool loaded as pts=%d gd=%d, want 67/40", team.Points, team.GoalDiff)
	}
	if team.Wins != 0 {
		t.Errorf("loaded wins = %d, want 0 (simulated wins start fresh)", team.Wins)
	}
}

func TestLoadStandings_IgnoresSourceWins(t *testing.T) {
	dir := t.TempDir()
	standings := writeFile(t, dir, "standings.json", `[
		{"name": "Liverpool", "pts": 67, "goal_diff": 40, "wins": 21}
	]`)

	table, err := LoadStandings(standings)
	if err != nil {
		t.Fatalf("LoadStandings() returned error: %v", err)
	}
	team, _ := table.Get("Liverpool")
	if team.Wins != 0 {
		t.Errorf("season-to-date wins leaked into snapshot: got %d, want 0", team.Wins)
	}
}

func TestLoadStandings_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"EmptyTable", `[]`},
		{"DuplicateTeam", `[{"name":"Arsenal","pts":10,"goal_diff":1},{"name":"Arsenal","pts":12,"goal_diff":2}]`},
		{"EmptyName", `[{"name":"","pts":10,"goal_diff":1}]`},
		{"NegativePoints", `[{"name":"Arsenal","pts":-1,"goal_diff":1}]`},
		{"Malformed", `{"not":"an array"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".json", tt.content)
			if _, err := LoadStandings(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadStandings_MissingFile(t *testing.T) {
	if _, err := LoadStandings(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadSnapshot_FixtureReferencesUnknownTeam(t *testing.T) {
	dir := t.TempDir()
	standings := writeFile(t, dir, "standings.json", `[
		{"name": "Liverpool", "pts": 67, "goal_diff": 40}
	]`)
	fixtures := writeFile(t, dir, "fixtures_list.json", `[
		{"home": "Liverpool", "away": "Everton"}
	]`)

	_, _, err := LoadSnapshot(standings, fixtures)
	if !errors.Is(err, league.ErrUnknownTeam) {
		t.Fatalf("expected ErrUnknownTeam, got %v", err)
	}
}
