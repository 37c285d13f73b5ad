package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"league-odds/internal/league"
)

// teamRecord mirrors one entry of the standings JSON produced upstream.
// Simulated win counters always start at zero, so a wins field in the source
// data is ignored.
type teamRecord struct {
	Name     string `json:"name"`
	Points   int    `json:"pts"`
	GoalDiff int    `json:"goal_diff"`
}

// LoadStandings reads a standings snapshot from a JSON file: an array of
// objects with name, pts and goal_diff fields.
func LoadStandings(path string) (*league.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening standings: %w", err)
	}
	defer file.Close()

	var records []teamRecord
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing standings %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("standings %s: no teams", path)
	}

	table := league.NewTable()
	for _, r := range records {
		if r.Name == "" {
			return nil, fmt.Errorf("standings %s: team with empty name", path)
		}
		if r.Points < 0 {
			return nil, fmt.Errorf("standings %s: team %s has negative points", path, r.Name)
		}
		if table.Has(r.Name) {
			return nil, fmt.Errorf("standings %s: duplicate team %s", path, r.Name)
		}
		table.AddTeam(r.Name, r.Points, r.GoalDiff)
	}

	log.Info().Str("path", path).Int("teams", table.Len()).Msg("Loaded standings snapshot")
	return table, nil
}

// LoadFixtures reads the remaining fixture list from a JSON file: an array
// of objects with home and away fields.
func LoadFixtures(path string) ([]league.Match, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fixtures: %w", err)
	}
	defer file.Close()

	var fixtures []league.Match
	if err := json.NewDecoder(file).Decode(&fixtures); err != nil {
		return nil, fmt.Errorf("parsing fixtures %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("fixtures", len(fixtures)).Msg("Loaded remaining fixtures")
	return fixtures, nil
}

// LoadSnapshot reads and cross-validates the standings and fixture files.
// Every fixture must reference teams present in the snapshot; a mismatch is
// a data-consistency failure, reported before any simulation starts.
func LoadSnapshot(standingsPath, fixturesPath string) (*league.Table, []league.Match, error) {
	table, err := LoadStandings(standingsPath)
	if err != nil {
		return nil, nil, err
	}

	fixtures, err := LoadFixtures(fixturesPath)
	if err != nil {
		return nil, nil, err
	}

	for _, m := range fixtures {
		if !table.Has(m.Home) {
			return nil, nil, fmt.Errorf("fixture %s vs %s: %w: %s", m.Home, m.Away, league.ErrUnknownTeam, m.Home)
		}
		if !table.Has(m.Away) {
			return nil, nil, fmt.Errorf("fixture %s vs %s: %w: %s", m.Home, m.Away, league.ErrUnknownTeam, m.Away)
		}
	}

	return table, fixtures, nil
}
