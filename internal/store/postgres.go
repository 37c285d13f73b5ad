package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"league-odds/internal/league"
)

// Store wraps a Postgres connection holding the authoritative standings and
// the remaining fixture list. It is an alternative to the JSON file loader,
// selected via STORE_BACKEND=postgres.
type Store struct {
	db *sql.DB
}

// NewStore opens a Postgres connection and verifies it early.
func NewStore(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the standings and fixtures tables if they do not exist.
func (s *Store) Migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS teams (
		    name      TEXT PRIMARY KEY,
		    pts       INT  NOT NULL DEFAULT 0 CHECK (pts >= 0),
		    goal_diff INT  NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS fixtures (
		    id        SERIAL PRIMARY KEY,
		    home_team TEXT NOT NULL REFERENCES teams(name),
		    away_team TEXT NOT NULL REFERENCES teams(name)
		);`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
	}
	return nil
}

// SaveSnapshot replaces the stored standings and fixtures atomically.
func (s *Store) SaveSnapshot(table *league.Table, fixtures []league.Match) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM fixtures;`); err != nil {
		return fmt.Errorf("clearing fixtures: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM teams;`); err != nil {
		return fmt.Errorf("clearing teams: %w", err)
	}

	const insertTeam = `INSERT INTO teams (name, pts, goal_diff) VALUES ($1, $2, $3)`
	for _, t := range table.Standings() {
		if _, err := tx.Exec(insertTeam, t.Name, t.Points, t.GoalDiff); err != nil {
			return fmt.Errorf("inserting team %s: %w", t.Name, err)
		}
	}

	const insertFixture = `INSERT INTO fixtures (home_team, away_team) VALUES ($1, $2)`
	for _, m := range fixtures {
		if _, err := tx.Exec(insertFixture, m.Home, m.Away); err != nil {
			return fmt.Errorf("inserting fixture %s vs %s: %w", m.Home, m.Away, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}

	log.Info().Int("teams", table.Len()).Int("fixtures", len(fixtures)).Msg("Snapshot saved to Postgres")
	return nil
}

// LoadStandingsDB reads the standings snapshot from Postgres.
func (s *Store) LoadStandingsDB() (*league.Table, error) {
	rows, err := s.db.Query(`SELECT name, pts, goal_diff FROM teams`)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	table := league.NewTable()
	for rows.Next() {
		var name string
		var pts, goalDiff int
		if err := rows.Scan(&name, &pts, &goalDiff); err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		table.AddTeam(name, pts, goalDiff)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team rows: %w", err)
	}
	if table.Len() == 0 {
		return nil, fmt.Errorf("postgres standings: no teams")
	}
	return table, nil
}

// LoadFixturesDB reads the remaining fixture list from Postgres. The foreign
// keys guarantee every fixture references a known team.
func (s *Store) LoadFixturesDB() ([]league.Match, error) {
	rows, err := s.db.Query(`SELECT home_team, away_team FROM fixtures ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying fixtures: %w", err)
	}
	defer rows.Close()

	var fixtures []league.Match
	for rows.Next() {
		var m league.Match
		if err := rows.Scan(&m.Home, &m.Away); err != nil {
			return nil, fmt.Errorf("scanning fixture row: %w", err)
		}
		fixtures = append(fixtures, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fixture rows: %w", err)
	}
	return fixtures, nil
}

// LoadSnapshotDB reads standings and fixtures in one call, mirroring the
// file loader's contract.
func (s *Store) LoadSnapshotDB() (*league.Table, []league.Match, error) {
	table, err := s.LoadStandingsDB()
	if err != nil {
		return nil, nil, err
	}
	fixtures, err := s.LoadFixturesDB()
	if err != nil {
		return nil, nil, err
	}
	return table, fixtures, nil
}
