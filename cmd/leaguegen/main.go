// Command leaguegen writes a synthetic standings snapshot and remaining
// fixture list for development and demos.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

type teamRecord struct {
	Name     string `json:"name"`
	Points   int    `json:"pts"`
	GoalDiff int    `json:"goal_diff"`
}

type fixtureRecord struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

func main() {
	teams := flag.Int("teams", 20, "Number of teams in the league")
	outDir := flag.String("out", "./data", "Output directory for standings.json and fixtures_list.json")
	seed := flag.Int64("seed", 1, "Random seed for the generated standings")
	flag.Parse()

	if *teams < 2 {
		fmt.Println("Need at least 2 teams")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	standings := generateStandings(*teams, rng)
	fixtures := generateDoubleRoundRobin(standings)

	fmt.Printf("Generating %d teams and %d fixtures to %s...\n", len(standings), len(fixtures), *outDir)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Printf("Failed to create output directory: %v\n", err)
		os.Exit(1)
	}
	if err := writeJSON(filepath.Join(*outDir, "standings.json"), standings); err != nil {
		fmt.Printf("Failed to write standings: %v\n", err)
		os.Exit(1)
	}
	if err := writeJSON(filepath.Join(*outDir, "fixtures_list.json"), fixtures); err != nil {
		fmt.Printf("Failed to write fixtures: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}

// generateStandings fabricates a mid-season table: points fall off from the
// top with some noise, and goal difference loosely tracks points.
func generateStandings(n int, rng *rand.Rand) []teamRecord {
	standings := make([]teamRecord, n)
	top := 40 + n*2
	for i := 0; i < n; i++ {
		pts := top - i*3 - rng.Intn(4)
		if pts < 0 {
			pts = 0
		}
		gd := (n/2-i)*3 + rng.Intn(11) - 5
		standings[i] = teamRecord{
			Name:     fmt.Sprintf("Club %02d", i+1),
			Points:   pts,
			GoalDiff: gd,
		}
	}
	return standings
}

// generateDoubleRoundRobin builds every-team-plays-every-team-twice via the
// circle rotation method, second half with home/away swapped.
func generateDoubleRoundRobin(standings []teamRecord) []fixtureRecord {
	names := make([]string, len(standings))
	for i, t := range standings {
		names[i] = t.Name
	}
	if len(names)%2 != 0 {
		names = append(names, "") // bye
	}

	n := len(names)
	var firstHalf []fixtureRecord
	for round := 0; round < n-1; round++ {
		for i := 0; i < n/2; i++ {
			home, away := names[i], names[n-1-i]
			if home != "" && away != "" {
				firstHalf = append(firstHalf, fixtureRecord{Home: home, Away: away})
			}
		}
		// Rotate everything but the first slot.
		last := names[n-1]
		copy(names[2:], names[1:n-1])
		names[1] = last
	}

	fixtures := make([]fixtureRecord, 0, len(firstHalf)*2)
	fixtures = append(fixtures, firstHalf...)
	for _, f := range firstHalf {
		fixtures = append(fixtures, fixtureRecord{Home: f.Away, Away: f.Home})
	}
	return fixtures
}

func writeJSON(path string, v interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
