package commands

import (
	"fmt"
	"net/http"
	"os"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"league-odds/internal/config"
	"league-odds/internal/league"
	"league-odds/internal/logging"
	"league-odds/internal/mcp"
	"league-odds/internal/simulation"
	"league-odds/internal/store"
	"league-odds/internal/web"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose  bool
	openPage bool
	cfg      *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "league-odds",
	Short: "Monte Carlo forecaster for end-of-season league positions",
	Long: `league-odds estimates the probability that a team finishes the season at or
above a target rank, by replaying the remaining fixtures many times with
randomized scores drawn from historical home/away distributions.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("league-odds starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// loadSnapshot reads the standings and fixtures from the configured backend.
func loadSnapshot() (*league.Table, []league.Match, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pg, err := store.NewStore(cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		defer pg.Close()
		return pg.LoadSnapshotDB()
	case config.BackendFile:
		return store.LoadSnapshot(cfg.StandingsFile, cfg.FixturesFile)
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func newAggregator() *simulation.Aggregator {
	return &simulation.Aggregator{Runs: cfg.SimRuns, Workers: cfg.SimWorkers}
}

func runServe() error {
	standings, fixtures, err := loadSnapshot()
	if err != nil {
		return err
	}

	srv := web.NewServer(standings, fixtures, newAggregator())
	addr := cfg.ListenAddr

	log.Info().Str("addr", addr).Int("teams", standings.Len()).Int("fixtures", len(fixtures)).Msg("Serving web UI")
	if openPage {
		if err := browser.OpenURL("http://" + addr); err != nil {
			log.Warn().Err(err).Msg("Could not open browser")
		}
	}
	return http.ListenAndServe(addr, srv.Handler())
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the forecast web UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP tool server over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		standings, fixtures, err := loadSnapshot()
		if err != nil {
			return err
		}

		log.Info().Msg("MCP server starting stdio loop")
		server := mcp.NewServer(standings, fixtures, newAggregator())
		return server.Serve(os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&openPage, "open", false, "open the web UI in the default browser")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(simulateCmd)
}
