package web

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"league-odds/internal/league"
	"league-odds/internal/simulation"
)

// Server renders the forecast form and results. The standings snapshot and
// fixture list are read once at startup and shared read-only with every
// request; only the aggregator's counters live per request.
type Server struct {
	standings *league.Table
	fixtures  []league.Match
	agg       *simulation.Aggregator
	router    *mux.Router
	tmpl      *template.Template
}

type resultView struct {
	simulation.Result
	Team string
	Rank int
}

type pageData struct {
	Teams     []league.Team
	Remaining int
	Error     string
	Results   *resultView
}

// NewServer wires the routes against a loaded snapshot.
func NewServer(standings *league.Table, fixtures []league.Match, agg *simulation.Aggregator) *Server {
	s := &Server{
		standings: standings,
		fixtures:  fixtures,
		agg:       agg,
		router:    mux.NewRouter(),
		tmpl: template.Must(template.New("index").
			Funcs(template.FuncMap{"add1": func(i int) int { return i + 1 }}).
			Parse(indexTemplate)),
	}

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/simulate", s.handleSimulate).Methods(http.MethodPost)
	return s
}

// Handler exposes the router for mounting.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageData{
		Teams:     s.standings.Standings(),
		Remaining: len(s.fixtures),
	})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Could not read the submitted form.")
		return
	}

	team := r.FormValue("team")
	rank, err := strconv.Atoi(r.FormValue("rank"))
	if err != nil || rank < 1 {
		s.renderError(w, http.StatusBadRequest, "Target rank must be a positive integer.")
		return
	}

	result, err := s.agg.Calculate(team, rank, s.standings, s.fixtures)
	if err != nil {
		if errors.Is(err, simulation.ErrUnknownTarget) {
			s.renderError(w, http.StatusBadRequest, "Unknown team: "+team)
			return
		}
		log.Error().Err(err).Str("team", team).Int("rank", rank).Msg("Forecast failed")
		s.renderError(w, http.StatusInternalServerError, "Simulation failed, see server logs.")
		return
	}

	log.Info().
		Str("team", team).
		Int("rank", rank).
		Float64("percent", result.SuccessPercent).
		Msg("Forecast served")

	s.render(w, http.StatusOK, pageData{
		Teams:     s.standings.Standings(),
		Remaining: len(s.fixtures),
		Results:   &resultView{Result: result, Team: team, Rank: rank},
	})
}

func (s *Server) renderError(w http.ResponseWriter, status int, msg string) {
	s.render(w, status, pageData{
		Teams:     s.standings.Standings(),
		Remaining: len(s.fixtures),
		Error:     msg,
	})
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("Template rendering failed")
	}
}

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Are we gonna win the league?</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.25rem 0.75rem; border-bottom: 1px solid #ddd; }
.error { color: #a00; }
.result { background: #f4f7f4; padding: 1rem; margin: 1rem 0; }
</style>
</head>
<body>
<h1>Are we gonna win the league?</h1>
<p>{{.Remaining}} fixtures remaining this season.</p>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form action="/simulate" method="post">
	<label for="team">Team</label>
	<select name="team" id="team">
		{{range .Teams}}<option value="{{.Name}}">{{.Name}}</option>{{end}}
	</select>
	<label for="rank">Target rank</label>
	<input type="number" name="rank" id="rank" min="1" max="{{len .Teams}}" value="4">
	<button type="submit">Simulate</button>
</form>
{{with .Results}}
<div class="result">
	<h2>{{.Team}}</h2>
	<p>Chance of finishing at or above rank {{.Rank}}:
		<strong>{{printf "%.1f" .SuccessPercent}}%</strong></p>
	<p>Average wins in successful seasons:
		<strong>{{printf "%.1f" .AverageWins}}</strong>
		({{.Successes}} of {{.Runs}} simulations)</p>
</div>
{{end}}
<h2>Current standings</h2>
<table>
	<tr><th>#</th><th>Team</th><th>Pts</th><th>GD</th></tr>
	{{range $i, $t := .Teams}}
	<tr><td>{{add1 $i}}</td><td>{{$t.Name}}</td><td>{{$t.Points}}</td><td>{{$t.GoalDiff}}</td></tr>
	{{end}}
</table>
</body>
</html>`
