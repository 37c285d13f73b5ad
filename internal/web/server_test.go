package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"league-odds/internal/league"
	"league-odds/internal/simulation"
)

func testServer() *Server {
	table := league.NewTable()
	table.AddTeam("Liverpool", 67, 40)
	table.AddTeam("Arsenal", 54, 28)
	table.AddTeam("Brighton", 47, 6)
	fixtures := []league.Match{
		{Home: "Liverpool", Away: "Arsenal"},
		{Home: "Brighton", Away: "Liverpool"},
		{Home: "Arsenal", Away: "Brighton"},
	}

	agg := &simulation.Aggregator{Runs: 200, Workers: 2}
	agg.SetSeed(7)
	return NewServer(table, fixtures, agg)
}

func TestIndex(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<form") {
		t.Error("index page missing the forecast form")
	}
	if !strings.Contains(body, "Liverpool") {
		t.Error("index page missing standings entries")
	}
	if !strings.Contains(body, "3 fixtures remaining") {
		t.Error("index page missing remaining-fixtures count")
	}
}

func postForm(t *testing.T, srv *Server, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/simulate", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSimulate(t *testing.T) {
	srv := testServer()

	rec := postForm(t, srv, url.Values{"team": {"Liverpool"}, "rank": {"2"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /simulate status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Chance of finishing at or above rank 2") {
		t.Error("results block missing from response")
	}
	if !strings.Contains(body, "%") {
		t.Error("percentage missing from response")
	}
}

func TestSimulate_UnknownTeam(t *testing.T) {
	srv := testServer()

	rec := postForm(t, srv, url.Values{"team": {"Everton"}, "rank": {"1"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unknown team") {
		t.Error("error message missing from response")
	}
}

func TestSimulate_InvalidRank(t *testing.T) {
	srv := testServer()

	for _, rank := range []string{"0", "-3", "fourth", ""} {
		rec := postForm(t, srv, url.Values{"team": {"Liverpool"}, "rank": {rank}})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("rank %q: status = %d, want 400", rank, rec.Code)
		}
	}
}

func TestSimulate_MethodNotAllowed(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/simulate", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /simulate status = %d, want 405", rec.Code)
	}
}
