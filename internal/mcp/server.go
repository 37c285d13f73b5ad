package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"league-odds/internal/league"
	"league-odds/internal/simulation"
)

// JSONRPCRequest represents a standard MCP/JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard MCP/JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Server exposes the forecast over MCP's JSON-RPC/stdio transport. The
// standings snapshot and fixtures are loaded once and shared read-only.
type Server struct {
	standings *league.Table
	fixtures  []league.Match
	agg       *simulation.Aggregator
}

// NewServer creates an MCP server over a loaded snapshot.
func NewServer(standings *league.Table, fixtures []league.Match, agg *simulation.Aggregator) *Server {
	return &Server{standings: standings, fixtures: fixtures, agg: agg}
}

// Serve runs the JSON-RPC loop, one request per line, until EOF.
func (s *Server) Serve(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal request")
			continue
		}

		s.handleRequest(req, out)
	}
}

func (s *Server) handleRequest(req JSONRPCRequest, out io.Writer) {
	var result interface{}
	var errRes interface{}

	switch req.Method {
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]interface{}{},
			"serverInfo": map[string]interface{}{
				"name":    "league-odds",
				"version": "0.1.0",
			},
		}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, errRes = s.callTool(req.Params)
	default:
		errRes = map[string]interface{}{
			"code":    -32601,
			"message": fmt.Sprintf("Method %s not found", req.Method),
		}
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   errRes,
	}

	payload, _ := json.Marshal(resp)
	fmt.Fprintf(out, "%s\n", payload)
}

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "list_teams",
				"description": "List the teams in the current standings snapshot, ordered by points and goal difference.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "calculate_league_odds",
				"description": "Estimate via Monte Carlo simulation the probability that a team finishes the season at or above a target rank.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"team": map[string]interface{}{"type": "string"},
						"rank": map[string]interface{}{"type": "integer", "minimum": 1},
						"runs": map[string]interface{}{"type": "integer", "description": "Optional override of the simulation run count"},
					},
					"required": []string{"team", "rank"},
				},
			},
		},
	}
}

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}

	var data interface{}
	var err error

	switch call.Name {
	case "list_teams":
		data = s.standings.Standings()
	case "calculate_league_odds":
		data, err = s.handleCalculateOdds(call.Arguments)
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	if err != nil {
		return nil, map[string]interface{}{"code": -32000, "message": err.Error()}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": formatResult(data),
			},
		},
	}, nil
}

func (s *Server) handleCalculateOdds(args map[string]interface{}) (interface{}, error) {
	team, _ := args["team"].(string)
	if team == "" {
		return nil, fmt.Errorf("team is required")
	}
	rankF, ok := args["rank"].(float64)
	if !ok {
		return nil, fmt.Errorf("rank is required")
	}

	agg := *s.agg // shallow copy so a runs override stays request-local
	if runsF, ok := args["runs"].(float64); ok && int(runsF) > 0 {
		agg.Runs = int(runsF)
	}

	result, err := agg.Calculate(team, int(rankF), s.standings, s.fixtures)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"team":            team,
		"target_rank":     int(rankF),
		"success_percent": result.SuccessPercent,
		"average_wins":    result.AverageWins,
		"successes":       result.Successes,
		"runs":            result.Runs,
	}, nil
}

func formatResult(data interface{}) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
