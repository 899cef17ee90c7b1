package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// MockLinearState is a workflow state served by the mock Linear server
type MockLinearState struct {
	ID   string
	Name string
	Type string
}

// MockLinearIssue is an issue served by the mock Linear server
type MockLinearIssue struct {
	StateID string
	TeamID  string
}

// MockLinearServerConfig configures the behavior of a mock Linear GraphQL server
type MockLinearServerConfig struct {
	// APIKey is the Authorization value accepted; other values get AUTHENTICATION_ERROR
	APIKey string
	// Issues maps identifiers to issues
	Issues map[string]*MockLinearIssue
	// Teams maps team ids to their workflow states
	Teams map[string][]MockLinearState
	// FailMutations makes issueUpdate report success=false
	FailMutations bool

	mu        sync.Mutex
	queries   int
	mutations []string
}

// NewMockLinearServerConfig creates a config with one team "team-1" holding
// the usual workflow states
func NewMockLinearServerConfig() *MockLinearServerConfig {
	return &MockLinearServerConfig{
		APIKey: "lin_api_test",
		Issues: make(map[string]*MockLinearIssue),
		Teams: map[string][]MockLinearState{
			"team-1": {
				{ID: "state-backlog", Name: "Backlog", Type: "backlog"},
				{ID: "state-progress", Name: "In Progress", Type: "started"},
				{ID: "state-passing", Name: "Passing", Type: "started"},
				{ID: "state-done", Name: "Done", Type: "completed"},
				{ID: "state-canceled", Name: "Canceled", Type: "canceled"},
			},
		},
	}
}

// AddIssue registers an issue of team-1 in the named state
func (c *MockLinearServerConfig) AddIssue(identifier, stateName string) {
	for _, s := range c.Teams["team-1"] {
		if s.Name == stateName {
			c.Issues[identifier] = &MockLinearIssue{StateID: s.ID, TeamID: "team-1"}
			return
		}
	}
	panic("unknown state " + stateName)
}

// Mutations returns "identifier=stateId" for every issueUpdate received
func (c *MockLinearServerConfig) Mutations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.mutations...)
}

// Queries returns the number of read operations received
func (c *MockLinearServerConfig) Queries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queries
}

func (c *MockLinearServerConfig) state(teamID, stateID string) MockLinearState {
	for _, s := range c.Teams[teamID] {
		if s.ID == stateID {
			return s
		}
	}
	return MockLinearState{}
}

// NewMockLinearServer creates an httptest server that answers the Linear
// GraphQL operations used by relticket
func NewMockLinearServer(t *testing.T, config *MockLinearServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockLinearServerConfig()
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string            `json:"query"`
			Variables map[string]string `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if r.Header.Get("Authorization") != config.APIKey {
			writeGraphQL(w, http.StatusBadRequest, nil, map[string]any{
				"message":    "Authentication required, not authenticated",
				"extensions": map[string]string{"code": "AUTHENTICATION_ERROR", "type": "authentication error"},
			})
			return
		}

		config.mu.Lock()
		defer config.mu.Unlock()

		switch {
		case strings.Contains(req.Query, "issueUpdate("):
			id := req.Variables["id"]
			config.mutations = append(config.mutations, id+"="+req.Variables["stateId"])
			issue, ok := config.Issues[id]
			if !ok {
				writeGraphQL(w, http.StatusOK, nil, map[string]any{"message": "Entity not found: Issue"})
				return
			}
			if config.FailMutations {
				writeGraphQL(w, http.StatusOK, map[string]any{"issueUpdate": map[string]any{"success": false}}, nil)
				return
			}
			issue.StateID = req.Variables["stateId"]
			writeGraphQL(w, http.StatusOK, map[string]any{"issueUpdate": map[string]any{"success": true}}, nil)

		case strings.Contains(req.Query, "team(id:"):
			config.queries++
			states, ok := config.Teams[req.Variables["teamId"]]
			if !ok {
				writeGraphQL(w, http.StatusOK, map[string]any{"team": nil}, nil)
				return
			}
			nodes := make([]map[string]string, 0, len(states))
			for _, s := range states {
				nodes = append(nodes, map[string]string{"id": s.ID, "name": s.Name, "type": s.Type})
			}
			writeGraphQL(w, http.StatusOK, map[string]any{
				"team": map[string]any{"states": map[string]any{"nodes": nodes}},
			}, nil)

		case strings.Contains(req.Query, "issue(id:"):
			config.queries++
			id := req.Variables["id"]
			issue, ok := config.Issues[id]
			if !ok {
				writeGraphQL(w, http.StatusOK, map[string]any{"issue": nil}, map[string]any{"message": "Entity not found: Issue"})
				return
			}
			state := config.state(issue.TeamID, issue.StateID)
			writeGraphQL(w, http.StatusOK, map[string]any{"issue": map[string]any{
				"identifier": id,
				"url":        "https://linear.app/acme/issue/" + id,
				"state":      map[string]string{"name": state.Name, "type": state.Type},
				"team":       map[string]string{"id": issue.TeamID},
			}}, nil)

		default:
			http.Error(w, "unsupported operation", http.StatusBadRequest)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func writeGraphQL(w http.ResponseWriter, status int, data any, gqlErr map[string]any) {
	body := map[string]any{"data": data}
	if gqlErr != nil {
		body["errors"] = []map[string]any{gqlErr}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
