package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	relerrors "relticket.dev/relticket/internal/errors"
)

// DefaultTimeout bounds a single GraphQL round trip
const DefaultTimeout = 30 * time.Second

const issueQuery = `query Issue($id: String!) {
	issue(id: $id) {
		identifier
		url
		state { name type }
		team { id }
	}
}`

const teamStatesQuery = `query TeamStates($teamId: String!) {
	team(id: $teamId) {
		states { nodes { id name type } }
	}
}`

const completeMutation = `mutation CompleteIssue($id: String!, $stateId: String!) {
	issueUpdate(id: $id, input: { stateId: $stateId }) {
		success
	}
}`

// errNotFound marks a GraphQL response reporting a missing entity
var errNotFound = errors.New("entity not found")

// Options configures an HTTPClient
type Options struct {
	APIKey   string
	Org      string
	Endpoint string
	// HTTPClient defaults to an http.Client with DefaultTimeout
	HTTPClient *http.Client
}

// HTTPClient implements Client against the Linear GraphQL endpoint
type HTTPClient struct {
	apiKey     string
	org        string
	endpoint   string
	httpClient *http.Client
}

// NewHTTPClient creates a Linear client
func NewHTTPClient(opts Options) *HTTPClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPClient{
		apiKey:     opts.APIKey,
		org:        opts.Org,
		endpoint:   opts.Endpoint,
		httpClient: httpClient,
	}
}

// IssueURL returns the web URL of an issue in the configured organization
func (c *HTTPClient) IssueURL(identifier string) string {
	return IssueURL(c.org, identifier)
}

// GetIssue fetches the current workflow state of an issue
func (c *HTTPClient) GetIssue(ctx context.Context, identifier string) (*Issue, error) {
	var data struct {
		Issue *struct {
			Identifier string `json:"identifier"`
			URL        string `json:"url"`
			State      struct {
				Name string `json:"name"`
				Type string `json:"type"`
			} `json:"state"`
			Team struct {
				ID string `json:"id"`
			} `json:"team"`
		} `json:"issue"`
	}

	err := c.do(ctx, "Issue", issueQuery, map[string]any{"id": identifier}, &data)
	if errors.Is(err, errNotFound) || (err == nil && data.Issue == nil) {
		return nil, relerrors.NewNotFoundError("ticket", identifier)
	}
	if err != nil {
		return nil, err
	}

	issue := &Issue{
		Identifier: data.Issue.Identifier,
		URL:        data.Issue.URL,
		StateName:  data.Issue.State.Name,
		StateType:  data.Issue.State.Type,
		TeamID:     data.Issue.Team.ID,
	}
	if issue.Identifier == "" {
		issue.Identifier = identifier
	}
	if issue.URL == "" {
		issue.URL = c.IssueURL(issue.Identifier)
	}
	return issue, nil
}

// CompleteIssue moves an issue to its team's completed state
func (c *HTTPClient) CompleteIssue(ctx context.Context, issue *Issue) error {
	states, err := c.teamStates(ctx, issue.TeamID)
	if err != nil {
		return err
	}

	target, ok := CompletedState(states)
	if !ok {
		return fmt.Errorf("team %s has no done or completed workflow state", issue.TeamID)
	}

	var data struct {
		IssueUpdate struct {
			Success bool `json:"success"`
		} `json:"issueUpdate"`
	}
	vars := map[string]any{"id": issue.Identifier, "stateId": target.ID}
	if err := c.do(ctx, "CompleteIssue", completeMutation, vars, &data); err != nil {
		return err
	}
	if !data.IssueUpdate.Success {
		return fmt.Errorf("issueUpdate reported success=false")
	}
	return nil
}

func (c *HTTPClient) teamStates(ctx context.Context, teamID string) ([]WorkflowState, error) {
	if teamID == "" {
		return nil, fmt.Errorf("issue has no team")
	}

	var data struct {
		Team *struct {
			States struct {
				Nodes []struct {
					ID   string `json:"id"`
					Name string `json:"name"`
					Type string `json:"type"`
				} `json:"nodes"`
			} `json:"states"`
		} `json:"team"`
	}
	if err := c.do(ctx, "TeamStates", teamStatesQuery, map[string]any{"teamId": teamID}, &data); err != nil {
		return nil, err
	}
	if data.Team == nil {
		return nil, fmt.Errorf("team %s not found", teamID)
	}

	states := make([]WorkflowState, 0, len(data.Team.States.Nodes))
	for _, n := range data.Team.States.Nodes {
		states = append(states, WorkflowState{ID: n.ID, Name: n.Name, Type: n.Type})
	}
	return states, nil
}

type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
		Type string `json:"type"`
	} `json:"extensions"`
}

// do executes one GraphQL operation and decodes its data into out
func (c *HTTPClient) do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	requestBody := map[string]any{
		"query":     query,
		"variables": variables,
	}
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create GraphQL request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Personal API keys are sent as-is, without a Bearer prefix
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute GraphQL %s: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read GraphQL response: %w", err)
	}

	var graphqlResponse struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	// Error statuses may still carry a GraphQL error body
	_ = json.Unmarshal(body, &graphqlResponse)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden || isAuthError(graphqlResponse.Errors) {
		return relerrors.NewAuthError("Linear", fmt.Errorf("GraphQL %s returned status %d", operation, resp.StatusCode))
	}
	if len(graphqlResponse.Errors) > 0 {
		messages := make([]string, len(graphqlResponse.Errors))
		notFound := false
		for i, e := range graphqlResponse.Errors {
			messages[i] = e.Message
			if strings.Contains(strings.ToLower(e.Message), "not found") {
				notFound = true
			}
		}
		err := fmt.Errorf("GraphQL %s failed: %s", operation, strings.Join(messages, "; "))
		if notFound {
			return fmt.Errorf("%w: %w", errNotFound, err)
		}
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GraphQL %s failed with status %d: %s", operation, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(graphqlResponse.Data, out); err != nil {
		return fmt.Errorf("failed to parse GraphQL %s response: %w", operation, err)
	}
	return nil
}

func isAuthError(errs []graphqlError) bool {
	for _, e := range errs {
		if e.Extensions.Code == "AUTHENTICATION_ERROR" || strings.EqualFold(e.Extensions.Type, "authentication error") {
			return true
		}
	}
	return false
}
