package linear

import (
	"context"
	"fmt"
	"strings"
)

// Issue is the tracker's view of a ticket at query time
type Issue struct {
	Identifier string
	URL        string
	StateName  string
	StateType  string
	TeamID     string
}

// IsDone reports whether the issue is already in a done or completed state
func (i *Issue) IsDone() bool {
	return IsDoneState(i.StateName, i.StateType)
}

// WorkflowState is one of a team's workflow states
type WorkflowState struct {
	ID   string
	Name string
	Type string
}

// StateTypeCompleted is the Linear state type of done-like states
const StateTypeCompleted = "completed"

// IsDoneState reports whether a state name or type means "done"
func IsDoneState(name, stateType string) bool {
	return strings.EqualFold(name, "done") ||
		strings.EqualFold(name, "completed") ||
		strings.EqualFold(stateType, StateTypeCompleted)
}

// CompletedState picks the state an issue is moved to: the first state of
// type completed, else the first state named done or completed.
func CompletedState(states []WorkflowState) (WorkflowState, bool) {
	for _, s := range states {
		if strings.EqualFold(s.Type, StateTypeCompleted) {
			return s, true
		}
	}
	for _, s := range states {
		if IsDoneState(s.Name, "") {
			return s, true
		}
	}
	return WorkflowState{}, false
}

// IssueURL returns the canonical web URL of an issue in an organization
func IssueURL(org, identifier string) string {
	return fmt.Sprintf("https://linear.app/%s/issue/%s", org, identifier)
}

// Client is an interface for Linear API interactions.
// A ticket that does not exist returns an error matching errors.ErrSourceUnavailable;
// rejected credentials match errors.ErrAuthentication.
type Client interface {
	// GetIssue fetches the current workflow state of an issue
	GetIssue(ctx context.Context, identifier string) (*Issue, error)

	// CompleteIssue moves an issue to its team's completed state
	CompleteIssue(ctx context.Context, issue *Issue) error

	// IssueURL returns the web URL of an issue, also for issues that could not be fetched
	IssueURL(identifier string) string
}
