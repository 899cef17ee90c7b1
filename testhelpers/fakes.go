package testhelpers

import (
	"context"
	"strconv"
	"sync"

	relerrors "relticket.dev/relticket/internal/errors"
	"relticket.dev/relticket/internal/github"
	"relticket.dev/relticket/internal/linear"
)

// FakeGitHub is an in-memory github.Client
type FakeGitHub struct {
	Releases map[string]string
	PRs      map[int]SamplePRData
	// Errors maps a pull request number to the error every lookup for it returns
	Errors map[int]error
	// CommentErrors maps a pull request number to the error ListComments returns
	CommentErrors map[int]error
	// ReleaseErr, when set, is returned by GetReleaseNotes
	ReleaseErr error

	mu    sync.Mutex
	calls []string
}

var _ github.Client = (*FakeGitHub)(nil)

// NewFakeGitHub creates an empty fake
func NewFakeGitHub() *FakeGitHub {
	return &FakeGitHub{
		Releases: make(map[string]string),
		PRs:      make(map[int]SamplePRData),
		Errors:   make(map[int]error),

		CommentErrors: make(map[int]error),
	}
}

// AddPR registers a pull request
func (f *FakeGitHub) AddPR(data SamplePRData) *FakeGitHub {
	f.PRs[data.Number] = data
	return f
}

// Calls returns the operations performed, like "pr 42" or "comments 42"
func (f *FakeGitHub) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FakeGitHub) record(op string, arg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op+" "+arg)
}

func (f *FakeGitHub) lookup(number int) (SamplePRData, error) {
	if err, ok := f.Errors[number]; ok {
		return SamplePRData{}, err
	}
	pr, ok := f.PRs[number]
	if !ok {
		return SamplePRData{}, relerrors.NewNotFoundError("pull request", "#"+strconv.Itoa(number))
	}
	return pr, nil
}

// GetReleaseNotes implements github.Client
func (f *FakeGitHub) GetReleaseNotes(_ context.Context, tag string) (string, error) {
	f.record("release", tag)
	if f.ReleaseErr != nil {
		return "", f.ReleaseErr
	}
	notes, ok := f.Releases[tag]
	if !ok {
		return "", relerrors.NewNotFoundError("release", tag)
	}
	return notes, nil
}

// GetPullRequest implements github.Client
func (f *FakeGitHub) GetPullRequest(ctx context.Context, number int) (*github.PullRequest, error) {
	f.record("pr", strconv.Itoa(number))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pr, err := f.lookup(number)
	if err != nil {
		return nil, err
	}
	return &github.PullRequest{
		Number:  pr.Number,
		Title:   pr.Title,
		Body:    pr.Body,
		HTMLURL: "https://github.com/owner/repo/pull/" + strconv.Itoa(pr.Number),
	}, nil
}

// ListComments implements github.Client
func (f *FakeGitHub) ListComments(ctx context.Context, number int) ([]string, error) {
	f.record("comments", strconv.Itoa(number))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.CommentErrors[number]; ok {
		return nil, err
	}
	pr, err := f.lookup(number)
	if err != nil {
		return nil, err
	}
	return pr.Comments, nil
}

// ListCommitMessages implements github.Client
func (f *FakeGitHub) ListCommitMessages(ctx context.Context, number int) ([]string, error) {
	f.record("commits", strconv.Itoa(number))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pr, err := f.lookup(number)
	if err != nil {
		return nil, err
	}
	return pr.Commits, nil
}

// GetOwnerRepo implements github.Client
func (f *FakeGitHub) GetOwnerRepo() (string, string) {
	return "owner", "repo"
}

// FakeLinear is an in-memory linear.Client with call counters
type FakeLinear struct {
	Org string
	// States maps identifiers to their current state name
	States map[string]string
	// QueryErrors and MutationErrors map identifiers to injected failures
	QueryErrors    map[string]error
	MutationErrors map[string]error
	// OnMutate, when set, is called with each identifier passed to CompleteIssue
	OnMutate func(identifier string)

	mu            sync.Mutex
	queryCalls    []string
	mutationCalls []string
}

var _ linear.Client = (*FakeLinear)(nil)

// NewFakeLinear creates a fake for the "acme" organization
func NewFakeLinear() *FakeLinear {
	return &FakeLinear{
		Org:            "acme",
		States:         make(map[string]string),
		QueryErrors:    make(map[string]error),
		MutationErrors: make(map[string]error),
	}
}

// WithState sets the current state of an issue
func (f *FakeLinear) WithState(identifier, state string) *FakeLinear {
	f.States[identifier] = state
	return f
}

// QueryCalls returns the identifiers queried, in order
func (f *FakeLinear) QueryCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queryCalls...)
}

// MutationCalls returns the identifiers mutated, in order
func (f *FakeLinear) MutationCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.mutationCalls...)
}

// IssueURL implements linear.Client
func (f *FakeLinear) IssueURL(identifier string) string {
	return linear.IssueURL(f.Org, identifier)
}

// GetIssue implements linear.Client
func (f *FakeLinear) GetIssue(ctx context.Context, identifier string) (*linear.Issue, error) {
	f.mu.Lock()
	f.queryCalls = append(f.queryCalls, identifier)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err, ok := f.QueryErrors[identifier]; ok {
		return nil, err
	}
	state, ok := f.States[identifier]
	if !ok {
		return nil, relerrors.NewNotFoundError("ticket", identifier)
	}
	stateType := "started"
	if linear.IsDoneState(state, "") {
		stateType = linear.StateTypeCompleted
	}
	return &linear.Issue{
		Identifier: identifier,
		URL:        f.IssueURL(identifier),
		StateName:  state,
		StateType:  stateType,
		TeamID:     "team-1",
	}, nil
}

// CompleteIssue implements linear.Client
func (f *FakeLinear) CompleteIssue(ctx context.Context, issue *linear.Issue) error {
	if f.OnMutate != nil {
		f.OnMutate(issue.Identifier)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutationCalls = append(f.mutationCalls, issue.Identifier)

	if err, ok := f.MutationErrors[issue.Identifier]; ok {
		return err
	}
	f.States[issue.Identifier] = "Done"
	return nil
}
