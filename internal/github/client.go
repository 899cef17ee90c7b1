package github

import (
	"context"
)

// PullRequest contains the fields of a pull request scanned for tickets.
// This is a simplified struct to avoid coupling to go-github library
type PullRequest struct {
	Number  int
	Title   string
	Body    string
	HTMLURL string
}

// Client is an interface for GitHub API interactions.
// Lookups of things that do not exist return an error matching
// errors.ErrSourceUnavailable; rejected credentials match errors.ErrAuthentication.
type Client interface {
	// GetReleaseNotes returns the body of the release published for tag
	GetReleaseNotes(ctx context.Context, tag string) (string, error)

	// GetPullRequest returns the title and description of a pull request
	GetPullRequest(ctx context.Context, number int) (*PullRequest, error)

	// ListComments returns the discussion comment bodies in chronological order
	ListComments(ctx context.Context, number int) ([]string, error)

	// ListCommitMessages returns the full message of every commit in the pull request
	ListCommitMessages(ctx context.Context, number int) ([]string, error)

	// GetOwnerRepo returns the repository owner and name
	GetOwnerRepo() (owner, repo string)
}
