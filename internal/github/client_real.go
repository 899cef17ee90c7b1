package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/go-github/v62/github"

	relerrors "relticket.dev/relticket/internal/errors"
)

// pageSize is the page size used for paginated listings
const pageSize = 100

// RealClient implements Client using the GitHub API
type RealClient struct {
	client *github.Client
	owner  string
	repo   string
}

// NewRealClient creates a client for the repository described by info,
// authenticating with the token from the environment or the gh CLI.
func NewRealClient(ctx context.Context, info *RepoInfo) (*RealClient, error) {
	token, err := getGitHubToken(ctx)
	if err != nil {
		return nil, err
	}

	client, err := createGitHubClient(ctx, info.Hostname, token)
	if err != nil {
		return nil, err
	}

	return NewClientFromGitHub(client, info.Owner, info.Repo), nil
}

// NewClientFromGitHub wraps an already configured go-github client
func NewClientFromGitHub(client *github.Client, owner, repo string) *RealClient {
	return &RealClient{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

// GetReleaseNotes returns the body of the release published for tag
func (c *RealClient) GetReleaseNotes(ctx context.Context, tag string) (string, error) {
	release, _, err := c.client.Repositories.GetReleaseByTag(ctx, c.owner, c.repo, tag)
	if err != nil {
		return "", classify(err, "release", tag)
	}
	return release.GetBody(), nil
}

// GetPullRequest returns the title and description of a pull request
func (c *RealClient) GetPullRequest(ctx context.Context, number int) (*PullRequest, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, classify(err, "pull request", "#"+strconv.Itoa(number))
	}
	return &PullRequest{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		HTMLURL: pr.GetHTMLURL(),
	}, nil
}

// ListComments returns the discussion comment bodies in chronological order
func (c *RealClient) ListComments(ctx context.Context, number int) ([]string, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	var bodies []string
	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, classify(err, "comments for pull request", "#"+strconv.Itoa(number))
		}
		for _, comment := range comments {
			bodies = append(bodies, comment.GetBody())
		}
		if resp.NextPage == 0 {
			return bodies, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListCommitMessages returns the full message of every commit in the pull request
func (c *RealClient) ListCommitMessages(ctx context.Context, number int) ([]string, error) {
	opts := &github.ListOptions{PerPage: pageSize}

	var messages []string
	for {
		commits, resp, err := c.client.PullRequests.ListCommits(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, classify(err, "commits for pull request", "#"+strconv.Itoa(number))
		}
		for _, commit := range commits {
			messages = append(messages, commit.GetCommit().GetMessage())
		}
		if resp.NextPage == 0 {
			return messages, nil
		}
		opts.Page = resp.NextPage
	}
}

// GetOwnerRepo returns the repository owner and name
func (c *RealClient) GetOwnerRepo() (string, string) {
	return c.owner, c.repo
}

// classify maps API error responses onto the error taxonomy
func classify(err error, kind, id string) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return relerrors.NewNotFoundError(kind, id)
		case http.StatusUnauthorized, http.StatusForbidden:
			return relerrors.NewAuthError("GitHub", err)
		}
	}
	return fmt.Errorf("failed to fetch %s %s: %w", kind, id, err)
}
