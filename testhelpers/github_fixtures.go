package testhelpers

import (
	"strconv"

	"github.com/google/go-github/v62/github"
)

// SamplePRData provides common PR data for testing
type SamplePRData struct {
	Number   int
	Title    string
	Body     string
	Comments []string
	Commits  []string
}

// NewSamplePullRequest creates a github.PullRequest from sample data
func NewSamplePullRequest(data SamplePRData) *github.PullRequest {
	return &github.PullRequest{
		Number:  github.Int(data.Number),
		Title:   github.String(data.Title),
		Body:    github.String(data.Body),
		HTMLURL: github.String("https://github.com/owner/repo/pull/" + strconv.Itoa(data.Number)),
	}
}

// AddSamplePR registers a pull request with its comments and commits on the mock server config
func (c *MockGitHubServerConfig) AddSamplePR(data SamplePRData) {
	c.PRs[data.Number] = NewSamplePullRequest(data)
	for i, body := range data.Comments {
		c.Comments[data.Number] = append(c.Comments[data.Number], &github.IssueComment{
			ID:   github.Int64(int64(data.Number*1000 + i)),
			Body: github.String(body),
		})
	}
	for i, message := range data.Commits {
		c.Commits[data.Number] = append(c.Commits[data.Number], &github.RepositoryCommit{
			SHA:    github.String(strconv.Itoa(data.Number*1000 + i)),
			Commit: &github.Commit{Message: github.String(message)},
		})
	}
}

// AddRelease registers a published release with the given notes
func (c *MockGitHubServerConfig) AddRelease(tag, notes string) {
	c.Releases[tag] = &github.RepositoryRelease{
		TagName: github.String(tag),
		Name:    github.String(tag),
		Body:    github.String(notes),
	}
}
