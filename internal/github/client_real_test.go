package github_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	relerrors "relticket.dev/relticket/internal/errors"
	"relticket.dev/relticket/internal/github"
	"relticket.dev/relticket/testhelpers"
)

func newClient(t *testing.T, config *testhelpers.MockGitHubServerConfig) *github.RealClient {
	t.Helper()
	client, owner, repo := testhelpers.NewMockGitHubClient(t, config)
	return github.NewClientFromGitHub(client, owner, repo)
}

func TestRealClient(t *testing.T) {
	ctx := context.Background()

	t.Run("release notes by tag", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.AddRelease("v1.2.0", "* Fix crash #12\n* Add thing #13\n")
		client := newClient(t, config)

		notes, err := client.GetReleaseNotes(ctx, "v1.2.0")
		require.NoError(t, err)
		require.Equal(t, "* Fix crash #12\n* Add thing #13\n", notes)
	})

	t.Run("missing release is source unavailable", func(t *testing.T) {
		client := newClient(t, testhelpers.NewMockGitHubServerConfig())

		_, err := client.GetReleaseNotes(ctx, "v9.9.9")
		require.ErrorIs(t, err, relerrors.ErrSourceUnavailable)
		require.Contains(t, err.Error(), "release v9.9.9 not found")
	})

	t.Run("pull request fields", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.AddSamplePR(testhelpers.SamplePRData{Number: 42, Title: "ENG-1 title", Body: "body"})
		client := newClient(t, config)

		pr, err := client.GetPullRequest(ctx, 42)
		require.NoError(t, err)
		require.Equal(t, 42, pr.Number)
		require.Equal(t, "ENG-1 title", pr.Title)
		require.Equal(t, "body", pr.Body)
	})

	t.Run("missing pull request is source unavailable", func(t *testing.T) {
		client := newClient(t, testhelpers.NewMockGitHubServerConfig())

		_, err := client.GetPullRequest(ctx, 7)
		require.ErrorIs(t, err, relerrors.ErrSourceUnavailable)
	})

	t.Run("comments and commits are paginated in order", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		comments := make([]string, 0, 150)
		for i := range 150 {
			comments = append(comments, "comment "+string(rune('a'+i%26)))
		}
		config.AddSamplePR(testhelpers.SamplePRData{
			Number:   5,
			Comments: comments,
			Commits:  []string{"first\n\nENG-1 body", "second"},
		})
		client := newClient(t, config)

		gotComments, err := client.ListComments(ctx, 5)
		require.NoError(t, err)
		require.Equal(t, comments, gotComments)

		gotCommits, err := client.ListCommitMessages(ctx, 5)
		require.NoError(t, err)
		require.Equal(t, []string{"first\n\nENG-1 body", "second"}, gotCommits)

		pages := 0
		for _, req := range config.Requests() {
			if strings.Contains(req, "/issues/5/comments") {
				pages++
			}
		}
		require.Equal(t, 2, pages)
	})

	t.Run("rejected credentials are authentication failures", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.AddSamplePR(testhelpers.SamplePRData{Number: 1})
		config.StatusOverrides["/repos/owner/repo/pulls/1"] = http.StatusUnauthorized
		client := newClient(t, config)

		_, err := client.GetPullRequest(ctx, 1)
		require.ErrorIs(t, err, relerrors.ErrAuthentication)
		require.True(t, relerrors.IsFatal(err))
	})

	t.Run("server errors are neither fatal nor not-found", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.AddSamplePR(testhelpers.SamplePRData{Number: 1})
		config.StatusOverrides["/repos/owner/repo/issues/1/comments"] = http.StatusInternalServerError
		client := newClient(t, config)

		_, err := client.ListComments(ctx, 1)
		require.Error(t, err)
		require.False(t, relerrors.IsFatal(err))
		require.NotErrorIs(t, err, relerrors.ErrSourceUnavailable)
	})

	t.Run("owner and repo", func(t *testing.T) {
		client := newClient(t, testhelpers.NewMockGitHubServerConfig())
		owner, repo := client.GetOwnerRepo()
		require.Equal(t, "owner", owner)
		require.Equal(t, "repo", repo)
	})
}
