package linear_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	relerrors "relticket.dev/relticket/internal/errors"
	"relticket.dev/relticket/internal/linear"
	"relticket.dev/relticket/testhelpers"
)

func newClient(t *testing.T, config *testhelpers.MockLinearServerConfig, apiKey string) *linear.HTTPClient {
	t.Helper()
	server := testhelpers.NewMockLinearServer(t, config)
	return linear.NewHTTPClient(linear.Options{
		APIKey:   apiKey,
		Org:      "acme",
		Endpoint: server.URL,
	})
}

func TestHTTPClient(t *testing.T) {
	ctx := context.Background()

	t.Run("GetIssue returns state and team", func(t *testing.T) {
		config := testhelpers.NewMockLinearServerConfig()
		config.AddIssue("ENG-1", "Passing")
		client := newClient(t, config, config.APIKey)

		issue, err := client.GetIssue(ctx, "ENG-1")
		require.NoError(t, err)
		require.Equal(t, "ENG-1", issue.Identifier)
		require.Equal(t, "Passing", issue.StateName)
		require.Equal(t, "started", issue.StateType)
		require.Equal(t, "team-1", issue.TeamID)
		require.Equal(t, "https://linear.app/acme/issue/ENG-1", issue.URL)
		require.False(t, issue.IsDone())
	})

	t.Run("missing issue is source unavailable", func(t *testing.T) {
		config := testhelpers.NewMockLinearServerConfig()
		client := newClient(t, config, config.APIKey)

		_, err := client.GetIssue(ctx, "ENG-404")
		require.ErrorIs(t, err, relerrors.ErrSourceUnavailable)
		require.False(t, relerrors.IsFatal(err))
	})

	t.Run("rejected key is an authentication failure", func(t *testing.T) {
		config := testhelpers.NewMockLinearServerConfig()
		config.AddIssue("ENG-1", "Passing")
		client := newClient(t, config, "wrong")

		_, err := client.GetIssue(ctx, "ENG-1")
		require.ErrorIs(t, err, relerrors.ErrAuthentication)
		require.True(t, relerrors.IsFatal(err))
	})

	t.Run("CompleteIssue moves the issue to the completed state", func(t *testing.T) {
		config := testhelpers.NewMockLinearServerConfig()
		config.AddIssue("ENG-1", "Passing")
		client := newClient(t, config, config.APIKey)

		issue, err := client.GetIssue(ctx, "ENG-1")
		require.NoError(t, err)
		require.NoError(t, client.CompleteIssue(ctx, issue))
		require.Equal(t, []string{"ENG-1=state-done"}, config.Mutations())

		issue, err = client.GetIssue(ctx, "ENG-1")
		require.NoError(t, err)
		require.True(t, issue.IsDone())
	})

	t.Run("unsuccessful mutation is an error", func(t *testing.T) {
		config := testhelpers.NewMockLinearServerConfig()
		config.AddIssue("ENG-1", "Passing")
		config.FailMutations = true
		client := newClient(t, config, config.APIKey)

		issue, err := client.GetIssue(ctx, "ENG-1")
		require.NoError(t, err)
		err = client.CompleteIssue(ctx, issue)
		require.Error(t, err)
		require.False(t, relerrors.IsFatal(err))
	})

	t.Run("team without a completed state", func(t *testing.T) {
		config := testhelpers.NewMockLinearServerConfig()
		config.Teams["team-2"] = []testhelpers.MockLinearState{{ID: "s1", Name: "Todo", Type: "unstarted"}}
		config.Issues["OPS-1"] = &testhelpers.MockLinearIssue{StateID: "s1", TeamID: "team-2"}
		client := newClient(t, config, config.APIKey)

		issue, err := client.GetIssue(ctx, "OPS-1")
		require.NoError(t, err)
		err = client.CompleteIssue(ctx, issue)
		require.Error(t, err)
		require.Contains(t, err.Error(), "no done or completed workflow state")
		require.Empty(t, config.Mutations())
	})
}
