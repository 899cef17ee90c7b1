package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	relerrors "relticket.dev/relticket/internal/errors"
	"relticket.dev/relticket/testhelpers"
)

func newReleaseContext(t *testing.T) *testhelpers.TestContext {
	t.Helper()
	cfg := testhelpers.NewTestConfig()
	cfg.ReleaseTag = "v2.0.0"
	tc := testhelpers.NewTestContext(t, cfg, "")
	tc.GitHub.Releases["v2.0.0"] = "## What's changed\n* Fix login #42\n* Speed up #43 (again #42)\n"
	tc.GitHub.AddPR(testhelpers.SamplePRData{
		Number:   42,
		Title:    "no ticket",
		Body:     "ABC-1",
		Comments: []string{"ABC-1 and XYZ-9"},
	})
	tc.GitHub.AddPR(testhelpers.SamplePRData{Number: 43, Commits: []string{"ENG-5 speed up"}})
	tc.Linear.WithState("ABC-1", "Passing").WithState("XYZ-9", "Done").WithState("ENG-5", "In Progress")
	return tc
}

func TestRun(t *testing.T) {
	t.Run("updates eligible tickets from the release", func(t *testing.T) {
		tc := newReleaseContext(t)

		summary, err := Run(tc.Ctx, Options{})
		require.NoError(t, err)
		require.Equal(t, 1, summary.Updated)
		require.Equal(t, 2, summary.Skipped)
		require.Equal(t, []string{"https://linear.app/acme/issue/ABC-1"}, tc.StdoutLines())
		require.Equal(t, []string{"ABC-1", "XYZ-9", "ENG-5"}, tc.Linear.QueryCalls())
		require.Equal(t, []string{"ABC-1"}, tc.Linear.MutationCalls())

		stderr := tc.Stderr.String()
		require.Contains(t, stderr, "parse-notes     : done")
		require.Contains(t, stderr, "extract-tickets : done")
		require.Contains(t, stderr, "update-tickets  : done")
	})

	t.Run("repeated pull request in the notes is resolved again without duplicating tickets", func(t *testing.T) {
		tc := newReleaseContext(t)

		_, err := Run(tc.Ctx, Options{})
		require.NoError(t, err)

		prLookups := 0
		for _, call := range tc.GitHub.Calls() {
			if call == "pr 42" {
				prLookups++
			}
		}
		require.Equal(t, 2, prLookups)
		require.Len(t, tc.Linear.QueryCalls(), 3)
	})

	t.Run("tickets are updated while notes are still being resolved", func(t *testing.T) {
		tc := newReleaseContext(t)
		var callsAtFirstMutation []string
		tc.Linear.OnMutate = func(string) {
			if callsAtFirstMutation == nil {
				callsAtFirstMutation = tc.GitHub.Calls()
			}
		}

		_, err := Run(tc.Ctx, Options{})
		require.NoError(t, err)
		require.Equal(t, []string{"release v2.0.0", "pr 42"}, callsAtFirstMutation)
		require.Contains(t, tc.GitHub.Calls(), "pr 43")
	})

	t.Run("dry-run and update-all-statuses", func(t *testing.T) {
		tc := newReleaseContext(t)
		tc.Ctx.Config.DryRun = true
		tc.Ctx.Config.UpdateAllStatuses = true

		summary, err := Run(tc.Ctx, Options{})
		require.NoError(t, err)
		require.Equal(t, 2, summary.WouldUpdate)
		require.Empty(t, tc.Linear.MutationCalls())
		require.Equal(t, []string{
			"https://linear.app/acme/issue/ABC-1",
			"https://linear.app/acme/issue/ENG-5",
		}, tc.StdoutLines())
	})

	t.Run("release tag is required", func(t *testing.T) {
		tc := newReleaseContext(t)
		tc.Ctx.Config.ReleaseTag = ""

		_, err := Run(tc.Ctx, Options{})
		require.ErrorIs(t, err, relerrors.ErrConfiguration)
		require.Contains(t, err.Error(), "--release-tag")
		require.Empty(t, tc.GitHub.Calls())
	})

	t.Run("tracker credentials are checked before any network call", func(t *testing.T) {
		tc := newReleaseContext(t)
		tc.Ctx.Config.LinearOrg = ""

		_, err := Run(tc.Ctx, Options{})
		require.ErrorIs(t, err, relerrors.ErrConfiguration)
		require.Empty(t, tc.GitHub.Calls())
	})

	t.Run("authentication failure upstream aborts the run", func(t *testing.T) {
		tc := newReleaseContext(t)
		tc.GitHub.Errors[43] = relerrors.NewAuthError("GitHub", nil)

		_, err := Run(tc.Ctx, Options{})
		require.ErrorIs(t, err, relerrors.ErrAuthentication)
		require.Equal(t, []string{"ABC-1"}, tc.Linear.MutationCalls())
		require.NotContains(t, tc.Stderr.String(), "update-tickets  : done")
	})

	t.Run("missing release", func(t *testing.T) {
		tc := newReleaseContext(t)
		tc.Ctx.Config.ReleaseTag = "v0.0.1"

		_, err := Run(tc.Ctx, Options{})
		require.ErrorIs(t, err, relerrors.ErrSourceUnavailable)
	})
}

func TestAction(t *testing.T) {
	tc := newReleaseContext(t)
	tc.Linear.QueryErrors["ENG-5"] = relerrors.NewNotFoundError("ticket", "ENG-5")

	err := Action(tc.Ctx, Options{})
	require.ErrorIs(t, err, relerrors.ErrItemsFailed)
	require.Equal(t, []string{"https://linear.app/acme/issue/ABC-1"}, tc.StdoutLines())
}
