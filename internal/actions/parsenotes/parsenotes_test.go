package parsenotes

import (
	"io"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"relticket.dev/relticket/internal/actions"
	relerrors "relticket.dev/relticket/internal/errors"
	"relticket.dev/relticket/internal/utils"
	"relticket.dev/relticket/testhelpers"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []actions.PRNumber
	}{
		{"duplicates kept in order", "Fixed #42 and also #42 again, see #7", []actions.PRNumber{42, 42, 7}},
		{"merge summary", "Merge pull request #123 from acme/feature", []actions.PRNumber{123}},
		{"markdown link", "* Add thing ([#9](https://example.com))", []actions.PRNumber{9}},
		{"pull request URL", "* Fix by @dev in https://github.com/acme/widgets/pull/88", []actions.PRNumber{88}},
		{"URL with fragment", "https://github.com/acme/widgets/pull/88#issuecomment-1", []actions.PRNumber{88}},
		{"zero ignored", "#0 and #5", []actions.PRNumber{5}},
		{"no match", "nothing to see, # 12 or PR12", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLine(tt.line))
		})
	}
}

func TestStream(t *testing.T) {
	t.Run("yields references from every line", func(t *testing.T) {
		tc := testhelpers.NewTestContext(t, nil, "")
		lines := utils.Lines(strings.NewReader("## Changes\n* one #1\n* two #2, #3\n"), "notes")

		var got []actions.PRNumber
		for n, err := range Stream(tc.Ctx, lines) {
			require.NoError(t, err)
			got = append(got, n)
		}
		require.Equal(t, []actions.PRNumber{1, 2, 3}, got)
		require.Contains(t, tc.Stderr.String(), "parse-notes     : done")
		require.NotContains(t, tc.Stderr.String(), "no changes made")
	})

	t.Run("empty input is not an error", func(t *testing.T) {
		tc := testhelpers.NewTestContext(t, nil, "")
		count := 0
		for _, err := range Stream(tc.Ctx, utils.Lines(strings.NewReader("no refs here\n"), "notes")) {
			require.NoError(t, err)
			count++
		}
		require.Zero(t, count)
		require.Contains(t, tc.Stderr.String(), "no changes made")
	})

	t.Run("emits the first match before input ends", func(t *testing.T) {
		tc := testhelpers.NewTestContext(t, nil, "")
		r, w := io.Pipe()
		next, stop := iter.Pull2(Stream(tc.Ctx, utils.Lines(r, "stdin")))
		defer stop()

		go func() {
			_, _ = w.Write([]byte("first #10\n"))
		}()

		n, err, ok := next()
		require.True(t, ok)
		require.NoError(t, err)
		require.Equal(t, actions.PRNumber(10), n)

		_ = w.Close()
		_, _, ok = next()
		require.False(t, ok)
	})

	t.Run("read failure is fatal", func(t *testing.T) {
		tc := testhelpers.NewTestContext(t, nil, "")
		lines := func(yield func(string, error) bool) {
			if !yield("#1", nil) {
				return
			}
			yield("", relerrors.NewIOError("stdin", io.ErrUnexpectedEOF))
		}

		var got []actions.PRNumber
		var streamErr error
		for n, err := range Stream(tc.Ctx, lines) {
			if err != nil {
				streamErr = err
				break
			}
			got = append(got, n)
		}
		require.Equal(t, []actions.PRNumber{1}, got)
		require.ErrorIs(t, streamErr, relerrors.ErrIO)
	})
}

func TestAction(t *testing.T) {
	t.Run("reads stdin", func(t *testing.T) {
		tc := testhelpers.NewTestContext(t, nil, "Fixed #42 and also #42 again, see #7\n")
		require.NoError(t, Action(tc.Ctx, Options{}))
		require.Equal(t, []string{"42", "42", "7"}, tc.StdoutLines())
	})

	t.Run("reads the release notes for a tag", func(t *testing.T) {
		tc := testhelpers.NewTestContext(t, nil, "")
		tc.GitHub.Releases["v1.0.0"] = "* a #5\n* b https://github.com/owner/repo/pull/6\n"

		require.NoError(t, Action(tc.Ctx, Options{ReleaseTag: "v1.0.0"}))
		require.Equal(t, []string{"5", "6"}, tc.StdoutLines())
		require.Equal(t, []string{"release v1.0.0"}, tc.GitHub.Calls())
	})

	t.Run("unknown tag is source unavailable", func(t *testing.T) {
		tc := testhelpers.NewTestContext(t, nil, "")
		err := Action(tc.Ctx, Options{ReleaseTag: "v0.0.0"})
		require.ErrorIs(t, err, relerrors.ErrSourceUnavailable)
		require.Empty(t, tc.Stdout.String())
	})

	t.Run("tag and files together is a configuration error", func(t *testing.T) {
		tc := testhelpers.NewTestContext(t, nil, "")
		err := Action(tc.Ctx, Options{ReleaseTag: "v1", Sources: []utils.InputSource{{Path: "notes.md"}}})
		require.ErrorIs(t, err, relerrors.ErrConfiguration)
		require.Empty(t, tc.GitHub.Calls())
	})
}
