package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinels(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		sentinel error
		fatal    bool
	}{
		{"config", NewConfigError("missing %s", "key"), ErrConfiguration, true},
		{"not found", NewNotFoundError("ticket", "ABC-1"), ErrSourceUnavailable, false},
		{"auth", NewAuthError("Linear", cause), ErrAuthentication, true},
		{"io", NewIOError("stdin", cause), ErrIO, true},
		{"query", NewQueryError("ABC-1", cause), ErrQueryFailed, false},
		{"mutation", NewMutationError("ABC-1", cause), ErrMutationFailed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("stage: %w", tt.err)
			require.ErrorIs(t, wrapped, tt.sentinel)
			require.Equal(t, tt.fatal, IsFatal(wrapped))
		})
	}
}

func TestContextErrorsAreFatal(t *testing.T) {
	require.True(t, IsFatal(fmt.Errorf("failed to execute GraphQL query: %w", context.Canceled)))
	require.True(t, IsFatal(context.DeadlineExceeded))
	require.False(t, IsFatal(errors.New("502 bad gateway")))
}

func TestMessages(t *testing.T) {
	require.Equal(t, "ticket ABC-1 not found", NewNotFoundError("ticket", "ABC-1").Error())
	require.Equal(t, "GitHub rejected credentials", NewAuthError("GitHub", nil).Error())
	require.Equal(t, "i/o error on notes.md: permission denied", NewIOError("notes.md", errors.New("permission denied")).Error())
	require.Equal(t, "query failed for ABC-1: boom", NewQueryError("ABC-1", errors.New("boom")).Error())
}

func TestTicketErrorUnwrap(t *testing.T) {
	err := NewMutationError("ABC-1", NewNotFoundError("ticket", "ABC-1"))
	require.ErrorIs(t, err, ErrMutationFailed)
	require.ErrorIs(t, err, ErrSourceUnavailable)
	require.NotErrorIs(t, err, ErrQueryFailed)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "ABC-1", notFound.ID)
}

func TestCommandError(t *testing.T) {
	err := NewCommandError("gh", []string{"auth", "token"}, "not logged in", errors.New("exit status 1"))
	require.Equal(t, "gh command failed: auth token\nstderr: not logged in\nexit status 1", err.Error())
}
