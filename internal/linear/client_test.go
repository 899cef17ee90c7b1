package linear

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsDoneState(t *testing.T) {
	require.True(t, IsDoneState("Done", "completed"))
	require.True(t, IsDoneState("DONE", ""))
	require.True(t, IsDoneState("completed", ""))
	require.True(t, IsDoneState("Shipped", "completed"))
	require.False(t, IsDoneState("Passing", "started"))
	require.False(t, IsDoneState("In Progress", "started"))
}

func TestCompletedState(t *testing.T) {
	t.Run("prefers the completed type", func(t *testing.T) {
		state, ok := CompletedState([]WorkflowState{
			{ID: "1", Name: "Done", Type: "started"},
			{ID: "2", Name: "Shipped", Type: "completed"},
		})
		require.True(t, ok)
		require.Equal(t, "2", state.ID)
	})

	t.Run("falls back to the name", func(t *testing.T) {
		state, ok := CompletedState([]WorkflowState{
			{ID: "1", Name: "Todo", Type: "unstarted"},
			{ID: "2", Name: "Completed", Type: "custom"},
		})
		require.True(t, ok)
		require.Equal(t, "2", state.ID)
	})

	t.Run("no candidate", func(t *testing.T) {
		_, ok := CompletedState([]WorkflowState{{ID: "1", Name: "Todo", Type: "unstarted"}})
		require.False(t, ok)
	})
}

func TestIssueURL(t *testing.T) {
	require.Equal(t, "https://linear.app/acme/issue/ENG-7", IssueURL("acme", "ENG-7"))
	require.Equal(t, "https://linear.app/acme/issue/ENG-7", NewHTTPClient(Options{Org: "acme"}).IssueURL("ENG-7"))
}
