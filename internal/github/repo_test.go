package github

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGitHubRemoteURL(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		want   RepoInfo
	}{
		{"https", "https://github.com/acme/widgets.git", RepoInfo{"github.com", "acme", "widgets"}},
		{"https without suffix", "https://github.com/acme/widgets", RepoInfo{"github.com", "acme", "widgets"}},
		{"scp", "git@github.com:acme/widgets.git", RepoInfo{"github.com", "acme", "widgets"}},
		{"ssh scheme", "ssh://git@github.example.com/acme/widgets.git", RepoInfo{"github.example.com", "acme", "widgets"}},
		{"enterprise https", "https://github.example.com/team/acme/widgets", RepoInfo{"github.example.com", "acme", "widgets"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGitHubRemoteURL(tt.remote)
			require.NoError(t, err)
			require.Equal(t, tt.want, *got)
		})
	}

	for _, bad := range []string{"", "not a url", "https://github.com/only"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseGitHubRemoteURL(bad)
			require.Error(t, err)
		})
	}
}

func TestResolveRepo(t *testing.T) {
	t.Run("explicit repository", func(t *testing.T) {
		t.Setenv("GH_HOST", "")
		info, err := ResolveRepo("acme/widgets", "")
		require.NoError(t, err)
		require.Equal(t, "github.com", info.Hostname)
		require.Equal(t, "acme/widgets", info.String())
	})

	t.Run("explicit repository on enterprise host", func(t *testing.T) {
		t.Setenv("GH_HOST", "github.example.com")
		info, err := ResolveRepo("acme/widgets", "")
		require.NoError(t, err)
		require.Equal(t, "github.example.com", info.Hostname)
	})

	t.Run("outside a repository without --repo", func(t *testing.T) {
		_, err := ResolveRepo("", t.TempDir())
		require.Error(t, err)
		require.Contains(t, err.Error(), "--repo")
	})
}

func TestGetGitHubToken(t *testing.T) {
	t.Run("GITHUB_TOKEN first", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "primary")
		t.Setenv("GH_TOKEN", "secondary")
		token, err := getGitHubToken(context.Background())
		require.NoError(t, err)
		require.Equal(t, "primary", token)
	})

	t.Run("GH_TOKEN fallback", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "secondary")
		token, err := getGitHubToken(context.Background())
		require.NoError(t, err)
		require.Equal(t, "secondary", token)
	})
}

func TestCreateGitHubClient(t *testing.T) {
	client, err := createGitHubClient(context.Background(), "github.com", "token")
	require.NoError(t, err)
	require.Equal(t, "https://api.github.com/", client.BaseURL.String())

	client, err = createGitHubClient(context.Background(), "github.example.com", "token")
	require.NoError(t, err)
	require.Equal(t, "https://github.example.com/api/v3/", client.BaseURL.String())
	require.Equal(t, "https://github.example.com/api/uploads/", client.UploadURL.String())
}
