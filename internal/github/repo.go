package github

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"relticket.dev/relticket/internal/git"
)

// RepoInfo identifies a repository on a GitHub host
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// String returns OWNER/NAME
func (r *RepoInfo) String() string {
	return r.Owner + "/" + r.Repo
}

// ResolveRepo determines the repository to talk to. An explicit OWNER/NAME
// wins (its host comes from GH_HOST, defaulting to github.com); otherwise the
// origin remote of the repository containing dir is parsed.
func ResolveRepo(repo, dir string) (*RepoInfo, error) {
	if repo != "" {
		owner, name, ok := strings.Cut(repo, "/")
		if !ok || owner == "" || name == "" {
			return nil, fmt.Errorf("invalid repository %q (expected OWNER/NAME)", repo)
		}
		hostname := strings.TrimSpace(os.Getenv("GH_HOST"))
		if hostname == "" {
			hostname = DefaultHostname
		}
		return &RepoInfo{Hostname: hostname, Owner: owner, Repo: name}, nil
	}

	remoteURL, err := git.GetRemoteURL(dir, git.DefaultRemote)
	if err != nil {
		return nil, fmt.Errorf("cannot determine repository (use --repo or GH_REPO): %w", err)
	}
	return ParseGitHubRemoteURL(remoteURL)
}

// ParseGitHubRemoteURL parses a git remote URL and extracts hostname, owner, and repo
// Supports both github.com and GitHub Enterprise URLs
// Examples:
//   - https://github.com/owner/repo.git
//   - ssh://git@github.com/owner/repo.git
//   - git@github.company.com:owner/repo.git
func ParseGitHubRemoteURL(remoteURL string) (*RepoInfo, error) {
	remoteURL = strings.TrimSuffix(strings.TrimSpace(remoteURL), ".git")

	var hostname, path string
	if strings.Contains(remoteURL, "://") {
		u, err := url.Parse(remoteURL)
		if err != nil {
			return nil, fmt.Errorf("invalid remote URL %q: %w", remoteURL, err)
		}
		hostname = u.Hostname()
		path = u.Path
	} else {
		// scp-like syntax: [user@]host:owner/repo
		_, hostAndPath, found := strings.Cut(remoteURL, "@")
		if !found {
			hostAndPath = remoteURL
		}
		var ok bool
		hostname, path, ok = strings.Cut(hostAndPath, ":")
		if !ok {
			return nil, fmt.Errorf("invalid remote URL %q: missing path", remoteURL)
		}
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if hostname == "" || len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return nil, fmt.Errorf("failed to parse hostname, owner, or repo from remote URL %q", remoteURL)
	}

	return &RepoInfo{
		Hostname: hostname,
		Owner:    parts[len(parts)-2],
		Repo:     parts[len(parts)-1],
	}, nil
}
