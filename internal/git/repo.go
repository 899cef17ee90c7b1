package git

import (
	"fmt"
	"os"

	gogit "github.com/go-git/go-git/v5"
)

// DefaultRemote is the remote consulted when none is configured
const DefaultRemote = "origin"

// GetRemoteURL returns the first URL of the named remote of the repository
// containing dir. An empty dir means the current working directory.
func GetRemoteURL(dir, remote string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	if remote == "" {
		remote = DefaultRemote
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	r, err := repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", remote, err)
	}

	urls := r.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", remote)
	}
	return urls[0], nil
}
