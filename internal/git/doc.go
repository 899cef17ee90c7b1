// Package git provides access to the local repository and the gh CLI.
//
// It is used to:
//   - Discover the hosting remote (owner, repo, hostname) from .git/config
//   - Borrow the gh CLI's stored token when no token is in the environment
//
// This package should be the only place where external commands are executed.
package git
