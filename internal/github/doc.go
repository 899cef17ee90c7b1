// Package github is the hosting collaborator: release notes, pull request
// metadata, discussion comments and commit messages fetched through the
// GitHub REST API.
package github
