// Package linear is the tracker collaborator: it reads an issue's workflow
// state and moves the issue to its team's completed state through the
// Linear GraphQL API.
package linear
