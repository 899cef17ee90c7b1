// Package actions holds the types shared by the pipeline stages.
//
// Each stage lives in its own subpackage and exposes a Stream function that
// turns an upstream lazy sequence into a downstream one, plus an Action that
// runs the stage standalone against line-oriented input:
//
//   - parsenotes: release-note text to pull request numbers
//   - extracttickets: pull request numbers to unique ticket identifiers
//   - updatetickets: ticket identifiers to update outcomes
//
// The pipeline subpackage chains the three in-process.
package actions
