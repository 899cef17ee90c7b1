// Package pipeline runs the three stages in-process: release notes to pull
// requests to tickets to updates, one item at a time.
package pipeline

import (
	"relticket.dev/relticket/internal/actions/extracttickets"
	"relticket.dev/relticket/internal/actions/parsenotes"
	"relticket.dev/relticket/internal/actions/updatetickets"
	"relticket.dev/relticket/internal/runtime"
)

// Options contains options for the orchestrator
type Options struct {
	// Confirmer is used when the config asks for confirmation
	Confirmer updatetickets.Confirmer
}

// Run executes the whole pipeline for ctx.Config.ReleaseTag. Only update
// successes reach stdout; every stage logs under its own label.
func Run(ctx *runtime.Context, opts Options) (updatetickets.Summary, error) {
	cfg := ctx.Config

	// Configuration problems are reported before any network call
	if err := cfg.RequireReleaseTag(); err != nil {
		return updatetickets.Summary{}, err
	}
	if err := cfg.RequireTracker(); err != nil {
		return updatetickets.Summary{}, err
	}

	lines, err := parsenotes.Source(ctx, parsenotes.Options{ReleaseTag: cfg.ReleaseTag})
	if err != nil {
		return updatetickets.Summary{}, err
	}

	prs := parsenotes.Stream(ctx, lines)
	tickets := extracttickets.Stream(ctx, prs, extracttickets.NewSeen(), extracttickets.Options{
		Prefixes: cfg.TicketPrefixes,
	})
	outcomes := updatetickets.Stream(ctx, tickets, updatetickets.Options{
		Confirmer: opts.Confirmer,
	})

	return updatetickets.Drain(ctx, outcomes)
}

// Action runs the pipeline and applies the exit-status policy
func Action(ctx *runtime.Context, opts Options) error {
	summary, err := Run(ctx, opts)
	if err != nil {
		return err
	}
	return summary.Err(ctx.Config.FailOn)
}
