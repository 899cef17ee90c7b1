// Package updatetickets marks tickets as done in Linear, guarded by their
// current workflow state.
package updatetickets

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"relticket.dev/relticket/internal/actions"
	relerrors "relticket.dev/relticket/internal/errors"
	"relticket.dev/relticket/internal/linear"
	"relticket.dev/relticket/internal/output"
	"relticket.dev/relticket/internal/runtime"
	"relticket.dev/relticket/internal/utils"
)

// DryRunHeader is logged once before any ticket in dry-run mode
const DryRunHeader = "Dry-run mode enabled. The following issues would be marked as Done or Completed:"

// PassingState is the state eligible for update without --update-all-statuses
const PassingState = "passing"

var ticketIDPattern = regexp.MustCompile(`^[A-Z]+-[0-9]+$`)

// Confirmer asks whether a ticket may be transitioned
type Confirmer interface {
	Confirm(issue *linear.Issue) (bool, error)
}

// Options contains options for the update-tickets command.
// Dry-run and the state filter come from the context's PipelineConfig.
type Options struct {
	// Confirmer is consulted before each mutation when the config asks for confirmation
	Confirmer Confirmer
	Sources   []utils.InputSource
}

// Decide reports whether an issue is eligible for the done transition and,
// when it is not, why
func Decide(issue *linear.Issue, updateAllStatuses bool) (bool, string) {
	if issue.IsDone() {
		return false, fmt.Sprintf("already %s", issue.StateName)
	}
	if updateAllStatuses {
		return true, ""
	}
	if strings.EqualFold(issue.StateName, PassingState) {
		return true, ""
	}
	return false, fmt.Sprintf("state is %q, not Passing", issue.StateName)
}

// ParseTicketIDs converts input lines into ticket identifiers. Blank lines
// are ignored and malformed lines are logged and skipped.
func ParseTicketIDs(ctx *runtime.Context, lines iter.Seq2[string, error]) iter.Seq2[actions.TicketID, error] {
	splog := ctx.Splog.WithStage(actions.StageUpdateTickets)

	return func(yield func(actions.TicketID, error) bool) {
		for line, err := range lines {
			if err != nil {
				yield("", err)
				return
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !ticketIDPattern.MatchString(line) {
				splog.Warn("ignoring invalid ticket identifier %q", line)
				continue
			}
			if !yield(actions.TicketID(line), nil) {
				return
			}
		}
	}
}

// Stream processes tickets one at a time in input order and yields their
// outcomes. Successful outcomes are written to the context's results and
// everything else is logged. Missing tracker credentials fail before the
// first ticket is pulled; an authentication failure ends the sequence.
func Stream(ctx *runtime.Context, ids iter.Seq2[actions.TicketID, error], opts Options) iter.Seq2[Outcome, error] {
	splog := ctx.Splog.WithStage(actions.StageUpdateTickets)
	cfg := ctx.Config

	return func(yield func(Outcome, error) bool) {
		if err := cfg.RequireTracker(); err != nil {
			yield(Outcome{}, err)
			return
		}
		confirm := cfg.Confirm && !cfg.DryRun
		if confirm && opts.Confirmer == nil {
			yield(Outcome{}, relerrors.NewConfigError("--confirm requires an interactive terminal"))
			return
		}
		if cfg.DryRun {
			splog.Info(DryRunHeader)
		}

		p := &processor{ctx: ctx, splog: splog, tracker: ctx.Linear(), confirmer: opts.Confirmer, confirm: confirm}
		for id, err := range ids {
			if err != nil {
				yield(Outcome{}, err)
				return
			}

			if err := ctx.Context.Err(); err != nil {
				yield(Outcome{}, err)
				return
			}

			outcome, err := p.process(id)
			if err != nil {
				yield(outcome, err)
				return
			}
			if err := p.report(outcome); err != nil {
				yield(outcome, err)
				return
			}
			if !yield(outcome, nil) {
				return
			}
		}
	}
}

type processor struct {
	ctx       *runtime.Context
	splog     *output.Splog
	tracker   linear.Client
	confirmer Confirmer
	confirm   bool
}

// process runs the state machine for one ticket. The error is non-nil only
// for failures that must abort the stage.
func (p *processor) process(id actions.TicketID) (Outcome, error) {
	cfg := p.ctx.Config
	outcome := Outcome{Ticket: id, URL: p.tracker.IssueURL(string(id))}

	p.splog.Debug("querying %s", id)
	issue, err := p.tracker.GetIssue(p.ctx.Context, string(id))
	if err != nil {
		if relerrors.IsFatal(err) {
			return outcome, err
		}
		outcome.Kind = Failed
		outcome.Err = relerrors.NewQueryError(string(id), err)
		outcome.Reason = outcome.Err.Error()
		return outcome, nil
	}
	if issue.URL != "" {
		outcome.URL = issue.URL
	}

	eligible, reason := Decide(issue, cfg.UpdateAllStatuses)
	if !eligible {
		outcome.Kind = Skipped
		outcome.Reason = reason
		return outcome, nil
	}

	if cfg.DryRun {
		outcome.Kind = WouldUpdate
		return outcome, nil
	}

	if p.confirm {
		ok, err := p.confirmer.Confirm(issue)
		if err != nil {
			return outcome, relerrors.NewIOError("terminal", err)
		}
		if !ok {
			outcome.Kind = Skipped
			outcome.Reason = "declined"
			return outcome, nil
		}
	}

	if err := p.tracker.CompleteIssue(p.ctx.Context, issue); err != nil {
		if relerrors.IsFatal(err) {
			return outcome, err
		}
		outcome.Kind = Failed
		outcome.Err = relerrors.NewMutationError(string(id), err)
		outcome.Reason = outcome.Err.Error()
		return outcome, nil
	}

	outcome.Kind = Updated
	return outcome, nil
}

// report writes successes to stdout and everything else to the log
func (p *processor) report(o Outcome) error {
	switch o.Kind {
	case Updated, WouldUpdate:
		p.splog.Debug("%s: %s", o.Ticket, o.Kind)
		return p.ctx.Results.Emit(o.URL)
	case Skipped:
		p.splog.Info("skipped %s (%s): %s", o.Ticket, o.Reason, o.URL)
	case Failed:
		p.splog.Error("failed %s: %s: %s", o.Ticket, o.URL, o.Reason)
	}
	return nil
}

// Drain consumes outcomes, logs the run summary and returns the counts.
// The error is the first fatal error of the sequence.
func Drain(ctx *runtime.Context, outcomes iter.Seq2[Outcome, error]) (Summary, error) {
	splog := ctx.Splog.WithStage(actions.StageUpdateTickets)

	var summary Summary
	for outcome, err := range outcomes {
		if err != nil {
			return summary, err
		}
		summary.Add(outcome)
	}

	if summary.Total() > 0 {
		splog.Info("%s", summary.String())
	}
	if summary.Succeeded() == 0 {
		splog.Info("no changes made")
	}
	splog.Info("done")
	return summary, nil
}

// Action runs update-tickets standalone and applies the exit-status policy
func Action(ctx *runtime.Context, opts Options) error {
	// Credentials are checked before any input is read
	if err := ctx.Config.RequireTracker(); err != nil {
		return err
	}

	sources := opts.Sources
	if len(sources) == 0 {
		sources = []utils.InputSource{utils.StdinSource}
	}
	ids := ParseTicketIDs(ctx, utils.InputLines(sources, ctx.Stdin))

	summary, err := Drain(ctx, Stream(ctx, ids, opts))
	if err != nil {
		return err
	}
	return summary.Err(ctx.Config.FailOn)
}
