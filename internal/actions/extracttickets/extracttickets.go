// Package extracttickets resolves pull requests to the ticket identifiers
// mentioned in their title, description, comments and commit messages.
package extracttickets

import (
	"errors"
	"iter"
	"strconv"
	"strings"

	"relticket.dev/relticket/internal/actions"
	relerrors "relticket.dev/relticket/internal/errors"
	"relticket.dev/relticket/internal/github"
	"relticket.dev/relticket/internal/output"
	"relticket.dev/relticket/internal/runtime"
	"relticket.dev/relticket/internal/utils"
)

// Options contains options for the extract-tickets command
type Options struct {
	// Prefixes restricts matches to these ticket prefixes; empty means any
	Prefixes []string
	Sources  []utils.InputSource
}

// ParsePRNumbers converts input lines into pull request numbers. Blank lines
// are ignored and lines that are not a positive number (optionally prefixed
// with "#") are logged and skipped.
func ParsePRNumbers(ctx *runtime.Context, lines iter.Seq2[string, error]) iter.Seq2[actions.PRNumber, error] {
	splog := ctx.Splog.WithStage(actions.StageExtractTickets)

	return func(yield func(actions.PRNumber, error) bool) {
		for line, err := range lines {
			if err != nil {
				yield(0, err)
				return
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			n, err := strconv.Atoi(strings.TrimPrefix(line, "#"))
			if err != nil || n <= 0 {
				splog.Warn("ignoring invalid pull request number %q", line)
				continue
			}
			if !yield(actions.PRNumber(n), nil) {
				return
			}
		}
	}
}

// Stream yields the ticket identifiers referenced by each pull request, in
// scan order (title, body, comments, commits), suppressing any identifier
// already in seen. A pull request's identifiers are yielded before the next
// number is pulled from prs.
func Stream(ctx *runtime.Context, prs iter.Seq2[actions.PRNumber, error], seen *Seen, opts Options) iter.Seq2[actions.TicketID, error] {
	splog := ctx.Splog.WithStage(actions.StageExtractTickets)
	matcher := NewMatcher(opts.Prefixes)

	return func(yield func(actions.TicketID, error) bool) {
		var client github.Client
		emitted := 0
		for number, err := range prs {
			if err != nil {
				yield("", err)
				return
			}

			if err := ctx.Context.Err(); err != nil {
				yield("", err)
				return
			}

			if client == nil {
				if client, err = ctx.GitHub(); err != nil {
					yield("", err)
					return
				}
				owner, repo := client.GetOwnerRepo()
				splog.Debug("reading pull requests from %s/%s", owner, repo)
			}

			splog.Debug("processing PR #%d", number)
			r := &resolver{ctx: ctx, splog: splog, client: client, matcher: matcher, seen: seen, yield: yield}
			n, cont, err := r.resolve(number)
			emitted += n
			if err != nil {
				yield("", err)
				return
			}
			if !cont {
				return
			}
		}

		if emitted == 0 {
			splog.Info("no changes made")
		}
		splog.Info("done")
	}
}

// resolver scans the sources of one pull request
type resolver struct {
	ctx     *runtime.Context
	splog   *output.Splog
	client  github.Client
	matcher *Matcher
	seen    *Seen
	yield   func(actions.TicketID, error) bool
}

// resolve returns the number of identifiers yielded, whether the consumer
// wants more, and a fatal error if one occurred
func (r *resolver) resolve(number actions.PRNumber) (int, bool, error) {
	n := int(number)
	emitted := 0

	scan := func(source, text string) bool {
		for _, id := range r.matcher.Find(text) {
			if !r.seen.Add(id) {
				continue
			}
			emitted++
			r.splog.Debug("PR #%d: %s mentions %s", n, source, id)
			if !r.yield(id, nil) {
				return false
			}
		}
		return true
	}

	pr, err := r.client.GetPullRequest(r.ctx.Context, n)
	if err != nil {
		if errors.Is(err, relerrors.ErrSourceUnavailable) {
			r.splog.Warn("PR #%d not found, skipping", n)
			return 0, true, nil
		}
		if relerrors.IsFatal(err) {
			return 0, false, err
		}
		r.splog.Warn("PR #%d: failed to fetch title and body: %v", n, err)
	} else {
		r.splog.Debug("PR #%d: %s", n, pr.HTMLURL)
		if !scan("title", pr.Title) || !scan("body", pr.Body) {
			return emitted, false, nil
		}
	}

	comments, err := r.client.ListComments(r.ctx.Context, n)
	if err != nil {
		if relerrors.IsFatal(err) {
			return emitted, false, err
		}
		r.splog.Warn("PR #%d: failed to fetch comments: %v", n, err)
	}
	for _, comment := range comments {
		if !scan("comment", comment) {
			return emitted, false, nil
		}
	}

	commits, err := r.client.ListCommitMessages(r.ctx.Context, n)
	if err != nil {
		if relerrors.IsFatal(err) {
			return emitted, false, err
		}
		r.splog.Warn("PR #%d: failed to fetch commits: %v", n, err)
	}
	for _, message := range commits {
		if !scan("commit", message) {
			return emitted, false, nil
		}
	}

	if emitted == 0 {
		r.splog.Debug("PR #%d: no new tickets", n)
	}
	return emitted, true, nil
}

// Action runs extract-tickets standalone, writing one identifier per line to stdout
func Action(ctx *runtime.Context, opts Options) error {
	sources := opts.Sources
	if len(sources) == 0 {
		sources = []utils.InputSource{utils.StdinSource}
	}
	prs := ParsePRNumbers(ctx, utils.InputLines(sources, ctx.Stdin))

	for id, err := range Stream(ctx, prs, NewSeen(), opts) {
		if err != nil {
			return err
		}
		if err := ctx.Results.Emit(string(id)); err != nil {
			return err
		}
	}
	return nil
}
