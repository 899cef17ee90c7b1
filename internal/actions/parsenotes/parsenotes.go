// Package parsenotes extracts pull request references from release notes.
package parsenotes

import (
	"iter"
	"regexp"
	"strconv"
	"strings"

	"relticket.dev/relticket/internal/actions"
	relerrors "relticket.dev/relticket/internal/errors"
	"relticket.dev/relticket/internal/runtime"
	"relticket.dev/relticket/internal/utils"
)

// prPattern matches a pull request URL or a "#<digits>" reference.
// The URL alternative comes first so its number is counted once.
var prPattern = regexp.MustCompile(`https?://[^/\s]+/[^/\s]+/[^/\s]+/pull/([0-9]+)|#([0-9]+)`)

// Options contains options for the parse-notes command
type Options struct {
	// ReleaseTag selects the release whose notes are read
	ReleaseTag string
	// Sources are read when no release tag is given
	Sources []utils.InputSource
}

// ParseLine returns the pull request numbers referenced on a line, in order
func ParseLine(line string) []actions.PRNumber {
	var numbers []actions.PRNumber
	for _, m := range prPattern.FindAllStringSubmatch(line, -1) {
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n <= 0 {
			continue
		}
		numbers = append(numbers, actions.PRNumber(n))
	}
	return numbers
}

// Source returns the release-note lines to scan: the notes of the release
// when a tag is given, otherwise the input sources.
func Source(ctx *runtime.Context, opts Options) (iter.Seq2[string, error], error) {
	tag := strings.TrimSpace(opts.ReleaseTag)
	if tag == "" {
		sources := opts.Sources
		if len(sources) == 0 {
			sources = []utils.InputSource{utils.StdinSource}
		}
		return utils.InputLines(sources, ctx.Stdin), nil
	}

	if len(opts.Sources) > 0 {
		return nil, relerrors.NewConfigError("--release-tag cannot be combined with input files")
	}

	client, err := ctx.GitHub()
	if err != nil {
		return nil, err
	}
	notes, err := client.GetReleaseNotes(ctx.Context, tag)
	if err != nil {
		return nil, err
	}
	ctx.Splog.WithStage(actions.StageParseNotes).Debug("fetched release notes for %s (%d bytes)", tag, len(notes))
	return utils.Lines(strings.NewReader(notes), "release "+tag), nil
}

// Stream yields every pull request reference in lines, in order and without
// de-duplication. Each line's references are yielded before the next line is read.
func Stream(ctx *runtime.Context, lines iter.Seq2[string, error]) iter.Seq2[actions.PRNumber, error] {
	splog := ctx.Splog.WithStage(actions.StageParseNotes)

	return func(yield func(actions.PRNumber, error) bool) {
		count := 0
		for line, err := range lines {
			if err != nil {
				yield(0, err)
				return
			}
			for _, n := range ParseLine(line) {
				count++
				splog.Debug("found PR #%d", n)
				if !yield(n, nil) {
					return
				}
			}
		}

		if count == 0 {
			splog.Info("no changes made")
		}
		splog.Info("done")
	}
}

// Action runs parse-notes standalone, writing one number per line to stdout
func Action(ctx *runtime.Context, opts Options) error {
	lines, err := Source(ctx, opts)
	if err != nil {
		return err
	}

	for n, err := range Stream(ctx, lines) {
		if err != nil {
			return err
		}
		if err := ctx.Results.Emit(n.String()); err != nil {
			return err
		}
	}
	return nil
}
