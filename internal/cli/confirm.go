package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"

	"relticket.dev/relticket/internal/actions/updatetickets"
	relerrors "relticket.dev/relticket/internal/errors"
	"relticket.dev/relticket/internal/linear"
	"relticket.dev/relticket/internal/runtime"
	"relticket.dev/relticket/internal/utils"
)

// ttyConfirmer prompts on the controlling terminal, leaving stdin free for piped input
type ttyConfirmer struct {
	tty *os.File
}

func (c *ttyConfirmer) Confirm(issue *linear.Issue) (bool, error) {
	var ok bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Mark %s (%s) as done?", issue.Identifier, issue.StateName),
		Help:    issue.URL,
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok, survey.WithStdio(c.tty, c.tty, c.tty)); err != nil {
		return false, err
	}
	return ok, nil
}

// openControllingTerminal opens /dev/tty and fails unless it is a terminal.
// Stdin and stderr may be redirected while the terminal is still available.
func openControllingTerminal() (*os.File, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	if !utils.IsTerminal(tty) {
		_ = tty.Close()
		return nil, fmt.Errorf("/dev/tty is not a terminal")
	}
	return tty, nil
}

// confirmerFor returns the confirmer to use for this run, or nil when the
// run does not ask for confirmation
func (s *settings) confirmerFor(ctx *runtime.Context) (updatetickets.Confirmer, error) {
	if !ctx.Config.Confirm || ctx.Config.DryRun {
		return nil, nil
	}
	if s.confirmer != nil {
		return s.confirmer, nil
	}

	tty, err := s.openTTY()
	if err != nil {
		ctx.Splog.Debug("cannot open terminal: %v", err)
		return nil, relerrors.NewConfigError("--confirm requires an interactive terminal")
	}
	// The process exits after the run, which releases the terminal
	return &ttyConfirmer{tty: tty}, nil
}
