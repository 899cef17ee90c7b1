package updatetickets

import (
	"fmt"

	"relticket.dev/relticket/internal/actions"
	"relticket.dev/relticket/internal/config"
	relerrors "relticket.dev/relticket/internal/errors"
)

// Kind is the terminal state of one ticket update
type Kind int

const (
	// Updated means the ticket was transitioned to done
	Updated Kind = iota
	// WouldUpdate means the ticket is eligible but dry-run suppressed the mutation
	WouldUpdate
	// Skipped means the ticket was left alone (already done, wrong state, declined)
	Skipped
	// Failed means the query or the mutation failed
	Failed
)

func (k Kind) String() string {
	switch k {
	case Updated:
		return "updated"
	case WouldUpdate:
		return "would update"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Outcome is the result of processing one ticket
type Outcome struct {
	Ticket actions.TicketID
	URL    string
	Kind   Kind
	// Reason explains Skipped and Failed outcomes
	Reason string
	// Err is the underlying error of a Failed outcome
	Err error
}

// Summary counts outcomes per kind
type Summary struct {
	Updated     int
	WouldUpdate int
	Skipped     int
	Failed      int
}

// Add counts one outcome
func (s *Summary) Add(o Outcome) {
	switch o.Kind {
	case Updated:
		s.Updated++
	case WouldUpdate:
		s.WouldUpdate++
	case Skipped:
		s.Skipped++
	case Failed:
		s.Failed++
	}
}

// Total returns the number of tickets processed
func (s Summary) Total() int {
	return s.Updated + s.WouldUpdate + s.Skipped + s.Failed
}

// Succeeded returns the number of tickets written to stdout
func (s Summary) Succeeded() int {
	return s.Updated + s.WouldUpdate
}

func (s Summary) String() string {
	return fmt.Sprintf("%d updated, %d would update, %d skipped, %d failed",
		s.Updated, s.WouldUpdate, s.Skipped, s.Failed)
}

// Err applies the exit-status policy to the summary
func (s Summary) Err(policy config.FailPolicy) error {
	switch policy {
	case config.FailOnNever:
		return nil
	case config.FailOnSkipped:
		if s.Failed > 0 || s.Skipped > 0 {
			return fmt.Errorf("%w: %d failed and %d skipped of %d tickets", relerrors.ErrItemsFailed, s.Failed, s.Skipped, s.Total())
		}
		return nil
	default:
		if s.Failed > 0 {
			return fmt.Errorf("%w: %d of %d tickets failed", relerrors.ErrItemsFailed, s.Failed, s.Total())
		}
		return nil
	}
}
