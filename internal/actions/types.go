package actions

import (
	"strconv"
)

// PRNumber is a positive GitHub pull request number
type PRNumber int

func (n PRNumber) String() string {
	return strconv.Itoa(int(n))
}

// TicketID is a tracker identifier like ENG-123
type TicketID string

// Stage labels used as log prefixes
const (
	StageParseNotes     = "parse-notes"
	StageExtractTickets = "extract-tickets"
	StageUpdateTickets  = "update-tickets"
)
