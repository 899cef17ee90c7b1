package extracttickets

import "relticket.dev/relticket/internal/actions"

// Seen is the set of ticket identifiers already emitted in a run
type Seen struct {
	ids map[actions.TicketID]struct{}
}

// NewSeen creates an empty set
func NewSeen() *Seen {
	return &Seen{ids: make(map[actions.TicketID]struct{})}
}

// Add records id and reports whether it was not seen before
func (s *Seen) Add(id actions.TicketID) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}
