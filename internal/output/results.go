package output

import (
	"fmt"
	"io"

	relerrors "relticket.dev/relticket/internal/errors"
)

// Results writes machine-readable results to stdout, one per line.
// Each line is written with a single call so downstream readers see it immediately.
type Results struct {
	writer io.Writer
}

// NewResults creates a Results writer
func NewResults(w io.Writer) *Results {
	return &Results{writer: w}
}

// Emit writes one result line
func (r *Results) Emit(line string) error {
	if _, err := fmt.Fprintln(r.writer, line); err != nil {
		return relerrors.NewIOError("stdout", err)
	}
	return nil
}
