package utils

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"os"
	"strings"

	relerrors "relticket.dev/relticket/internal/errors"
)

// StdinArg is the argument that explicitly selects standard input
const StdinArg = "-"

// InputSource is either standard input or a file path
type InputSource struct {
	Path string
}

// StdinSource is the input source for standard input
var StdinSource = InputSource{Path: StdinArg}

// IsStdin reports whether the source reads standard input
func (s InputSource) IsStdin() bool {
	return s.Path == StdinArg
}

// Name returns a human-readable name for log and error messages
func (s InputSource) Name() string {
	if s.IsStdin() {
		return "stdin"
	}
	return s.Path
}

// ParseInputSources converts positional arguments into input sources.
// No arguments means standard input; "-" may appear at most once and can be
// mixed with file paths.
func ParseInputSources(args []string) ([]InputSource, error) {
	if len(args) == 0 {
		return []InputSource{StdinSource}, nil
	}

	sources := make([]InputSource, 0, len(args))
	stdinUsed := false
	for _, arg := range args {
		if arg == StdinArg {
			if stdinUsed {
				return nil, relerrors.NewConfigError("stdin (-) cannot be specified more than once")
			}
			stdinUsed = true
		}
		sources = append(sources, InputSource{Path: arg})
	}
	return sources, nil
}

// InputLines yields every line of every source in order. Files are opened only
// when reached, and each line is yielded as soon as it has been read, so a
// pipe feeding stdin is processed while it is still being written.
// A read failure is yielded once as an IOError and ends the sequence.
func InputLines(sources []InputSource, stdin io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, source := range sources {
			if source.IsStdin() {
				if !yieldLines(stdin, source.Name(), yield) {
					return
				}
				continue
			}

			f, err := os.Open(source.Path)
			if err != nil {
				yield("", relerrors.NewIOError(source.Name(), err))
				return
			}
			ok := yieldLines(f, source.Name(), yield)
			_ = f.Close()
			if !ok {
				return
			}
		}
	}
}

// Lines yields the lines of r without their line terminators.
func Lines(r io.Reader, name string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yieldLines(r, name, yield)
	}
}

// yieldLines returns false when iteration must stop
func yieldLines(r io.Reader, name string, yield func(string, error) bool) bool {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if !yield(strings.TrimRight(line, "\r\n"), nil) {
				return false
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return true
			}
			yield("", relerrors.NewIOError(name, err))
			return false
		}
	}
}
