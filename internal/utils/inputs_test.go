package utils

import (
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	relerrors "relticket.dev/relticket/internal/errors"
)

func collect(t *testing.T, seq iter.Seq2[string, error]) ([]string, error) {
	t.Helper()
	var lines []string
	for line, err := range seq {
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func TestParseInputSources(t *testing.T) {
	t.Run("defaults to stdin", func(t *testing.T) {
		sources, err := ParseInputSources(nil)
		require.NoError(t, err)
		require.Equal(t, []InputSource{StdinSource}, sources)
	})

	t.Run("mixes files and stdin in order", func(t *testing.T) {
		sources, err := ParseInputSources([]string{"a.txt", "-", "b.txt"})
		require.NoError(t, err)
		require.Len(t, sources, 3)
		require.Equal(t, "a.txt", sources[0].Name())
		require.True(t, sources[1].IsStdin())
		require.Equal(t, "stdin", sources[1].Name())
	})

	t.Run("rejects stdin twice", func(t *testing.T) {
		_, err := ParseInputSources([]string{"-", "-"})
		require.ErrorIs(t, err, relerrors.ErrConfiguration)
		require.Contains(t, err.Error(), "more than once")
	})

	t.Run("files only does not use stdin", func(t *testing.T) {
		sources, err := ParseInputSources([]string{"a.txt"})
		require.NoError(t, err)
		require.Equal(t, []InputSource{{Path: "a.txt"}}, sources)
		require.False(t, sources[0].IsStdin())
	})
}

func TestInputLines(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte("1\n2\n"), 0600))
	require.NoError(t, os.WriteFile(second, []byte("4\r\n5"), 0600))

	t.Run("reads sources in order", func(t *testing.T) {
		sources := []InputSource{{Path: first}, StdinSource, {Path: second}}
		lines, err := collect(t, InputLines(sources, strings.NewReader("3\n")))
		require.NoError(t, err)
		require.Equal(t, []string{"1", "2", "3", "4", "5"}, lines)
	})

	t.Run("missing file is an IO error", func(t *testing.T) {
		sources := []InputSource{{Path: first}, {Path: filepath.Join(dir, "missing.txt")}}
		lines, err := collect(t, InputLines(sources, strings.NewReader("")))
		require.ErrorIs(t, err, relerrors.ErrIO)
		require.Equal(t, []string{"1", "2"}, lines)
	})

	t.Run("yields a line before the writer finishes", func(t *testing.T) {
		r, w := io.Pipe()
		next, stop := iter.Pull2(InputLines([]InputSource{StdinSource}, r))
		defer stop()

		go func() {
			_, _ = w.Write([]byte("42\n"))
		}()

		line, err, ok := next()
		require.True(t, ok)
		require.NoError(t, err)
		require.Equal(t, "42", line)

		_ = w.Close()
		_, _, ok = next()
		require.False(t, ok)
	})

	t.Run("stops reading when the consumer stops", func(t *testing.T) {
		count := 0
		for range InputLines([]InputSource{StdinSource}, strings.NewReader("a\nb\nc\n")) {
			count++
			if count == 2 {
				break
			}
		}
		require.Equal(t, 2, count)
	})
}
