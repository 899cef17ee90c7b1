package testhelpers

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"relticket.dev/relticket/internal/config"
	"relticket.dev/relticket/internal/github"
	"relticket.dev/relticket/internal/linear"
	"relticket.dev/relticket/internal/output"
	"relticket.dev/relticket/internal/runtime"
)

// TestContext bundles a runtime context wired to buffers and fakes
type TestContext struct {
	Ctx    *runtime.Context
	Stdout *bytes.Buffer
	Stderr *bytes.Buffer
	GitHub *FakeGitHub
	Linear *FakeLinear
}

// NewTestConfig returns a config with tracker credentials for the "acme" org
func NewTestConfig() *config.PipelineConfig {
	return &config.PipelineConfig{
		LinearAPIKey: "lin_api_test",
		LinearOrg:    "acme",
		LinearAPIURL: config.DefaultLinearAPIURL,
		FailOn:       config.FailOnFailed,
	}
}

// NewTestContext creates a context reading stdin from the given text.
// A nil cfg means NewTestConfig().
func NewTestContext(t *testing.T, cfg *config.PipelineConfig, stdin string) *TestContext {
	t.Helper()
	if cfg == nil {
		cfg = NewTestConfig()
	}

	tc := &TestContext{
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
		GitHub: NewFakeGitHub(),
		Linear: NewFakeLinear(),
	}
	tc.Ctx = runtime.NewContext(context.Background(), cfg, output.NewSplog(tc.Stderr),
		runtime.WithStdin(strings.NewReader(stdin)),
		runtime.WithResults(output.NewResults(tc.Stdout)),
		runtime.WithGitHubFactory(func(context.Context, *config.PipelineConfig) (github.Client, error) {
			return tc.GitHub, nil
		}),
		runtime.WithLinearFactory(func(*config.PipelineConfig) linear.Client {
			return tc.Linear
		}),
	)
	return tc
}

// StdoutLines returns the non-empty lines written to stdout
func (tc *TestContext) StdoutLines() []string {
	return SplitLines(tc.Stdout.String())
}

// SplitLines splits text into non-empty lines
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
