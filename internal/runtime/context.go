package runtime

import (
	"context"
	"io"
	"os"
	"sync"

	"relticket.dev/relticket/internal/config"
	"relticket.dev/relticket/internal/github"
	"relticket.dev/relticket/internal/linear"
	"relticket.dev/relticket/internal/output"
)

// GitHubFactory creates the hosting collaborator for a run
type GitHubFactory func(ctx context.Context, cfg *config.PipelineConfig) (github.Client, error)

// LinearFactory creates the tracker collaborator for a run
type LinearFactory func(cfg *config.PipelineConfig) linear.Client

// DefaultGitHubFactory resolves the repository from --repo or the origin
// remote and authenticates with the environment token or the gh CLI
func DefaultGitHubFactory(ctx context.Context, cfg *config.PipelineConfig) (github.Client, error) {
	info, err := github.ResolveRepo(cfg.Repo, "")
	if err != nil {
		return nil, err
	}
	return github.NewRealClient(ctx, info)
}

// DefaultLinearFactory talks to the configured Linear endpoint
func DefaultLinearFactory(cfg *config.PipelineConfig) linear.Client {
	return linear.NewHTTPClient(linear.Options{
		APIKey:   cfg.LinearAPIKey,
		Org:      cfg.LinearOrg,
		Endpoint: cfg.LinearAPIURL,
	})
}

// clients is shared by every stage view of one Context
type clients struct {
	newGitHub GitHubFactory
	newLinear LinearFactory

	githubOnce sync.Once
	github     github.Client
	githubErr  error

	linearOnce sync.Once
	linear     linear.Client
}

// Context provides access to streams, logging and collaborators for actions
type Context struct {
	Context context.Context
	Config  *config.PipelineConfig
	Splog   *output.Splog
	Results *output.Results
	Stdin   io.Reader

	clients *clients
}

// Option customizes a Context
type Option func(*Context)

// WithGitHubFactory replaces the hosting collaborator factory
func WithGitHubFactory(f GitHubFactory) Option {
	return func(c *Context) { c.clients.newGitHub = f }
}

// WithLinearFactory replaces the tracker collaborator factory
func WithLinearFactory(f LinearFactory) Option {
	return func(c *Context) { c.clients.newLinear = f }
}

// WithStdin replaces standard input
func WithStdin(r io.Reader) Option {
	return func(c *Context) { c.Stdin = r }
}

// WithResults replaces the result writer
func WithResults(r *output.Results) Option {
	return func(c *Context) { c.Results = r }
}

// NewContext creates a context for one invocation
func NewContext(ctx context.Context, cfg *config.PipelineConfig, splog *output.Splog, opts ...Option) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	c := &Context{
		Context: ctx,
		Config:  cfg,
		Splog:   splog,
		Results: output.NewResults(os.Stdout),
		Stdin:   os.Stdin,
		clients: &clients{
			newGitHub: DefaultGitHubFactory,
			newLinear: DefaultLinearFactory,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GitHub returns the hosting collaborator, creating it on first use
func (c *Context) GitHub() (github.Client, error) {
	c.clients.githubOnce.Do(func() {
		c.clients.github, c.clients.githubErr = c.clients.newGitHub(c.Context, c.Config)
	})
	return c.clients.github, c.clients.githubErr
}

// Linear returns the tracker collaborator, creating it on first use
func (c *Context) Linear() linear.Client {
	c.clients.linearOnce.Do(func() {
		c.clients.linear = c.clients.newLinear(c.Config)
	})
	return c.clients.linear
}
