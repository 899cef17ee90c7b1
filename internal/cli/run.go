package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"relticket.dev/relticket/internal/config"
	"relticket.dev/relticket/internal/output"
	"relticket.dev/relticket/internal/runtime"
	"relticket.dev/relticket/internal/utils"
)

// run resolves the configuration, builds the runtime context and runs fn
func (s *settings) run(cmd *cobra.Command, global globalFlags, flags config.Flags, fn func(ctx *runtime.Context) error) error {
	configFile := global.configFile
	if configFile == "" {
		configFile = s.getenv(config.EnvConfigFile)
	}
	file, err := config.LoadFile(configFile)
	if err != nil {
		return err
	}

	flags.Repo = global.repo
	flags.LogFile = global.logFile
	cfg, err := config.Resolve(flags, file, s.getenv)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	splog, err := output.NewSplogWithConfig(output.Options{
		Writer:  s.stderr,
		Debug:   s.getenv("DEBUG") != "",
		LogFile: cfg.LogFile,
		NoColor: global.noColor,
		RunID:   runID,
	})
	if err != nil {
		return err
	}
	defer func() { _ = splog.Close() }()

	opts := append([]runtime.Option{
		runtime.WithStdin(s.stdin),
		runtime.WithResults(output.NewResults(s.stdout)),
	}, s.runtimeOpts...)
	ctx := runtime.NewContext(cmd.Context(), cfg, splog, opts...)
	splog.Debug("run %s: %s", runID, cmd.CommandPath())

	return fn(ctx)
}

// inputSources parses positional arguments. No arguments yields nil so that
// callers can tell "implicit stdin" from explicit sources.
func inputSources(args []string) ([]utils.InputSource, error) {
	if len(args) == 0 {
		return nil, nil
	}
	return utils.ParseInputSources(args)
}
