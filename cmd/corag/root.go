package main

import (
	"github.com/spf13/cobra"

	"github.com/agentlab/corag-agents/internal/config"
	"github.com/agentlab/corag-agents/internal/logging"
	"github.com/agentlab/corag-agents/internal/render"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	config   string
	logLevel string
	logFile  string
	logJSON  bool
}

func newRootCmd() *cobra.Command {
	var (
		flags rootFlags
		a     = new(app)
	)
	cmd := &cobra.Command{
		Use:   "corag",
		Short: "Research questions against a knowledge base with a self-checking agent loop",
		Long: "corag decomposes a question into sub-queries, searches a knowledge base for each,\n" +
			"synthesizes an answer and lets a strict evaluator accept it or ask for a fresh attempt.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.config)
			if err != nil {
				return err
			}
			if flags.logLevel != "" {
				cfg.Log.Level = flags.logLevel
			}
			if flags.logFile != "" {
				cfg.Log.File = flags.logFile
			}
			if flags.logJSON {
				cfg.Log.Format = logging.FormatJSON
			}
			closer, err := logging.Init(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.init(cfg, closer, render.NewConsole(cmd.OutOrStdout()))
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.Close()
		},
	}
	f := cmd.PersistentFlags()
	f.StringVar(&flags.config, "config", "", "config file (default $CORAG_CONFIG or ./corag.yaml)")
	f.StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error or disabled")
	f.StringVar(&flags.logFile, "log-file", "", "also write logs to this file, truncated on start")
	f.BoolVar(&flags.logJSON, "log-json", false, "write logs as JSON")

	cmd.AddCommand(
		newAskCmd(a),
		newResearchCmd(a),
		newIngestCmd(a),
		newSearchCmd(a),
		newChatCmd(a),
		newHostCmd(a),
	)
	return cmd
}
