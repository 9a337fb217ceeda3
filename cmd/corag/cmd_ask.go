package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentlab/corag-agents/agents/corag"
)

type askFlags struct {
	maxAttempts int
	faultPolicy string
	json        bool
	quiet       bool
}

func newAskCmd(a *app) *cobra.Command {
	var flags askFlags
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Research a question until the evaluator accepts the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var observers []corag.Observer
			if !flags.quiet && !flags.json {
				observers = append(observers, a.console)
			}
			stats := new(corag.StatsObserver)
			observers = append(observers, stats)
			o, err := a.orchestrator(flags.maxAttempts, flags.faultPolicy, observers...)
			if err != nil {
				return err
			}
			res, err := o.Run(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			a.logger.Info().Interface("stats", stats.Snapshot()).Msg("run finished")
			if flags.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			a.console.Result(res)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&flags.maxAttempts, "max-attempts", 0, "research attempts before giving up (default from config)")
	f.StringVar(&flags.faultPolicy, "fault-policy", "", "abort or continue when a model call fails (default from config)")
	f.BoolVar(&flags.json, "json", false, "print the result as JSON")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "only print the final answer")
	return cmd
}
