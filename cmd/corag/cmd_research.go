package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newResearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "research <question>",
		Short: "Run a single research attempt without evaluation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.chatClient()
			if err != nil {
				return err
			}
			researcher, err := a.researcher(client)
			if err != nil {
				return err
			}
			answer, err := researcher.Research(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if answer == "" {
				a.console.Message("Research Result", "No response received from researcher.")
				return nil
			}
			a.console.Message("Research Result", answer)
			return nil
		},
	}
}
