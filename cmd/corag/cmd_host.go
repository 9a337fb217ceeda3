package main

import (
	"github.com/spf13/cobra"

	"github.com/agentlab/corag-agents/agents"
	"github.com/agentlab/corag-agents/components/systemprompt/broke"
	"github.com/agentlab/corag-agents/tools/jsondb"
)

func hostPrompt(store *jsondb.Store) *broke.Generator {
	return broke.New(
		broke.WithBackground([]string{
			"- You are the host of a restaurant named \"The Golden Fork\".",
		}),
		broke.WithRoles([]string{
			"- You answer questions about the restaurant and help customers with reservations and orders.",
		}),
		broke.WithObjectives([]string{
			"- Read the database snapshot below before answering.",
			"- Use `db_get` to read values and `db_set`, `db_append` or `db_delete` to change them. Paths are lists of object keys and array indices.",
			"- Use `generate_id` with a short prefix such as RES whenever you create a record.",
			"- Check availability and opening hours before booking and confirm the details back to the customer.",
		}),
		broke.WithKeyResults([]string{
			"- Every booking or order is written to the database before it is confirmed.",
			"- Only provide information you are certain about.",
		}),
		broke.WithEvolves([]string{
			"- Be concise and polite.",
			"- Decline politely if asked about things outside your duties.",
		}),
		broke.WithContextProviders(jsondb.NewContextProvider(store, "Restaurant Database")),
	)
}

func newHostCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "host [request]",
		Short: "Talk to the restaurant host assistant backed by a JSON database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = a.cfg.Database
			}
			store, err := jsondb.Open(path)
			if err != nil {
				return err
			}
			client, err := a.chatClient()
			if err != nil {
				return err
			}
			opts := append(a.agentOptions(a.cfg.LLM.Model),
				agents.WithName("Host"),
				agents.WithClient(client),
				agents.WithSystemPromptGenerator(hostPrompt(store)),
				agents.WithTools(jsondb.Tools(store)...),
			)
			agent := agents.NewAgent(opts...)
			return converse(cmd.Context(), a, agent, args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&path, "db", "", "JSON database file (default from config)")
	return cmd
}
