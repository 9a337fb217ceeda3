package main

import (
	"github.com/spf13/cobra"

	"github.com/agentlab/corag-agents/agents"
	"github.com/agentlab/corag-agents/components/systemprompt/crispe"
	"github.com/agentlab/corag-agents/tools"
	"github.com/agentlab/corag-agents/tools/calculator"
	"github.com/agentlab/corag-agents/tools/planet"
	"github.com/agentlab/corag-agents/tools/searxng"
	"github.com/agentlab/corag-agents/tools/webscraper"
)

func chatPrompt(webSearch bool) *crispe.Generator {
	statements := []string{
		"- Decide whether a tool can answer the question more reliably than you can.",
		"- Use `get_planet_mass` for planet masses and `calculate` for arithmetic.",
		"- Use `scrape_page` to read a web page when the user gives you a URL.",
		"- Pass large numbers to `calculate` through `params` instead of writing them in the expression, e.g. {\"expression\": \"mass * 2\", \"params\": {\"mass\": 5.972e24}}.",
	}
	if webSearch {
		statements = append(statements, "- Use `web_search` for current events or facts you are unsure about, then `scrape_page` on the most relevant result when the snippet is not enough.")
	}
	return crispe.New(
		crispe.WithCapacities([]string{
			"- You are a helpful assistant that answers questions with the help of tools.",
		}),
		crispe.WithStatements(statements),
		crispe.WithPersonalities([]string{
			"- Answer concisely and show the final number with its unit.",
		}),
		crispe.WithExperiments([]string{
			"- When the question is ambiguous, suggest one or two clearer questions the user could ask.",
		}),
	)
}

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [question]",
		Short: "Talk to a tool using assistant with a calculator, planet facts, a page scraper and optional web search",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.chatClient()
			if err != nil {
				return err
			}
			toolset := []tools.Tool{calculator.New(), planet.New(), webscraper.New(nil)}
			web := a.searxng()
			if web != nil {
				toolset = append(toolset, searxng.New(web))
			}
			opts := append(a.agentOptions(a.cfg.LLM.Model),
				agents.WithName("Assistant"),
				agents.WithClient(client),
				agents.WithSystemPromptGenerator(chatPrompt(web != nil)),
				agents.WithTools(toolset...),
			)
			agent := agents.NewAgent(opts...)
			return converse(cmd.Context(), a, agent, args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
