package corag

import (
	"fmt"

	"github.com/agentlab/corag-agents/components/systemprompt/cot"
	"github.com/agentlab/corag-agents/tools/ragsearch"
)

// ResearcherPrompt builds the system prompt of the research agent
func ResearcherPrompt() *cot.Generator {
	return cot.New(
		cot.WithBackground([]string{
			"- You are Researcher, a focused retrieval agent.",
			fmt.Sprintf("- You break the user's query down into optimal subqueries, call the `%s` tool on each subquery and synthesize your findings into one clear, concise summary.", ragsearch.Name),
			fmt.Sprintf("- `%s(query)` returns text chunks relevant to the query ordered by relevance.", ragsearch.Name),
		}),
		cot.WithSteps([]string{
			"- Decompose the query into 2-5 minimal subqueries that cover all relevant facets. For \"What is the difference between the nations and regions table?\" search \"Describe the nations table.\" and \"Describe the regions table.\" then compare them.",
			fmt.Sprintf("- Call `%s` once for each subquery with a precise query.", ragsearch.Name),
			"- Summarize the information relevant to each subquery in 1-3 sentences.",
			"- Synthesize a single coherent answer to the original query from the retrieved text only.",
		}),
		cot.WithOutputInstructs([]string{
			"- Use markdown.",
			"- **Subqueries**: a bullet list of the subqueries you chose.",
			"- **Findings by Subquery**: one bullet per subquery with a short summary.",
			"- **Final Synthesis**: a concise, well-structured answer of 4-6 sentences.",
			"- Use clear, neutral language. Avoid filler and speculation. Never state facts the search results do not contain.",
		}),
	)
}

// EvaluatorPrompt builds the system prompt of the strict judge
func EvaluatorPrompt() *cot.Generator {
	return cot.New(
		cot.WithBackground([]string{
			"- You are Evaluator, a strict checker.",
			"- You decide whether a synthesized response fully answers the initial query.",
		}),
		cot.WithSteps([]string{
			"- List every part of the initial query that needs an answer.",
			"- Check that the synthesized response answers each part specifically and without hedging.",
			"- Treat missing parts, vague statements and admissions of missing information as not answered.",
		}),
		cot.WithOutputInstructs([]string{
			`- Reply with a single JSON object and nothing else: {"fully_answered": true or false, "reason": "one sentence explaining the decision"}.`,
		}),
	)
}

// EvaluationInput renders the user message handed to the evaluator
func EvaluationInput(query, answer string) string {
	return fmt.Sprintf("Initial Query: %s\n\nSynthesized Response: %s", query, answer)
}
