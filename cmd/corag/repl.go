package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agentlab/corag-agents/agents"
	"github.com/agentlab/corag-agents/components"
)

// converse answers each question of args once, or reads questions from in until "exit" or EOF
func converse(ctx context.Context, a *app, agent *agents.Agent, args []string, in io.Reader, out io.Writer) error {
	ask := func(input string) error {
		resp := new(components.LLMResponse)
		answer, err := agent.Run(ctx, input, resp)
		a.usage.Merge(resp.Usage)
		if err != nil {
			return err
		}
		a.console.Message(agent.Name(), answer)
		return nil
	}
	if len(args) > 0 {
		return ask(strings.Join(args, " "))
	}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nyou> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(input) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "/reset":
			agent.ResetMemory()
			fmt.Fprintln(out, "memory cleared")
			continue
		}
		if err := ask(input); err != nil {
			a.console.Error(err)
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}
