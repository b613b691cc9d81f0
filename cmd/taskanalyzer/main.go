package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli/mcp"
	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli/priority"
	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli/serve"
	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli/task"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Register commands
	cli.AddCommand(priority.AnalyzeCmd)
	cli.AddCommand(priority.SuggestCmd)
	cli.AddCommand(task.Cmd)
	cli.AddCommand(serve.Cmd)
	cli.AddCommand(mcp.Cmd)

	if err := cli.Execute(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
