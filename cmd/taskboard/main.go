package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"task-board/internal/cli"
	"task-board/internal/config"
)

func main() {
	// Cancel in-flight work on Ctrl+C or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Configuration and storage are resolved once flags are parsed
	root := cli.NewRootCommand(config.NewLoader(), cli.DefaultBootstrap)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
