package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"login_automation/presentation/terminal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := terminal.NewTerminalInterface(os.Stdout, os.Stderr, nil).RootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
