package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wolfvue/wolfvue-go/cmd"
	"github.com/wolfvue/wolfvue-go/internal/batch"
	"github.com/wolfvue/wolfvue-go/internal/conf"
	"github.com/wolfvue/wolfvue-go/internal/logging"
)

func main() {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// SIGINT or SIGTERM cancels the context; the orchestrator observes
	// cancellation between files and finishes the run as Cancelled.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.RootCommand(settings)
	err = rootCmd.ExecuteContext(ctx)

	if closeErr := batch.CloseLogger(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "error closing log file: %v\n", closeErr)
	}

	if err != nil {
		os.Exit(1)
	}
}
