package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"Ignite/internal/cli"
	"Ignite/internal/config"
	"Ignite/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Client diagnostics go to stderr so command output stays pipeable
	logger, closer, err := logging.New(logging.Options{Level: "warn", Format: "text", Output: os.Stderr, File: cfg.LogFile})
	if err != nil {
		log.Fatal("Failed to configure logging:", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand(cfg, logger).ExecuteContext(ctx); err != nil {
		stop()
		closer.Close()
		os.Exit(1)
	}
}
