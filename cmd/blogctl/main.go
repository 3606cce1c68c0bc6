package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"blogsphere/internal/client/cli"
	"blogsphere/internal/client/config"
	"blogsphere/internal/client/session"
	"blogsphere/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter(os.Stderr, cfg.LogLevel)

	app, err := cli.New(cli.Options{
		APIURL: cfg.APIURL,
		KV:     session.NewFileKV(cfg.TokenFile),
		Log:    log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}
