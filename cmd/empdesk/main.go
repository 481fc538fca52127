package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"emprecords/internal/app/desk"
	"emprecords/internal/platform/config"
	"emprecords/internal/platform/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := desk.Run(ctx, cfg, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, logger)
	stop()
	os.Exit(code)
}
