package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"jobcrawler/internal/app"
	"jobcrawler/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	once := flag.Bool("once", false, "run a single scrape cycle and exit")
	flag.Parse()

	// Local development convenience; production sets real env vars.
	_ = godotenv.Load()

	if err := run(*configPath, *once); err != nil {
		fmt.Fprintln(os.Stderr, "jobcrawler:", err)
		os.Exit(1)
	}
}

func run(configPath string, once bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if once {
		return a.RunOnce(ctx)
	}
	return a.Run(ctx)
}
