package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/gabrilend/gen-realms/internal/config"
	"github.com/gabrilend/gen-realms/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.RegisterFlags(flag.CommandLine)
	artDir := flag.String("art", "", "path to card art directory (<card id>.png)")
	gameAddr := flag.String("game", "", "default match server address (localhost:<port> when empty)")
	flag.Parse()

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}
	if *gameAddr == "" {
		*gameAddr = fmt.Sprintf("localhost:%d", cfg.Port)
	}

	srv, err := web.NewServer(web.Config{
		Catalog:   cat,
		ArtDir:    *artDir,
		DecksFile: cfg.DecksPath,
		GameAddr:  *gameAddr,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	addr := fmt.Sprintf(":%d", cfg.WebPort)
	logger.Info("realms web UI listening", zap.String("url", fmt.Sprintf("http://localhost:%d", cfg.WebPort)))
	return srv.ListenAndServe(ctx, addr)
}
