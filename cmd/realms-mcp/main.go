package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gabrilend/gen-realms/internal/config"
	realmsmcp "github.com/gabrilend/gen-realms/internal/mcp"
	"github.com/gabrilend/gen-realms/internal/session"
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
	st, closeStore, err := cfg.Store()
	if err != nil {
		return err
	}
	defer closeStore()

	sessions, err := session.NewManager(session.Config{Catalog: cat, Store: st, Logger: logger})
	if err != nil {
		return err
	}

	s := server.NewMCPServer("realms", "1.0.0", server.WithToolCapabilities(false))
	realmsmcp.RegisterTools(s, realmsmcp.NewHandler(sessions, cfg.DecksPath, logger))

	return server.ServeStdio(s)
}
