package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/gabrilend/gen-realms/internal/config"
	realmsnet "github.com/gabrilend/gen-realms/internal/net"
	"github.com/gabrilend/gen-realms/internal/session"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "host":
		err = runServer(ctx, "host", os.Args[2:], true)
	case "serve":
		err = runServer(ctx, "serve", os.Args[2:], false)
	case "join":
		err = runJoin(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  realms host  [--deck N] [--port P] [--players N] [--decks FILE] [--data FILE]")
	fmt.Println("  realms serve [--port P] [--players N] [--decks FILE] [--data FILE]")
	fmt.Println("  realms join  [--deck N] [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a match server and play as P1 from this terminal")
	fmt.Println("  serve   Start a match server where every seat joins over the network")
	fmt.Println("  join    Connect to a match server")
	fmt.Println()
	fmt.Println("Every flag of host and serve can also be set with a REALMS_* environment variable.")
}

func runServer(ctx context.Context, name string, args []string, localHost bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cfg.RegisterFlags(fs)
	deck := fs.Int("deck", 0, "host deck number from the decks file (0 for the standard deck)")
	fs.Parse(args)

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
	srv := &realmsnet.Server{
		Sessions:  sessions,
		Port:      strconv.Itoa(cfg.Port),
		DeckFile:  cfg.DecksPath,
		HostDeck:  *deck,
		Seats:     cfg.Players,
		Seed:      cfg.Seed,
		Logger:    logger,
		LocalHost: localHost,
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	deck := fs.Int("deck", 0, "deck number from the host's decks file (0 for the standard deck)")
	addr := fs.String("addr", "localhost:7777", "server address to connect to")
	fs.Parse(args)

	return realmsnet.Connect(ctx, *addr, *deck)
}
