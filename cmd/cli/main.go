package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/awnumar/memguard"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/cli"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/config"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
)

// protectSecrets wipes every memguard enclave when the process is interrupted
// and returns the purge to run on normal exit.
func protectSecrets() func() {
	memguard.CatchInterrupt()
	return memguard.Purge
}

func main() {

	purge := protectSecrets()
	defer purge()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Printf("%v", err)
		memguard.SafeExit(1)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		memguard.SafeExit(1)
	}

	app.Run(ctx)

}
