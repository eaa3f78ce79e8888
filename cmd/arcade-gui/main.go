//go:build ebiten

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/uuid"

	"sheet-arcade/internal/app"
	"sheet-arcade/internal/config"
	"sheet-arcade/internal/ctxlog"
	"sheet-arcade/internal/session"
)

func main() {
	cfg := config.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if cfg.ConfigFile != "" {
		if err := cfg.LoadFile(cfg.ConfigFile, flag.CommandLine); err != nil {
			log.Fatal(err)
		}
	}

	out, closeLog, err := session.OpenLog(cfg.LogFile, os.Stderr)
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer closeLog()
	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat, out).With("run", uuid.NewString())
	ctx := ctxlog.WithLogger(context.Background(), logger)

	sess, err := session.New(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sess.Host, sess.Sheet, cfg.Scale, cfg.TPS, logger)
	runErr := app.Run(game, "sheet-arcade")
	if err := sess.Close(ctx); err != nil {
		logger.Error("save on exit", "err", err)
	}
	if runErr != nil {
		closeLog()
		log.Fatal(runErr)
	}
}
