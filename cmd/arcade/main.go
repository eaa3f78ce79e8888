package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"sheet-arcade/internal/config"
	"sheet-arcade/internal/ctxlog"
	"sheet-arcade/internal/session"
	"sheet-arcade/internal/term"
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

	// The terminal owns stdout, so logs go to a file or nowhere.
	out, closeLog, err := session.OpenLog(cfg.LogFile, io.Discard)
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer closeLog()
	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat, out).With("run", uuid.NewString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = ctxlog.WithLogger(ctx, logger)

	sess, err := session.New(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init terminal: %v", err)
	}

	runErr := term.New(screen, sess.Host, sess.Sheet, cfg.TPS, logger).Run(ctx)
	screen.Fini()
	if runErr != nil {
		logger.Error("arcade stopped", "err", runErr)
	}
	if err := sess.Close(ctx); err != nil {
		logger.Error("save on exit", "err", err)
		log.Print(err)
	}
	if runErr != nil {
		closeLog()
		log.Fatal(runErr)
	}
}
