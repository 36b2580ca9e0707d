// Command verifyd runs the meaning-verification HTTP service used by
// challenge mode. It reads GROQ_API_KEY from the environment (a .env file
// is loaded if present) and serves POST /api/verify.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/Mahatir-Ahmed-Tusher/WordVia/pkg/verify"
)

type CLI struct {
	Addr  string `default:":8080" help:"Address to listen on"`
	Model string `default:"" help:"Override the verification model"`
	Debug bool   `help:"Enable debug logging"`
}

func main() {
	var cli CLI
	kong.Parse(&cli)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if cli.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		logger.Warn("GROQ_API_KEY is not set; every meaning will be accepted")
	}

	opts := []verify.ServerOption{verify.WithServerLogger(logger)}
	if cli.Model != "" {
		opts = append(opts, verify.WithModel(cli.Model))
	}
	svc := verify.NewServer(apiKey, opts...)

	srv := &http.Server{
		Addr:              cli.Addr,
		Handler:           svc.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("verification service listening", "addr", cli.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", "error", err)
	}
	logger.Info("verification service stopped")
}
