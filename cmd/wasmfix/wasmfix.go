package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"wasmfix/internal/app"
	"wasmfix/internal/cli"
	"wasmfix/pkg/logger"
	"wasmfix/pkg/wasm"
)

func main() {
	godotenv.Load()

	// 1. CLI DISPATCHER
	if len(os.Args) > 1 {
		switch cmd := os.Args[1]; cmd {
		case "list":
			cli.HandleList(os.Args[2:])
		case "call":
			cli.HandleCall(os.Args[2:])
		case "check":
			cli.HandleCheck(os.Args[2:])
		case "version":
			cli.HandleVersion()
		case "serve":
			serve()
		default:
			slog.Error("Unknown command", "command", cmd)
			os.Exit(1)
		}
		return
	}

	// 2. No arguments: run the invocation harness.
	serve()
}

func serve() {
	appEnv := os.Getenv("APP_ENV")
	logger.Setup(appEnv)
	slog.Info("Starting wasmfix harness...", "env", appEnv)

	ctx := context.Background()
	rt, err := wasm.NewRuntime(ctx)
	if err != nil {
		slog.Error("❌ Failed to create WASM runtime", "error", err)
		os.Exit(1)
	}
	defer rt.Close(ctx)

	// The built-in catalog is always available; an externally compiled
	// artifact is loaded alongside it when WASMFIX_MODULE points at one.
	if err := rt.InstantiateFixtures(ctx, app.FixtureModule); err != nil {
		slog.Error("❌ Failed to instantiate fixture module", "error", err)
		os.Exit(1)
	}
	if modulePath := os.Getenv("WASMFIX_MODULE"); modulePath != "" {
		if err := rt.LoadModule(ctx, "artifact", modulePath); err != nil {
			slog.Error("❌ Failed to load fixture artifact", "path", modulePath, "error", err)
			os.Exit(1)
		}
	}

	timeoutMS := cast.ToInt(os.Getenv("WASMFIX_CALL_TIMEOUT_MS"))
	if timeoutMS <= 0 {
		timeoutMS = 5000
	}

	appCtx := &app.AppContext{
		Runtime: rt,
		Invoker: wasm.NewInvoker(rt, app.FixtureModule, time.Duration(timeoutMS)*time.Millisecond),
		Env:     appEnv,
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: app.BuildRouter(appCtx),
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("✅ Harness listening", "port", port, "call_timeout_ms", timeoutMS)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Server error", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdownCtx.Done()
	slog.Info("Shutting down...")

	timeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(timeout); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("✅ Shutdown complete")
}
