package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fridgechef/internal/ai"
	"fridgechef/internal/cache"
	"fridgechef/internal/config"
	"fridgechef/internal/credential"
	"fridgechef/internal/kitchen"
)

func runServer(cfg *config.Config, addr string) error {
	batchCache := cache.MakeCache(cfg.CacheDir)
	cred := config.CredentialCell()

	chef := ai.NewClient(cred, cfg.TextModel, cfg.ImageModel)
	gate := credential.NewGate(cred, credential.EnvPicker{Cred: cred}, chef.TestConnection)

	session := kitchen.NewSession(gate, chef, batchCache)

	mux := http.NewServeMux()
	kitchen.NewHandler(session, gate).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	ro := &readyOnce{}
	ro.Add(session)
	mux.Handle("/ready", ro)

	// startup probe resolves the gate's unknown state; the page shows a
	// checking screen until it lands
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		gate.Probe(ctx)
	}()

	server := &http.Server{
		Addr:    addr,
		Handler: WithMiddleware(mux),
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Serving Fridge Chef", "address", addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		slog.Info("Shutdown signal received", "signal", sig)
		return gracefulShutdown(server, func() {
			session.Wait()
			gate.Wait()
		})
	}
}

func gracefulShutdown(svr *http.Server, wait func()) error {
	// give outstanding requests and generation runs 25 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := svr.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
		if closeErr := svr.Close(); closeErr != nil {
			slog.Error("Server close error", "error", closeErr)
		}
		return err
	}

	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()

	slog.Info("Waiting for generation goroutines to complete")
	select {
	case <-done:
		slog.Info("All generation goroutines completed")
		return nil
	case <-ctx.Done():
		slog.Warn("Timeout waiting for generation goroutines")
		return ctx.Err()
	}
}
