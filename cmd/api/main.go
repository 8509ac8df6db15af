package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sakura-edu/aichan-hiroba/backend/internal/analysis/respond"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/config"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/handler"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/feeling"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/hint"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/persona"
	sessionService "github.com/sakura-edu/aichan-hiroba/backend/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())
	feelingStore := feeling.NewMemoryStore(feeling.Seed())
	hints := hint.Seed()

	engine := respond.NewEngine(respond.Config{
		DelayMin: cfg.Chat.ThinkDelayMin,
		DelayMax: cfg.Chat.ThinkDelayMax,
	})
	sessionSvc := sessionService.NewService(engine, feelingStore)

	router := handler.NewRouter(personaStore, feelingStore, hints, sessionSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.Server, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Aichan Hiroba backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
