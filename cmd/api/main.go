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

	"github.com/avrkr/advanced-friendly-chatbot/internal/config"
	"github.com/avrkr/advanced-friendly-chatbot/internal/handler"
	"github.com/avrkr/advanced-friendly-chatbot/internal/service/ai"
	chatService "github.com/avrkr/advanced-friendly-chatbot/internal/service/chat"
	"github.com/avrkr/advanced-friendly-chatbot/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Connect the document store; the process is useless without it.
	client, err := store.Connect(ctx, store.ConnectConfig{
		Addr:        cfg.Store.Addr,
		Password:    cfg.Store.Password,
		DB:          cfg.Store.DB,
		MaxAttempts: cfg.Store.ConnectAttempts,
		Delay:       cfg.Store.ConnectDelay,
	})
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer client.Close()
	log.Printf("connected to redis at %s", cfg.Store.Addr)

	settingsStore := store.NewSettingsStore(client)
	conversationStore := store.NewConversationStore(client)

	// Initialize the completion service; without credentials the API stays
	// up but chat turns report the upstream as unavailable.
	var completer chatService.Completer
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality - check the Ark model environment variables")
		} else {
			completer = aiService
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, skipping AI initialization")
	}

	chatSvc := chatService.NewService(settingsStore, conversationStore, completer)
	router := handler.NewRouter(chatSvc, cfg.Server.Environment)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("chatbot backend listening on %s (env=%s)", serverCfg.Addr, serverCfg.Environment)
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
