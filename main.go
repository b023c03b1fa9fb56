package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/phamhoang/duocsi-chat/api"
	"github.com/phamhoang/duocsi-chat/config"
	"github.com/phamhoang/duocsi-chat/llm"
	"github.com/phamhoang/duocsi-chat/policy"
	"github.com/phamhoang/duocsi-chat/service"
	"github.com/phamhoang/duocsi-chat/store"
)

func main() {
	cfg := config.Load()

	log.Printf("Starting duocsi-chat...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Storage backend: %s", cfg.StorageBackend)
	log.Printf("Model: %s", cfg.ModelName)

	// Initialize store
	var st store.Store
	switch cfg.StorageBackend {
	case "memory":
		st = store.NewMemoryStore()
	default:
		sqliteStore, err := store.NewSQLiteStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		st = sqliteStore
	}
	defer st.Close()

	ctx := context.Background()

	// Initialize LLM client
	llmClient, err := llm.NewLLMClient(ctx, cfg.GeminiAPIKey, cfg.ModelName)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	// Initialize intake policy engine
	policyContent := policy.DefaultPolicy
	if cfg.PolicyFile != "" {
		data, err := os.ReadFile(cfg.PolicyFile)
		if err != nil {
			log.Fatalf("Failed to read policy file: %v", err)
		}
		policyContent = string(data)
	}
	policyEngine, err := policy.NewEngine(ctx, policyContent)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service
	svc := service.New(st, llmClient, policyEngine, cfg)

	// Initialize handler
	h := api.NewHandler(svc)

	server := echo.New()
	server.HideBanner = true

	// Middleware
	server.Use(middleware.Logger())
	server.Use(middleware.Recover())
	server.Use(middleware.CORS())

	h.RegisterRoutes(server)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down duocsi-chat...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
