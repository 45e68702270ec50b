package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaaiz/blaaiz-go/internal/api"
	"github.com/blaaiz/blaaiz-go/internal/auth"
	"github.com/blaaiz/blaaiz-go/internal/config"
	"github.com/blaaiz/blaaiz-go/pkg/blaaiz"
)

func main() {
	issueToken := flag.String("issue-token", "", "print an event stream token for the named subscriber and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	authSvc := auth.New(&cfg.Stream)

	if *issueToken != "" {
		token, subscriber, err := authSvc.IssueToken(*issueToken)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Token for %s (%s), expires %s\n", subscriber.Name, subscriber.ID, subscriber.ExpiresAt.Format(time.RFC3339))
		fmt.Println(token)
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	sdk, err := blaaiz.New(cfg.ClientConfig())
	if err != nil {
		log.Fatalf("Failed to create Blaaiz client: %v", err)
	}

	hub := api.NewHub()
	handler := api.New(sdk, authSvc, hub, cfg.Blaaiz.WebhookSecret)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler.SetupRouter(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Blaaiz receiver listening on :%s (API %s)", cfg.Server.Port, cfg.Blaaiz.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
