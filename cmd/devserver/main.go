// File: cmd/devserver/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexsuite/chatorb/internal/config"
	"github.com/nexsuite/chatorb/internal/devserver"
	"github.com/nexsuite/chatorb/internal/devserver/reply"
	"github.com/nexsuite/chatorb/internal/devserver/storage"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(
		&storage.ConversationRecord{},
		&storage.MessageRecord{},
		&storage.EventRecord{},
	); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	conversationRepo := storage.NewConversationRepository(db)
	messageRepo := storage.NewMessageRepository(db)
	eventRepo := storage.NewEventRepository(db)

	seedEvents(db, cfg.TenantID)

	// --- Reply provider ---
	var provider reply.Provider
	if cfg.AIAPIKey != "" {
		provider, err = reply.NewOpenAIProvider(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize AI reply provider: %v", err)
		}
		log.Printf("Reply provider: %s", cfg.AIModel)
	} else {
		provider = reply.NewCannedProvider()
		log.Printf("Reply provider: canned (set AI_API_KEY for live replies)")
	}

	// --- Router Setup ---
	r := devserver.NewRouter(conversationRepo, messageRepo, eventRepo, provider)

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	log.Printf("Assistant devserver listening on :%s (db: %s)", cfg.ServerPort, cfg.DBPath)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}

// seedEvents gives the activity feed some demo entries so the context bundle
// has material to sample on a fresh database.
func seedEvents(db *gorm.DB, tenantID string) {
	if tenantID == "" {
		return
	}

	var count int64
	if err := db.Model(&storage.EventRecord{}).Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil || count > 0 {
		return
	}

	descriptions := []string{
		"Deal \"Acme renewal\" moved to Negotiation",
		"Leave request approved for J. Rivera",
		"Workflow \"Invoice approval\" completed",
		"New lead imported from web form",
		"Quarterly sales report generated",
	}
	now := time.Now().UTC()
	for i, d := range descriptions {
		db.Create(&storage.EventRecord{
			ID:          uuid.NewString(),
			TenantID:    tenantID,
			Description: d,
			CreatedAt:   now.Add(-time.Duration(i) * time.Minute),
		})
	}
}
