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

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/shreyas-k21/passvault/internal/api"
	"github.com/shreyas-k21/passvault/internal/api/handlers"
	"github.com/shreyas-k21/passvault/internal/auth"
	"github.com/shreyas-k21/passvault/internal/config"
	"github.com/shreyas-k21/passvault/internal/crypto"
	"github.com/shreyas-k21/passvault/internal/repositories"
	"github.com/shreyas-k21/passvault/internal/session"
	"github.com/shreyas-k21/passvault/internal/vault"
)

const sweepInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Without a master secret (or a usable store) the vault must not
		// serve traffic at all.
		log.Fatalf("Configuration error: %v", err)
	}

	// The master key is derived once and passed explicitly from here on.
	masterKey := crypto.DeriveKey(cfg.MasterSecret)

	var (
		userStore     auth.UserStore
		passwordStore vault.PasswordStore
		noteStore     vault.NoteStore
		sessionStore  session.Store
	)

	switch cfg.Store {
	case config.StoreMemory:
		log.Println("Running with in-memory stores; data will not survive a restart")
		userStore = auth.NewMemoryStore()
		records := vault.NewMemoryStore()
		passwordStore = records
		noteStore = records.Notes()
		if cfg.SessionStore == config.SessionStoreDatabase {
			log.Fatal("SESSION_STORE=database requires STORE=postgres")
		}
	default:
		db, err := repositories.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		userStore = repositories.NewUserRepository(db)
		passwordStore = repositories.NewPasswordRepository(db)
		noteStore = repositories.NewNoteRepository(db)
		if cfg.SessionStore == config.SessionStoreDatabase {
			sessionStore = repositories.NewSessionRepository(db)
		}
	}

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		sessionStore, err = session.NewRedisStore(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
	case config.SessionStoreMemory:
		sessionStore = session.NewMemoryStore()
	}
	defer sessionStore.Close()

	creds := auth.NewService(userStore, auth.Policy{
		MinLength:         cfg.PasswordMinLength,
		RequireComplexity: cfg.PasswordComplexity,
	})
	sessions := session.NewManager(sessionStore, cfg.SessionTTL)
	records := vault.NewService(passwordStore, noteStore, masterKey)

	handler := api.SetupRouter(
		cfg,
		handlers.NewAuthHandler(creds, sessions, cfg.SessionTTL, cfg.Environment),
		handlers.NewPasswordsHandler(records),
		handlers.NewNotesHandler(records),
		sessions,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: handler,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting PassVault server on port: %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// Expired sessions are never honored regardless; the sweep just keeps the
	// store from accumulating dead rows.
	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := sessions.Sweep(ctx); err != nil {
					log.Printf("Session sweep failed: %v", err)
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
