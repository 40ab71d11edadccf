package api

import (
	"fmt"
	"log"
	"net/http"

	_ "github.com/shreyas-k21/passvault/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rs/cors"
	"github.com/shreyas-k21/passvault/internal/api/handlers"
	"github.com/shreyas-k21/passvault/internal/api/middleware"
	"github.com/shreyas-k21/passvault/internal/config"
	"github.com/shreyas-k21/passvault/internal/session"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	passwordsHandler *handlers.PasswordsHandler,
	notesHandler *handlers.NotesHandler,
	sessions *session.Manager,
) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(cfg.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	authMux := http.NewServeMux()
	authMux.HandleFunc("/register", authHandler.Register)
	authMux.HandleFunc("/login", authHandler.Login)
	authMux.HandleFunc("/logout", authHandler.Logout)
	authMux.HandleFunc("/status", authHandler.Status)

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	protectedMux.HandleFunc("/passwords", passwordsHandler.Collection)
	protectedMux.HandleFunc("/passwords/{id}", passwordsHandler.Item)
	protectedMux.HandleFunc("/notes", notesHandler.Collection)
	protectedMux.HandleFunc("/notes/{id}", notesHandler.Item)

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			middleware.Auth(sessions)(protectedMux),
		),
	)

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
