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

	"diario-server/internal/config"
	"diario-server/internal/handler"
	"diario-server/internal/middleware"
	"diario-server/internal/repository"
	"diario-server/internal/service"

	_ "github.com/go-kivik/kivik/v4/couchdb"

	"github.com/go-kivik/kivik/v4"
	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	couchURL := fmt.Sprintf("http://%s:%s@%s:%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
	)

	client, err := kivik.New("couch", couchURL)
	if err != nil {
		log.Fatalf("Failed to connect to CouchDB: %v", err)
	}

	exists, err := client.DBExists(context.Background(), cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to check database existence: %v", err)
	}

	if !exists {
		if err := client.CreateDB(context.Background(), cfg.Database.Name); err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
		log.Printf("Created database: %s", cfg.Database.Name)
	}

	noteRepo := repository.NewNoteRepository(client, cfg.Database.Name)
	settingsRepo := repository.NewSettingsRepository(client, cfg.Database.Name)

	orderService := service.NewOrderService(noteRepo)
	noteService := service.NewNoteService(noteRepo, orderService)
	calendarService := service.NewCalendarService(noteRepo)
	backupService := service.NewBackupService(noteRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	authService := service.NewAuthService(cfg.Auth.PasswordHash, cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration)

	// One-time migration for documents predating custom_order.
	if err := orderService.Backfill(); err != nil {
		log.Fatalf("Failed to backfill note ordering: %v", err)
	}

	settings, err := settingsService.Get()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if settings.AutoCleanEnabled {
		removed, err := noteService.AutoClean(settings.RetentionDays)
		if err != nil {
			log.Printf("Trash auto-clean failed: %v", err)
		} else if removed > 0 {
			log.Printf("Trash auto-clean removed %d notes older than %d days", removed, settings.RetentionDays)
		}
	}

	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService, orderService)
	calendarHandler := handler.NewCalendarHandler(calendarService)
	trashHandler := handler.NewTrashHandler(noteService, settingsService)
	backupHandler := handler.NewBackupHandler(backupService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

	protected.HandleFunc("/notes", noteHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes", noteHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Update).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/notes/{id}/restore", noteHandler.Restore).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes/{id}/purge", noteHandler.Purge).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/notes/{id}/swap/{otherId}", noteHandler.Swap).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes/{id}/move-before/{targetId}", noteHandler.MoveBefore).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes/{id}/copy", noteHandler.CopyToDate).Methods("POST", "OPTIONS")

	protected.HandleFunc("/calendar/{year}/{month}", calendarHandler.Month).Methods("GET", "OPTIONS")

	protected.HandleFunc("/trash", trashHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/trash/empty", trashHandler.Empty).Methods("POST", "OPTIONS")
	protected.HandleFunc("/trash/clean", trashHandler.Clean).Methods("POST", "OPTIONS")

	protected.HandleFunc("/settings", settingsHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/settings", settingsHandler.Update).Methods("PUT", "OPTIONS")

	protected.HandleFunc("/backup/export", backupHandler.Export).Methods("GET", "OPTIONS")
	protected.HandleFunc("/backup/import", backupHandler.Import).Methods("POST", "OPTIONS")

	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/", rootHandler).Methods("GET")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting Diario Server on %s (env: %s)", addr, cfg.Server.Env)
		log.Printf("Connected to CouchDB at %s:%s", cfg.Database.Host, cfg.Database.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"diario-server"}`))
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"Diario Server API","version":"1.0.0","endpoints":{"/api/v1/auth/login":"POST","/api/v1/notes":"GET, POST (protected)","/api/v1/calendar/{year}/{month}":"GET (protected)"}}`))
}
