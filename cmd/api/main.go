package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/grindhub/grindhub/docs"
	"github.com/grindhub/grindhub/internal/assignment"
	"github.com/grindhub/grindhub/internal/class"
	"github.com/grindhub/grindhub/internal/config"
	"github.com/grindhub/grindhub/internal/database"
	"github.com/grindhub/grindhub/internal/group"
	"github.com/grindhub/grindhub/internal/message"
	"github.com/grindhub/grindhub/internal/module"
	"github.com/grindhub/grindhub/internal/notification"
	"github.com/grindhub/grindhub/internal/realtime"
	"github.com/grindhub/grindhub/internal/user"
	mw "github.com/grindhub/grindhub/pkg/middleware"
)

// @title        GrindHub API
// @version      1.0
// @description  Student productivity server: assignments, classes, and group chat with realtime delivery.
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// Realtime hub with the assistant side-channel
	hub := realtime.NewHub(realtime.NewResponder(cfg.AssistantURL))
	go hub.Run()
	wsHandler := realtime.NewHandler(hub, cfg.JWTSecret, cfg.AllowedOrigins)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	// Notification preferences
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// Assignment feature
	assignmentRepo := assignment.NewRepository(db)
	assignmentService := assignment.NewService(assignmentRepo)
	assignmentHandler := assignment.NewHandler(assignmentService)

	// Class feature
	classRepo := class.NewRepository(db)
	classService := class.NewService(classRepo)
	classHandler := class.NewHandler(classService)

	// Course module feature
	moduleRepo := module.NewRepository(db)
	moduleService := module.NewService(moduleRepo)
	moduleHandler := module.NewHandler(moduleService)

	// Group directory and membership registry
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Message log, fanning out through the hub to group members
	messageRepo := message.NewRepository(db)
	messageService := message.NewService(messageRepo, groupRepo, hub)
	messageHandler := message.NewHandler(messageService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/ws", wsHandler.ServeWS)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", userHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate(cfg.JWTSecret))

			r.Mount("/notifications", notificationHandler.Routes())
			r.Mount("/assignments", assignmentHandler.Routes())
			r.Mount("/classes", classHandler.Routes())
			r.Mount("/modules", moduleHandler.Routes())
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/messages", messageHandler.Routes())
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	if err := hub.Shutdown(10 * time.Second); err != nil {
		log.Printf("Hub shutdown error: %v", err)
	}
}
