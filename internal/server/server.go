// Package server wires the router, middleware, and every route. It is
// the composition root: main.go hands over config and a logger, and
// everything else is assembled here.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/hackhub/internal/analyze"
	"github.com/sakif/hackhub/internal/auth"
	"github.com/sakif/hackhub/internal/event"
	"github.com/sakif/hackhub/internal/handler"
	"github.com/sakif/hackhub/internal/middleware"
	"github.com/sakif/hackhub/internal/service"
	"github.com/sakif/hackhub/internal/store/sqlite"
)

// Config holds server configuration.
type Config struct {
	Port            int
	DBPath          string
	JWTSecret       string
	AnalyzeURL      string
	AnalyzeTimeout  time.Duration
	RefreshInterval time.Duration
}

// Server owns the router, the database, and the background refresher.
// The database is closed during graceful shutdown to flush the WAL and
// release the file lock.
type Server struct {
	router    *chi.Mux
	config    Config
	logger    *slog.Logger
	db        *sqlite.DB
	refresher *event.Refresher
}

// New assembles the full dependency chain: store, event bus, services,
// token service, handlers, routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, builds the services, and maps the
// route tree.
//
// Middleware order: RequestID, RealIP, Recoverer, then request logging.
// Mutating routes sit behind RequireAuth; read routes use OptionalAuth
// so anonymous visitors fall through to guest data.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	bus := event.NewBus()

	authService := service.NewAuthService(s.db, bus, s.logger)
	userDataService := service.NewUserDataService(s.db, bus, s.logger)
	profileService := service.NewProfileService(s.db, authService, bus, s.logger)
	communityService := service.NewCommunityService(s.db, userDataService, bus, s.logger)
	hackathonService := service.NewHackathonService(userDataService, s.logger)

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	var analyzer *analyze.Client
	if s.config.AnalyzeURL != "" {
		analyzer, err = analyze.NewClient(s.config.AnalyzeURL, s.config.AnalyzeTimeout, s.logger)
		if err != nil {
			return fmt.Errorf("creating analyze client: %w", err)
		}
	} else {
		s.logger.Warn("ANALYZE_URL not set, hackathon analysis disabled")
	}

	authHandler := handler.NewAuthHandler(authService, tokens, s.logger)
	profileHandler := handler.NewProfileHandler(profileService, s.logger)
	communityHandler := handler.NewCommunityHandler(communityService, s.logger)
	userDataHandler := handler.NewUserDataHandler(userDataService, s.logger)
	statsHandler := handler.NewStatsHandler(userDataService, profileService, s.logger)
	hackathonHandler := handler.NewHackathonHandler(hackathonService, analyzer, s.logger)

	requireAuth := auth.RequireAuth(tokens, authService)
	optionalAuth := auth.OptionalAuth(tokens, authService)

	// The refresher republishes the user-data topic on a timer so
	// pollers pick up state changed outside this process. Off by
	// default; subscriptions through the bus are the primary path.
	s.refresher = event.NewRefresher(s.config.RefreshInterval, func(ctx context.Context) {
		bus.Publish(event.UserDataUpdated, nil)
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.HandleRegister)
			r.Post("/signin", authHandler.HandleSignIn)
			r.Post("/signout", authHandler.HandleSignOut)
			r.With(optionalAuth).Get("/me", authHandler.HandleMe)
		})

		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/profile", profileHandler.HandleGet)
			r.Put("/profile", profileHandler.HandleSave)
			r.Get("/communities", communityHandler.HandleList)
			r.Get("/communities/{id}", communityHandler.HandleGet)
			r.Post("/communities", communityHandler.HandleCreate)
			r.Get("/deadlines", communityHandler.HandleAllDeadlines)
			r.Get("/userdata", userDataHandler.HandleGet)
			r.Get("/stats/activity", statsHandler.HandleActivity)
			r.Get("/stats/domains", statsHandler.HandleDomainChart)
			r.Get("/stats/languages", statsHandler.HandleLanguageChart)
			r.Get("/stats/points", statsHandler.HandlePoints)
			r.Get("/stats/recent-activity", statsHandler.HandleRecentActivity)
			r.Get("/hackathons", hackathonHandler.HandleList)
			r.Get("/hackathons/{id}", hackathonHandler.HandleGet)
			r.Post("/analyze-hackathon", hackathonHandler.HandleAnalyze)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/communities/{id}/join", communityHandler.HandleJoin)
			r.Post("/communities/{id}/leave", communityHandler.HandleLeave)
			r.Post("/communities/{id}/messages", communityHandler.HandlePostMessage)
			r.Post("/communities/{id}/deadlines", communityHandler.HandleAddDeadline)
			r.Post("/hackathons/{id}/register", hackathonHandler.HandleRegister)
			r.Post("/userdata/projects", userDataHandler.HandleAddProject)
			r.Post("/userdata/profile-view", userDataHandler.HandleProfileView)
			r.Delete("/userdata", userDataHandler.HandleClear)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests, stop
// the refresher, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.refresher.Start(context.Background())
	defer s.refresher.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// Router exposes the route tree for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
