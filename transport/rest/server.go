package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	NewGame(ctx context.Context, dimension int, contents string, players *entity.Players) (*usecase.Outcome, error)
	MakeMove(ctx context.Context, gameID string, row, column int) (*usecase.Outcome, error)
	GetGame(ctx context.Context, gameID string) (*usecase.Outcome, error)
	UpdatePlayers(ctx context.Context, gameID string, players entity.Players) (*usecase.Outcome, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type moveFinder interface {
	FindBestMove(ctx context.Context, dimension int, board string, mover entity.Square, ply int) (int, error)
}

type Server struct {
	logger *slog.Logger

	games  gameManager
	engine moveFinder

	searchTimeout time.Duration
}

func New(logger *slog.Logger, games gameManager, engine moveFinder, searchTimeout time.Duration) *Server {
	return &Server{
		logger:        logger.With("component", "rest"),
		games:         games,
		engine:        engine,
		searchTimeout: searchTimeout,
	}
}

// Router returns the HTTP API.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(that.requestLogger)
	router.Use(middleware.Recoverer)

	router.Get("/ping", pingHandler)

	router.Route("/api", func(r chi.Router) {
		r.Post("/engine/best-move", that.handleBestMove)

		r.Post("/games", that.handleNewGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", that.handleGetGame)
			r.Delete("/", that.handleDeleteGame)
			r.Post("/moves", that.handleMakeMove)
			r.Put("/players", that.handleUpdatePlayers)
		})
	})

	return router
}

// Start serves the API until ctx is cancelled, then shuts the server down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Router(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	return serve(ctx, srv)
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		that.logger.Info("request served",
			"requestID", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
