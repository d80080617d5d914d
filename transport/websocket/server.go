package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const (
	shutdownTimeout = 5 * time.Second
	writeTimeout    = 10 * time.Second
	queueSize       = 16
)

type gameManager interface {
	NewGame(ctx context.Context, dimension int, contents string, players *entity.Players) (*usecase.Outcome, error)
	MakeMove(ctx context.Context, gameID string, row, column int) (*usecase.Outcome, error)
	GetGame(ctx context.Context, gameID string) (*usecase.Outcome, error)
}

type handler func(ctx context.Context, message *Message, session *session) error

type Server struct {
	logger   *slog.Logger
	games    gameManager
	upgrader websocket.Upgrader

	handlers map[string]handler
}

func New(logger *slog.Logger, games gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handler),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionGetGame] = server.handleGetGame
	server.handlers[actionGameTurn] = server.handleGameTurn

	return server
}

// Router serves the session endpoint at /ws. ctx bounds every session.
func (that *Server) Router(ctx context.Context) http.Handler {
	router := chi.NewRouter()
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveSession(ctx, w, r)
	})

	return router
}

// Start serves WebSocket sessions until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

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

func (that *Server) serveSession(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveSession")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	session := newSession(ctx, conn)
	defer session.close()

	// hijacked connections are not closed by http.Server.Shutdown
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	jobs := make(chan job, queueSize)
	done := make(chan struct{})

	go func() {
		defer close(done)
		that.work(jobs)
	}()

	log.Info("WebSocket connection established")

	that.readMessages(session, jobs)

	close(jobs)
	session.close()
	<-done

	log.Info("WebSocket connection closed")
}

type job struct {
	ctx     context.Context
	message *Message
	session *session
}

// readMessages queues client messages in order. A new game cancels every job queued or running
// for the previous one.
func (that *Server) readMessages(session *session, jobs chan<- job) {
	log := that.logger.With("method", "readMessages")

	for {
		var message Message
		if err := session.conn.ReadJSON(&message); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				session.sendError("", fmt.Errorf("malformed message: %w", err))
				continue
			}

			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("stopped reading", "error", err)
			}

			return
		}

		ctx := session.current()
		if message.Action == actionNewGame {
			ctx = session.restart()
		}

		jobs <- job{ctx: ctx, message: &message, session: session}
	}
}

func (that *Server) work(jobs <-chan job) {
	log := that.logger.With("method", "work")

	for next := range jobs {
		if next.ctx.Err() != nil {
			continue
		}

		action := next.message.Action

		handle, ok := that.handlers[action]
		if !ok {
			next.session.sendError(action, fmt.Errorf("unknown action %q", action))
			continue
		}

		if err := handle(next.ctx, next.message, next.session); err != nil {
			log.Warn("error processing message", "action", action, "error", err)
			next.session.sendError(action, err)
		}
	}
}

// session is one client connection. Writes are serialized; work is cancelled per game.
type session struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	mu     sync.Mutex
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	gameID string
}

func newSession(parent context.Context, conn *websocket.Conn) *session {
	ctx, cancel := context.WithCancel(parent)

	return &session{
		conn:   conn,
		parent: parent,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (that *session) current() context.Context {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.ctx
}

func (that *session) restart() context.Context {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancel()
	that.ctx, that.cancel = context.WithCancel(that.parent)

	return that.ctx
}

func (that *session) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancel()
}

func (that *session) setGameID(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.gameID = id
}

func (that *session) currentGameID() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.gameID
}

func (that *session) send(action string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	_ = that.conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	if err = that.conn.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *session) sendError(action string, reason error) {
	_ = that.send(actionError, errorPayload{Action: action, Error: reason.Error()})
}

// sendOutcome pushes every recorded notification, then the resulting state.
func (that *session) sendOutcome(outcome *usecase.Outcome) error {
	for _, event := range outcome.Events {
		if err := that.send(event.Type, event); err != nil {
			return err
		}
	}

	return that.send(actionGameState, statePayload{Game: outcome.Game, Message: outcome.Message})
}
