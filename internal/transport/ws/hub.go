// Package ws serves one analysis session per WebSocket connection: a
// client posts a board plus move-budget parameters, the hub runs
// usecase.Service.Analyze for it and streams back the outcome. Grounded
// on the connection-registry-plus-per-connection-goroutine pattern
// used by the analytics dashboard's WebSocket handler in the pack
// (sandeepkv93-concurrency-in-golang), adapted from that example's
// broadcast-fan-out shape down to this package's simpler
// request/response-per-connection shape — there is no broadcast here,
// since an analysis result is only relevant to the connection that
// asked for it.
package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"nonet/internal/domain"
	"nonet/internal/usecase"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 1 << 16
)

// Hub upgrades incoming requests to WebSocket connections and keeps a
// registry of the open ones by connection ID; Hub itself never closes
// registered connections on server shutdown.
type Hub struct {
	UC       *usecase.Service
	Logger   zerolog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[string]*websocket.Conn
}

// New returns a Hub backed by uc, logging through logger.
func New(uc *usecase.Service, logger zerolog.Logger) *Hub {
	return &Hub{
		UC:     uc,
		Logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: make(map[string]*websocket.Conn),
	}
}

// ServeHTTP upgrades the request and runs the connection until it
// closes or the server shuts down.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	id := uuid.NewString()
	h.register(id, conn)
	defer h.unregister(id, conn)

	log := h.Logger.With().Str("conn_id", id).Logger()
	log.Info().Msg("connection opened")
	defer log.Info().Msg("connection closed")

	if err := h.serve(r.Context(), conn, log); err != nil {
		log.Debug().Err(err).Msg("connection ended")
	}
}

func (h *Hub) register(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = conn
}

func (h *Hub) unregister(id string, conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, id)
	h.mu.Unlock()
	_ = conn.Close()
}

// analyzeRequest is the JSON envelope a client sends per analysis ask.
type analyzeRequest struct {
	Board           [9][9]uint8 `json:"board"`
	MaxCompletions  int         `json:"maxCompletions,omitempty"`
	MaxWinningTurns int         `json:"maxWinningTurns,omitempty"`
}

type analyzeMessage struct {
	Type    string `json:"type"`
	Outcome string `json:"outcome,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Hub) serve(ctx context.Context, conn *websocket.Conn, log zerolog.Logger) error {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return h.pingLoop(gctx, conn) })
	g.Go(func() error { return h.readLoop(conn, log) })
	return g.Wait()
}

func (h *Hub) pingLoop(ctx context.Context, conn *websocket.Conn) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// WriteControl (unlike WriteMessage/WriteJSON) is safe to call
			// concurrently with the readLoop goroutine's response writes.
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		}
	}
}

func (h *Hub) readLoop(conn *websocket.Conn, log zerolog.Logger) error {
	for {
		var req analyzeRequest
		if err := conn.ReadJSON(&req); err != nil {
			return err
		}
		resp := h.handleAnalyze(conn, req, log)
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(resp); err != nil {
			return err
		}
	}
}

func (h *Hub) handleAnalyze(conn *websocket.Conn, req analyzeRequest, log zerolog.Logger) analyzeMessage {
	maxCompletions := req.MaxCompletions
	if maxCompletions <= 0 {
		maxCompletions = 10000
	}
	maxWinningTurns := req.MaxWinningTurns
	if maxWinningTurns <= 0 {
		maxWinningTurns = 9
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, _, err := h.UC.Analyze(ctx, domain.Board{Values: req.Board}, maxCompletions, maxWinningTurns, 50_000_000)
	if err != nil {
		log.Warn().Err(err).Msg("analyze failed")
		return analyzeMessage{Type: "error", Error: err.Error()}
	}
	msg := analyzeMessage{Type: "result"}
	if res.Outcome != nil {
		msg.Outcome = res.Outcome.String()
	}
	return msg
}
