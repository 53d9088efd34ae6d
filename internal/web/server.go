// Package web exposes the game over HTTP: a WebSocket endpoint that
// drives a full session and small JSON APIs for catalogs and saves.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/coder/websocket"

	"github.com/jinsei-game/jinsei/internal/game"
	"github.com/jinsei-game/jinsei/internal/save"
)

// Server hosts game sessions over WebSocket.
type Server struct {
	cfg     game.GameConfig
	catalog *game.Catalog
	store   *save.Store // nil disables persistence
	mux     *http.ServeMux
}

// NewServer creates a web server. The store may be nil, in which case
// games are not persisted.
func NewServer(cfg game.GameConfig, catalog *game.Catalog, store *save.Store) *Server {
	if catalog == nil {
		catalog = game.DefaultCatalog()
	}
	s := &Server{
		cfg:     cfg,
		catalog: catalog,
		store:   store,
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/saves", s.handleSaves)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleSaves(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "persistence is disabled", http.StatusNotFound)
		return
	}
	infos, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, "could not list saves", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(infos)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// Initial handshake from the browser.
	_, joinData, err := wsConn.Read(ctx)
	if err != nil {
		log.Printf("WebSocket read join: %v", err)
		return
	}
	var join ClientMessage
	if err := json.Unmarshal(joinData, &join); err != nil || join.Type != "join" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected join message")
		return
	}
	playerName := join.PlayerName
	if playerName == "" {
		playerName = "プレイヤー"
	}

	cfg := s.cfg
	cfg.Catalog = s.catalog
	cfg.Seed = join.Seed

	g, err := game.NewGame(cfg)
	if err != nil {
		ctrlErr, _ := json.Marshal(ServerMessage{Type: "error", Result: err.Error()})
		wsConn.Write(ctx, websocket.MessageText, ctrlErr)
		wsConn.Close(websocket.StatusInternalError, "bad config")
		return
	}

	ctrl := NewSocketController(wsConn)
	sess := game.NewSession(g, ctrl, playerName)
	if s.store != nil {
		sess.SaveFunc = func(ctx context.Context, snap *game.Snapshot) error {
			return s.store.Save(ctx, snap)
		}
	}

	if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("session %s: %v", g.ID(), err)
		wsConn.Close(websocket.StatusInternalError, "session failed")
		return
	}

	_ = ctrl.SendGameOver(ctx, g)
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}
