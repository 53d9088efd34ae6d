// Package mcp exposes the game as an MCP stdio server so an agent can
// play it tool call by tool call.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jinsei-game/jinsei/internal/game"
	"github.com/jinsei-game/jinsei/internal/save"
	"github.com/jinsei-game/jinsei/internal/web"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionChooseCards     DecisionType = "choose_cards"
	DecisionChooseChallenge DecisionType = "choose_challenge"
	DecisionChooseInsurance DecisionType = "choose_insurance"
	DecisionChooseRenewal   DecisionType = "choose_renewal"
	DecisionGameOver        DecisionType = "game_over"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type       DecisionType   `json:"type"`
	State      *web.StateView `json:"state"`
	Prompt     string         `json:"prompt,omitempty"`
	Candidates []web.CardView `json:"candidates,omitempty"`
	Policy     *web.CardView  `json:"policy,omitempty"`
	Min        int            `json:"min,omitempty"`
	Max        int            `json:"max,omitempty"`
}

// Response types sent back from MCP tools to the controller.

type CardsResponse struct {
	Indices []int
}

type PickResponse struct {
	Index   int
	Decline bool
}

type YesNoResponse struct {
	Answer bool
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []web.EventView  `json:"events"`
	State    *web.StateView   `json:"state,omitempty"`
	Pending  *PendingDecision `json:"pending,omitempty"`
	GameOver bool             `json:"game_over"`
	Result   string           `json:"result,omitempty"`
	Score    int              `json:"score,omitempty"`
}

// GameSession holds the state of a single MCP game session.
type GameSession struct {
	game *game.Game
	ctrl *Controller

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []web.EventView
	gameOver bool
	result   string
	score    int
}

// NewGameSession creates a session and starts the game loop in a
// goroutine. It returns immediately; the first pending decision arrives
// via waitForPending.
func NewGameSession(cfg game.GameConfig, store *save.Store, playerName string) (*GameSession, error) {
	g, err := game.NewGame(cfg)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	sess := &GameSession{
		game:      g,
		pendingCh: make(chan *PendingDecision, 1),
	}
	sess.ctrl = NewController(sess)

	runner := game.NewSession(g, sess.ctrl, playerName)
	if store != nil {
		runner.SaveFunc = func(ctx context.Context, snap *game.Snapshot) error {
			return store.Save(ctx, snap)
		}
	}

	go func() {
		err := runner.Run(context.Background())

		result := g.Status().String()
		if err != nil {
			result = fmt.Sprintf("error: %v", err)
		}
		stats := g.GameStats()

		sess.mu.Lock()
		sess.gameOver = true
		sess.result = result
		sess.score = stats.Score
		sess.mu.Unlock()

		sess.pendingCh <- &PendingDecision{
			Type:  DecisionGameOver,
			State: web.BuildStateView(g),
		}
	}()

	return sess, nil
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev web.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []web.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// waitForPending blocks until the next decision arrives from the game
// engine, then builds a ToolResponse with accumulated events + the
// pending decision.
func (s *GameSession) waitForPending() *ToolResponse {
	pending := <-s.pendingCh
	s.currentPending = pending

	resp := &ToolResponse{
		Events: s.drainEvents(),
		State:  pending.State,
	}
	if resp.Events == nil {
		resp.Events = []web.EventView{}
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Result = s.result
		resp.Score = s.score
		s.mu.Unlock()
		return resp
	}

	resp.Pending = pending
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
