package web

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/coder/websocket"

	"github.com/jinsei-game/jinsei/internal/game"
	"github.com/jinsei-game/jinsei/internal/log"
)

// SocketController implements game.Controller over a WebSocket
// connection. One connection drives one game.
type SocketController struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewSocketController creates a controller for the given connection.
func NewSocketController(conn *websocket.Conn) *SocketController {
	return &SocketController{conn: conn}
}

func cardView(i int, c *game.Card) CardView {
	return CardView{
		Index:       i,
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Kind:        c.Kind.String(),
		Power:       c.Power,
		Cost:        c.Cost,
		Coverage:    c.Coverage,
		UsageCount:  c.UsageCount,
	}
}

func cardViews(cards []*game.Card) []CardView {
	views := make([]CardView, 0, len(cards))
	for i, c := range cards {
		views = append(views, cardView(i, c))
	}
	return views
}

// BuildStateView creates the client-visible state projection.
func BuildStateView(g *game.Game) *StateView {
	return &StateView{
		Turn:            g.Turn(),
		Stage:           g.Stage().String(),
		Phase:           g.Phase().String(),
		Status:          g.Status().String(),
		Vitality:        g.Vitality(),
		MaxVitality:     g.MaxVitality(),
		InsuranceBurden: g.InsuranceBurden(),
		Hand:            cardViews(g.Hand()),
		Insurance:       cardViews(g.Insurance()),
		DeckCount:       g.DeckCount(),
		DiscardCount:    g.DiscardCount(),
	}
}

// send writes a server message. Must be called with mu held.
func (sc *SocketController) send(ctx context.Context, msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return sc.conn.Write(ctx, websocket.MessageText, data)
}

// recv reads a client message. Must be called with mu held.
func (sc *SocketController) recv(ctx context.Context) (ClientMessage, error) {
	var msg ClientMessage
	_, data, err := sc.conn.Read(ctx)
	if err != nil {
		return msg, err
	}
	err = json.Unmarshal(data, &msg)
	return msg, err
}

// AskCardSelection implements game.Controller.
func (sc *SocketController) AskCardSelection(ctx context.Context, g *game.Game, prompt string, candidates []*game.Card, min, max int) ([]*game.Card, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	msg := ServerMessage{
		Type:       "choose_cards",
		Prompt:     prompt,
		Candidates: cardViews(candidates),
		Min:        min,
		Max:        max,
		State:      BuildStateView(g),
	}
	if err := sc.send(ctx, msg); err != nil {
		return nil, fmt.Errorf("send choose_cards: %w", err)
	}

	resp, err := sc.recv(ctx)
	if err != nil {
		return nil, fmt.Errorf("recv cards: %w", err)
	}

	var result []*game.Card
	for _, idx := range resp.Indices {
		if idx >= 0 && idx < len(candidates) {
			result = append(result, candidates[idx])
		}
	}
	return result, nil
}

// AskChallengeAction implements game.Controller.
func (sc *SocketController) AskChallengeAction(ctx context.Context, g *game.Game, choices []*game.Card) (*game.Card, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	msg := ServerMessage{
		Type:       "choose_challenge",
		Prompt:     "挑戦するチャレンジを選択してください",
		Candidates: cardViews(choices),
		State:      BuildStateView(g),
	}
	if err := sc.send(ctx, msg); err != nil {
		return nil, fmt.Errorf("send choose_challenge: %w", err)
	}

	resp, err := sc.recv(ctx)
	if err != nil {
		return nil, fmt.Errorf("recv challenge: %w", err)
	}

	if resp.Index < 0 || resp.Index >= len(choices) {
		return choices[0], nil // fallback to first choice
	}
	return choices[resp.Index], nil
}

// AskInsuranceChoice implements game.Controller.
func (sc *SocketController) AskInsuranceChoice(ctx context.Context, g *game.Game, offers []*game.Card) (*game.Card, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	msg := ServerMessage{
		Type:       "choose_insurance",
		Prompt:     "保険に加入しますか",
		Candidates: cardViews(offers),
		State:      BuildStateView(g),
	}
	if err := sc.send(ctx, msg); err != nil {
		return nil, fmt.Errorf("send choose_insurance: %w", err)
	}

	resp, err := sc.recv(ctx)
	if err != nil {
		return nil, fmt.Errorf("recv insurance: %w", err)
	}

	if resp.Decline || resp.Index < 0 || resp.Index >= len(offers) {
		return nil, nil
	}
	return offers[resp.Index], nil
}

// AskInsuranceRenewalChoice implements game.Controller.
func (sc *SocketController) AskInsuranceRenewalChoice(ctx context.Context, g *game.Game, policy *game.Card) (bool, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	view := cardView(0, policy)
	msg := ServerMessage{
		Type:   "choose_renewal",
		Prompt: fmt.Sprintf("「%s」を更新しますか (コスト%d)", policy.Name, policy.Cost),
		Policy: &view,
		State:  BuildStateView(g),
	}
	if err := sc.send(ctx, msg); err != nil {
		return false, fmt.Errorf("send choose_renewal: %w", err)
	}

	resp, err := sc.recv(ctx)
	if err != nil {
		return false, fmt.Errorf("recv renewal: %w", err)
	}
	return resp.Answer, nil
}

// Notify implements game.Controller.
func (sc *SocketController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	msg := ServerMessage{
		Type: "notify",
		Event: &EventView{
			Turn:    event.Turn,
			Phase:   event.Phase,
			Type:    event.Type.String(),
			Card:    event.Card,
			Details: event.Details,
		},
	}
	return sc.send(ctx, msg)
}

// SendGameOver sends the final result to the client.
func (sc *SocketController) SendGameOver(ctx context.Context, g *game.Game) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	stats := g.GameStats()
	result := fmt.Sprintf("%s: スコア%d", g.Status(), stats.Score)
	return sc.send(ctx, ServerMessage{
		Type:   "game_over",
		Result: result,
		State:  BuildStateView(g),
	})
}
