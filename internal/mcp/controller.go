package mcp

import (
	"context"

	"github.com/jinsei-game/jinsei/internal/game"
	"github.com/jinsei-game/jinsei/internal/log"
	"github.com/jinsei-game/jinsei/internal/web"
)

// Controller implements game.Controller by sending decisions to the MCP
// session's pending channel and blocking on a response channel.
type Controller struct {
	session    *GameSession
	responseCh chan any
}

// NewController creates a controller bound to the given session.
func NewController(session *GameSession) *Controller {
	return &Controller{
		session:    session,
		responseCh: make(chan any),
	}
}

func cardView(i int, c *game.Card) web.CardView {
	return web.CardView{
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

func cardViews(cards []*game.Card) []web.CardView {
	views := make([]web.CardView, 0, len(cards))
	for i, c := range cards {
		views = append(views, cardView(i, c))
	}
	return views
}

// AskCardSelection implements game.Controller.
func (c *Controller) AskCardSelection(ctx context.Context, g *game.Game, prompt string, candidates []*game.Card, min, max int) ([]*game.Card, error) {
	c.session.pendingCh <- &PendingDecision{
		Type:       DecisionChooseCards,
		State:      web.BuildStateView(g),
		Prompt:     prompt,
		Candidates: cardViews(candidates),
		Min:        min,
		Max:        max,
	}

	resp := <-c.responseCh
	cr := resp.(CardsResponse)

	var result []*game.Card
	for _, idx := range cr.Indices {
		if idx >= 0 && idx < len(candidates) {
			result = append(result, candidates[idx])
		}
	}
	return result, nil
}

// AskChallengeAction implements game.Controller.
func (c *Controller) AskChallengeAction(ctx context.Context, g *game.Game, choices []*game.Card) (*game.Card, error) {
	c.session.pendingCh <- &PendingDecision{
		Type:       DecisionChooseChallenge,
		State:      web.BuildStateView(g),
		Candidates: cardViews(choices),
	}

	resp := <-c.responseCh
	pr := resp.(PickResponse)

	if pr.Index < 0 || pr.Index >= len(choices) {
		return choices[0], nil
	}
	return choices[pr.Index], nil
}

// AskInsuranceChoice implements game.Controller.
func (c *Controller) AskInsuranceChoice(ctx context.Context, g *game.Game, offers []*game.Card) (*game.Card, error) {
	c.session.pendingCh <- &PendingDecision{
		Type:       DecisionChooseInsurance,
		State:      web.BuildStateView(g),
		Candidates: cardViews(offers),
	}

	resp := <-c.responseCh
	pr := resp.(PickResponse)

	if pr.Decline || pr.Index < 0 || pr.Index >= len(offers) {
		return nil, nil
	}
	return offers[pr.Index], nil
}

// AskInsuranceRenewalChoice implements game.Controller.
func (c *Controller) AskInsuranceRenewalChoice(ctx context.Context, g *game.Game, policy *game.Card) (bool, error) {
	view := cardView(0, policy)
	c.session.pendingCh <- &PendingDecision{
		Type:   DecisionChooseRenewal,
		State:  web.BuildStateView(g),
		Policy: &view,
	}

	resp := <-c.responseCh
	yr := resp.(YesNoResponse)
	return yr.Answer, nil
}

// Notify implements game.Controller.
func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(web.EventView{
		Turn:    event.Turn,
		Phase:   event.Phase,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	})
	return nil
}
