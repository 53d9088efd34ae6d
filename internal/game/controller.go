package game

import (
	"context"

	"github.com/jinsei-game/jinsei/internal/log"
)

// Controller is the renderer port. CLI, WebSocket and MCP front ends
// implement it; the session awaits these calls before its phase
// transitions proceed. The engine itself knows nothing about rendering.
type Controller interface {
	// AskCardSelection asks the player to select cards from a list
	// (character, dream and hand selections).
	AskCardSelection(ctx context.Context, g *Game, prompt string, candidates []*Card, min, max int) ([]*Card, error)

	// AskChallengeAction asks the player which challenge to attempt
	// from the offer set.
	AskChallengeAction(ctx context.Context, g *Game, choices []*Card) (*Card, error)

	// AskInsuranceChoice asks the player to sign one of the offered
	// policies, or nil to decline.
	AskInsuranceChoice(ctx context.Context, g *Game, offers []*Card) (*Card, error)

	// AskInsuranceRenewalChoice asks whether to renew an expiring term
	// policy.
	AskInsuranceRenewalChoice(ctx context.Context, g *Game, policy *Card) (bool, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}
