package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinsei-game/jinsei/internal/log"
)

// Session drives a game from start to finish, asking the controller for
// every decision. It owns the pacing: the game itself never blocks.
type Session struct {
	game       *Game
	ctrl       Controller
	playerName string

	// SaveFunc, when set, is called with a snapshot at the end of every
	// turn and once more when the game finishes. Save failures do not
	// stop the session.
	SaveFunc func(ctx context.Context, s *Snapshot) error
}

// NewSession wraps a game and a controller into a runnable session.
func NewSession(g *Game, ctrl Controller, playerName string) *Session {
	return &Session{game: g, ctrl: ctrl, playerName: playerName}
}

// Game returns the underlying game.
func (s *Session) Game() *Game { return s.game }

// Run plays the game until a terminal status is reached or ctx is
// canceled. It can resume a game restored from a snapshot: dispatch is
// purely on the current phase.
func (s *Session) Run(ctx context.Context) error {
	g := s.game

	g.OnEvent(func(e log.GameEvent) {
		_ = s.ctrl.Notify(ctx, e)
	})
	defer g.OnEvent(nil)

	for !g.Finished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.step(ctx); err != nil {
			return err
		}
	}

	s.save(ctx)
	return nil
}

// step advances the game by one phase transition.
func (s *Session) step(ctx context.Context) error {
	g := s.game

	switch g.Phase() {
	case PhaseNone:
		return g.Start(s.playerName)

	case PhaseCharacterSelection:
		card, err := s.askOne(ctx, "キャラクターを選択してください", g.CardChoices())
		if err != nil {
			return err
		}
		return g.SelectCharacter(card.ID)

	case PhaseDreamSelection:
		card, err := s.askOne(ctx, "目指す夢を選択してください", g.CardChoices())
		if err != nil {
			return err
		}
		return g.SelectDream(card.ID)

	case PhaseDraw:
		return g.DrawCards()

	case PhaseChallengeChoice:
		if len(g.CardChoices()) == 0 {
			if err := g.StartChallengePhase(); err != nil {
				return err
			}
		}
		choice, err := s.ctrl.AskChallengeAction(ctx, g, g.CardChoices())
		if err != nil {
			return err
		}
		return g.StartChallenge(choice.ID)

	case PhaseChallenge:
		return s.playChallenge(ctx)

	case PhaseInsuranceTypeSelection:
		pick, err := s.ctrl.AskInsuranceChoice(ctx, g, g.CardChoices())
		if err != nil {
			return err
		}
		if pick == nil {
			return g.DeclineInsurance()
		}
		return g.SelectInsurance(pick.ID)

	case PhaseResolution:
		for _, policy := range g.DueRenewals() {
			renew, err := s.ctrl.AskInsuranceRenewalChoice(ctx, g, policy)
			if err != nil {
				return err
			}
			if err := g.RenewInsurance(policy.ID, renew); err != nil {
				return err
			}
		}
		s.save(ctx)
		return g.NextTurn()

	default:
		return fmt.Errorf("session: unexpected phase %s", g.Phase())
	}
}

// playChallenge asks for a hand selection and resolves it, re-asking
// while the selection is rejected.
func (s *Session) playChallenge(ctx context.Context) error {
	g := s.game
	cfg := g.Config()

	prompt := "チャレンジに使うカードを選択してください"
	if c := g.CurrentChallenge(); c != nil {
		prompt = fmt.Sprintf("「%s」(パワー%d) に使うカードを選択してください", c.Name, c.Power)
	}

	for {
		picked, err := s.ctrl.AskCardSelection(ctx, g, prompt, g.Hand(), cfg.MinSelection, cfg.MaxSelection)
		if err != nil {
			return err
		}

		for _, c := range g.SelectedCards() {
			if err := g.ToggleCardSelection(c.ID); err != nil {
				return err
			}
		}
		for _, c := range picked {
			if err := g.ToggleCardSelection(c.ID); err != nil {
				return err
			}
		}

		_, err = g.ResolveChallenge()
		var selErr *SelectionError
		if errors.As(err, &selErr) {
			continue
		}
		return err
	}
}

// askOne asks for exactly one card from the candidates.
func (s *Session) askOne(ctx context.Context, prompt string, candidates []*Card) (*Card, error) {
	picked, err := s.ctrl.AskCardSelection(ctx, s.game, prompt, candidates, 1, 1)
	if err != nil {
		return nil, err
	}
	if len(picked) != 1 {
		return nil, fmt.Errorf("session: expected one card, got %d", len(picked))
	}
	return picked[0], nil
}

func (s *Session) save(ctx context.Context) {
	if s.SaveFunc == nil {
		return
	}
	_ = s.SaveFunc(ctx, s.game.Snapshot())
}
