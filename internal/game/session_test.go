package game

import (
	"context"
	"testing"

	"github.com/jinsei-game/jinsei/internal/log"
)

// easyCatalog produces a game every default script wins: one trivial
// challenge and strong life cards.
func easyCatalog() *Catalog {
	return &Catalog{
		life:       []lifeSpec{{name: "強いカード", power: 10, count: 30}},
		challenges: []challengeSpec{{name: "簡単な仕事", power: 1}},
		dreams:     []*Card{NewDreamCard("マイホーム", "", 4)},
		characters: []*Card{newCharacterCard("堅実タイプ", "", 5)},
		plans:      builtinPlans,
	}
}

// hopelessCatalog produces a game every default script loses.
func hopelessCatalog() *Catalog {
	return &Catalog{
		life:       []lifeSpec{{name: "弱いカード", power: 1, count: 30}},
		challenges: []challengeSpec{{name: "難しい仕事", power: 30}},
		dreams:     []*Card{NewDreamCard("マイホーム", "", 4)},
		characters: []*Card{newCharacterCard("夢追い人", "", 0)},
		plans:      builtinPlans,
	}
}

func TestSessionRunsToVictory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog = easyCatalog()

	g, logger := runSessionToCompletion(t, cfg, NewScriptedController(t))

	if g.Status() != StatusVictory {
		t.Fatalf("status = %s, want victory", g.Status())
	}
	if g.Turn() < cfg.VictoryTurn {
		t.Errorf("victory at turn %d, want >= %d", g.Turn(), cfg.VictoryTurn)
	}
	if g.Vitality() < cfg.VictoryVitality {
		t.Errorf("victory with vitality %d, want >= %d", g.Vitality(), cfg.VictoryVitality)
	}
	if len(logger.EventsOfType(log.EventVictory)) != 1 {
		t.Error("expected exactly one victory event")
	}

	stats := g.GameStats()
	if stats.TotalChallenges != stats.SuccessfulChallenges+stats.FailedChallenges {
		t.Errorf("stats identity broken: %+v", stats)
	}
	if stats.FailedChallenges != 0 {
		t.Errorf("FailedChallenges = %d, want 0", stats.FailedChallenges)
	}
}

func TestSessionRunsToGameOver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog = hopelessCatalog()
	cfg.StartingVitality = 10
	cfg.MaxVitality = 10

	g, logger := runSessionToCompletion(t, cfg, NewScriptedController(t))

	if g.Status() != StatusGameOver {
		t.Fatalf("status = %s, want game_over", g.Status())
	}
	if g.Vitality() != 0 {
		t.Errorf("vitality = %d, want 0", g.Vitality())
	}
	if len(logger.EventsOfType(log.EventGameOver)) != 1 {
		t.Error("expected exactly one game over event")
	}
}

func TestSessionSignsAndConsumesInsurance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog = testCatalog()
	cfg.MaxTurns = 4

	ctrl := NewScriptedController(t).
		// Turn 1: win the easy challenge, then sign term insurance.
		AddChallengePick("簡単な仕事").
		AddSelection("強いカード").
		AddInsurancePick("定期保険").
		// Turns 2-3: fail on purpose so the coverage is consumed twice.
		AddChallengePick("難しい仕事").
		AddSelection("強いカード").
		AddChallengePick("難しい仕事").
		AddSelection("強いカード").
		// Renewal comes due after the second failure; decline it.
		AddRenewal(false)

	g, logger := runSessionToCompletion(t, cfg, ctrl)

	consumed := logger.EventsOfType(log.EventInsuranceConsumed)
	if len(consumed) != 2 {
		t.Fatalf("consumption events = %d, want 2", len(consumed))
	}
	if len(logger.EventsOfType(log.EventInsuranceExpired)) != 1 {
		t.Error("expected the declined policy to expire")
	}
	if len(g.Insurance()) != 0 {
		t.Errorf("policies = %d at end, want 0", len(g.Insurance()))
	}
}

func TestSessionSavesEveryTurn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog = easyCatalog()
	cfg.MaxTurns = 5
	cfg.VictoryTurn = 4
	cfg.NoShuffle = true
	cfg.Logger = log.NewMemoryLogger()

	g, err := NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	var snaps []*Snapshot
	sess := NewSession(g, NewScriptedController(t), "テスト")
	sess.SaveFunc = func(ctx context.Context, s *Snapshot) error {
		snaps = append(snaps, s)
		return nil
	}

	if err := sess.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(snaps) < 2 {
		t.Fatalf("saves = %d, want at least one per turn plus the final one", len(snaps))
	}
	last := snaps[len(snaps)-1]
	if last.Status != g.Status().String() {
		t.Errorf("final snapshot status = %q, want %q", last.Status, g.Status())
	}
	if last.GameID != g.ID() {
		t.Errorf("snapshot gameId = %q, want %q", last.GameID, g.ID())
	}
}

func TestSessionResumesFromSnapshot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog = easyCatalog()
	cfg.NoShuffle = true
	cfg.Logger = log.NewMemoryLogger()

	g := startedGame(t, cfg)
	if err := g.DrawCards(); err != nil {
		t.Fatalf("DrawCards: %v", err)
	}

	// Freeze mid-game, rebuild, and let a session finish the run.
	snap := g.Snapshot()
	restored := FromSnapshot(snap, cfg)

	if restored.Turn() != g.Turn() || restored.Vitality() != g.Vitality() {
		t.Fatalf("restore mismatch: turn %d/%d vitality %d/%d",
			restored.Turn(), g.Turn(), restored.Vitality(), g.Vitality())
	}

	sess := NewSession(restored, NewScriptedController(t), snap.PlayerName)
	if err := sess.Run(context.Background()); err != nil {
		t.Fatalf("Run after restore: %v", err)
	}
	if !restored.Finished() {
		t.Error("restored session should run to completion")
	}
}

func TestSessionOutcomesStayInBounds(t *testing.T) {
	// Full games with shuffled decks and the built-in catalog. Whatever
	// the outcome, the core invariants must hold at the end.
	for seed := int64(1); seed <= 5; seed++ {
		cfg := DefaultConfig()
		cfg.Seed = seed
		cfg.Logger = log.NewMemoryLogger()

		g, err := NewGame(cfg)
		if err != nil {
			t.Fatalf("seed %d: NewGame: %v", seed, err)
		}
		sess := NewSession(g, NewScriptedController(t), "テスト")
		if err := sess.Run(context.Background()); err != nil {
			t.Fatalf("seed %d: Run: %v", seed, err)
		}

		if !g.Finished() {
			t.Fatalf("seed %d: game did not reach a terminal status", seed)
		}
		if g.Vitality() < 0 || g.Vitality() > g.MaxVitality() {
			t.Errorf("seed %d: vitality %d out of [0, %d]", seed, g.Vitality(), g.MaxVitality())
		}
		if g.InsuranceBurden() > g.MaxInsuranceBurden() {
			t.Errorf("seed %d: burden %d above cap %d", seed, g.InsuranceBurden(), g.MaxInsuranceBurden())
		}
		if res := ValidateGameState(g); !res.IsValid {
			t.Errorf("seed %d: final state invalid: %v", seed, res.Errors)
		}

		stats := g.GameStats()
		if stats.TotalChallenges != stats.SuccessfulChallenges+stats.FailedChallenges {
			t.Errorf("seed %d: stats identity broken: %+v", seed, stats)
		}
	}
}
