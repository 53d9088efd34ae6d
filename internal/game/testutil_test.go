package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/jinsei-game/jinsei/internal/log"
)

// ScriptedController is a Controller that follows a predefined script of
// decisions. Used in tests to deterministically drive the game.
type ScriptedController struct {
	t *testing.T

	// For AskCardSelection prompts
	selections []ScriptedSelection
	selPos     int

	// For AskChallengeAction prompts
	challengePicks []string
	challengePos   int

	// For AskInsuranceChoice prompts ("" means decline)
	insurancePicks []string
	insurancePos   int

	// For AskInsuranceRenewalChoice prompts
	renewals   []bool
	renewalPos int
}

type ScriptedSelection struct {
	// Choose cards by name
	Names []string
}

func NewScriptedController(t *testing.T) *ScriptedController {
	return &ScriptedController{t: t}
}

func (sc *ScriptedController) AddSelection(names ...string) *ScriptedController {
	sc.selections = append(sc.selections, ScriptedSelection{Names: names})
	return sc
}

func (sc *ScriptedController) AddChallengePick(name string) *ScriptedController {
	sc.challengePicks = append(sc.challengePicks, name)
	return sc
}

func (sc *ScriptedController) AddInsurancePick(name string) *ScriptedController {
	sc.insurancePicks = append(sc.insurancePicks, name)
	return sc
}

func (sc *ScriptedController) DeclineInsurance() *ScriptedController {
	sc.insurancePicks = append(sc.insurancePicks, "")
	return sc
}

func (sc *ScriptedController) AddRenewal(answer bool) *ScriptedController {
	sc.renewals = append(sc.renewals, answer)
	return sc
}

func (sc *ScriptedController) AskCardSelection(ctx context.Context, g *Game, prompt string, candidates []*Card, min, max int) ([]*Card, error) {
	if sc.selPos >= len(sc.selections) {
		// Default: choose the first min candidates
		if min > len(candidates) {
			min = len(candidates)
		}
		return candidates[:min], nil
	}

	choice := sc.selections[sc.selPos]
	sc.selPos++

	var result []*Card
	for _, name := range choice.Names {
		for _, c := range candidates {
			if c.Name == name {
				result = append(result, c)
				break
			}
		}
	}
	if len(result) < len(choice.Names) {
		return nil, fmt.Errorf("card selection: wanted %v but only found %d in candidates", choice.Names, len(result))
	}
	return result, nil
}

func (sc *ScriptedController) AskChallengeAction(ctx context.Context, g *Game, choices []*Card) (*Card, error) {
	if sc.challengePos >= len(sc.challengePicks) {
		return choices[0], nil
	}
	name := sc.challengePicks[sc.challengePos]
	sc.challengePos++

	for _, c := range choices {
		if c.Name == name {
			return c, nil
		}
	}
	return choices[0], nil
}

func (sc *ScriptedController) AskInsuranceChoice(ctx context.Context, g *Game, offers []*Card) (*Card, error) {
	if sc.insurancePos >= len(sc.insurancePicks) {
		return nil, nil
	}
	name := sc.insurancePicks[sc.insurancePos]
	sc.insurancePos++

	if name == "" {
		return nil, nil
	}
	for _, c := range offers {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("insurance pick: %q not in offers", name)
}

func (sc *ScriptedController) AskInsuranceRenewalChoice(ctx context.Context, g *Game, policy *Card) (bool, error) {
	if sc.renewalPos >= len(sc.renewals) {
		return false, nil
	}
	answer := sc.renewals[sc.renewalPos]
	sc.renewalPos++
	return answer, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

// --- Test catalog helpers ---

// testCatalog builds a minimal deterministic catalog. Every challenge is
// beatable with a single strong card or guaranteed to fail, so scripts
// control outcomes exactly.
func testCatalog() *Catalog {
	return &Catalog{
		// Listed bottom-up: with NoShuffle the strong cards draw first.
		life: []lifeSpec{
			{name: "弱いカード", power: 1, count: 10},
			{name: "強いカード", power: 10, count: 10},
		},
		challenges: []challengeSpec{
			{name: "簡単な仕事", power: 5},
			{name: "難しい仕事", power: 30},
			{name: "一か八か", power: 30, kind: ChallengeRiskReward, bonus: 4},
		},
		dreams: []*Card{
			NewDreamCard("マイホーム", "", 4),
		},
		characters: []*Card{
			newCharacterCard("堅実タイプ", "", 5),
		},
		plans: []insurancePlan{
			{name: "終身保険", kind: InsuranceWholeLife, cost: 3, coverage: 4},
			{name: "定期保険", kind: InsuranceTerm, cost: 2, coverage: 6},
		},
	}
}

// runSessionToCompletion runs a game with the scripted controller and
// returns the logger for inspection.
func runSessionToCompletion(t *testing.T, cfg GameConfig, ctrl *ScriptedController) (*Game, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	cfg.NoShuffle = true // deterministic tests
	if cfg.Catalog == nil {
		cfg.Catalog = testCatalog()
	}

	g, err := NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	sess := NewSession(g, ctrl, "テスト")
	if err := sess.Run(context.Background()); err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Session error: %v", err)
	}

	t.Logf("Result: %s (score %d)", g.Status(), g.GameStats().Score)
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))

	return g, logger
}

// startedGame builds a game and walks it through character and dream
// selection so command-level tests start at the draw phase.
func startedGame(t *testing.T, cfg GameConfig) *Game {
	t.Helper()
	cfg.NoShuffle = true
	if cfg.Catalog == nil {
		cfg.Catalog = testCatalog()
	}

	g, err := NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if err := g.Start("テスト"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := g.SelectCharacter(g.CardChoices()[0].ID); err != nil {
		t.Fatalf("SelectCharacter: %v", err)
	}
	if err := g.SelectDream(g.CardChoices()[0].ID); err != nil {
		t.Fatalf("SelectDream: %v", err)
	}
	return g
}

// cardNamed returns the first card with the given name, or fails.
func cardNamed(t *testing.T, cards []*Card, name string) *Card {
	t.Helper()
	for _, c := range cards {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("card %q not found", name)
	return nil
}
