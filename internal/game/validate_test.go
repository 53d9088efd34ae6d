package game

import (
	"strings"
	"testing"
)

func hasMessage(msgs []string, want string) bool {
	for _, m := range msgs {
		if m == want {
			return true
		}
	}
	return false
}

func TestValidateGameConfigErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartingVitality = 0
	cfg.MaxHandSize = 0
	cfg.MaxTurns = 0

	res := ValidateGameConfig(cfg)
	if res.IsValid {
		t.Fatal("expected invalid config")
	}
	for _, want := range []string{
		"初期体力は1以上である必要があります",
		"手札の上限は1以上である必要があります",
		"最大ターン数は1以上である必要があります",
	} {
		if !hasMessage(res.Errors, want) {
			t.Errorf("Errors = %v, want to include %q", res.Errors, want)
		}
	}
}

func TestValidateGameConfigWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartingVitality = 5000
	cfg.MaxVitality = 5000
	cfg.MaxHandSize = 30

	res := ValidateGameConfig(cfg)
	if !res.IsValid {
		t.Fatalf("warnings must not invalidate the config: %v", res.Errors)
	}
	for _, want := range []string{
		"初期体力が極端に大きい値です",
		"手札の上限が極端に大きい値です",
	} {
		if !hasMessage(res.Warnings, want) {
			t.Errorf("Warnings = %v, want to include %q", res.Warnings, want)
		}
	}
}

func TestValidateGameConfigStageThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FulfillmentTurn = cfg.MiddleAgeTurn // stages must be strictly ordered

	res := ValidateGameConfig(cfg)
	if res.IsValid {
		t.Fatal("expected invalid config")
	}
	if !hasMessage(res.Errors, "ステージの閾値が不正です") {
		t.Errorf("Errors = %v", res.Errors)
	}
}

func TestValidateGameStateCleanGame(t *testing.T) {
	g := startedGame(t, DefaultConfig())
	if err := g.DrawCards(); err != nil {
		t.Fatalf("DrawCards: %v", err)
	}

	res := ValidateGameState(g)
	if !res.IsValid {
		t.Errorf("fresh game should validate, got errors: %v", res.Errors)
	}
}

func TestValidateGameStateDetectsCorruption(t *testing.T) {
	g := startedGame(t, DefaultConfig())

	// Corrupt internals directly; the validator must catch each breach.
	g.vitality = g.maxVitality + 10
	g.insuranceBurden = 7 // no policies held
	g.stats.TotalChallenges = 5

	res := ValidateGameState(g)
	if res.IsValid {
		t.Fatal("expected invalid state")
	}
	for _, want := range []string{
		"体力が最大体力を超えています",
		"保険負担が保険料の合計と一致していません",
		"チャレンジ回数の集計が一致していません",
	} {
		if !hasMessage(res.Errors, want) {
			t.Errorf("Errors = %v, want to include %q", res.Errors, want)
		}
	}
}

func TestValidateGameStateDuplicateHandIDs(t *testing.T) {
	g := startedGame(t, DefaultConfig())
	c := NewLifeCard("A", "", 1, 0)
	g.hand = []*Card{c, c}

	res := ValidateGameState(g)
	if res.IsValid {
		t.Fatal("expected invalid state")
	}
	found := false
	for _, e := range res.Errors {
		if strings.HasPrefix(e, "カードIDが重複しています: ") {
			found = true
		}
	}
	if !found {
		t.Errorf("Errors = %v, want a duplicate-ID message", res.Errors)
	}
}

func TestValidateInsuranceRenewal(t *testing.T) {
	policy := NewInsuranceCard("定期保険", "", InsuranceTerm, 10, 6, 2)

	res := ValidateInsuranceRenewal(policy, 100)
	if !res.IsValid || len(res.Warnings) != 0 {
		t.Errorf("affordable renewal: %+v", res)
	}

	res = ValidateInsuranceRenewal(policy, 15)
	if !hasMessage(res.Warnings, "更新コストが現在の体力に対して高すぎます") {
		t.Errorf("Warnings = %v", res.Warnings)
	}

	res = ValidateInsuranceRenewal(policy, 5)
	if !hasMessage(res.Warnings, "更新コストが現在の体力を上回っています") {
		t.Errorf("Warnings = %v", res.Warnings)
	}

	whole := NewInsuranceCard("終身保険", "", InsuranceWholeLife, 3, 4, 0)
	res = ValidateInsuranceRenewal(whole, 100)
	if res.IsValid {
		t.Error("whole-life policies must not be renewable")
	}

	res = ValidateInsuranceRenewal(nil, 100)
	if res.IsValid {
		t.Error("nil policy must not validate")
	}
}
