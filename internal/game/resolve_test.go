package game

import (
	"strings"
	"testing"
)

func TestResolveChallengeSuccess(t *testing.T) {
	cfg := DefaultConfig()
	challenge := NewChallengeCard("就職活動", "", 5)
	selected := []*Card{
		NewLifeCard("資格の勉強", "", 3, 0),
		NewLifeCard("朝のランニング", "", 2, 0),
	}

	result := resolveChallenge(cfg, challenge, selected, 0)

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.PlayerPower != 5 || result.ChallengePower != 5 {
		t.Errorf("power = %d vs %d, want 5 vs 5", result.PlayerPower, result.ChallengePower)
	}
	if result.VitalityChange != cfg.SuccessVitalityGain {
		t.Errorf("VitalityChange = %d, want %d", result.VitalityChange, cfg.SuccessVitalityGain)
	}
	if len(result.Rewards) != 1 {
		t.Fatalf("Rewards = %d, want 1", len(result.Rewards))
	}
	reward := result.Rewards[0]
	if reward.Kind != KindLife {
		t.Errorf("reward kind = %s, want life", reward.Kind)
	}
	if reward.Power != 1+challenge.Power/3 {
		t.Errorf("reward power = %d, want %d", reward.Power, 1+challenge.Power/3)
	}
	if !strings.Contains(reward.Name, challenge.Name) {
		t.Errorf("reward name %q should mention the challenge", reward.Name)
	}
}

func TestResolveChallengeFailureDamage(t *testing.T) {
	cfg := DefaultConfig()
	challenge := NewChallengeCard("転職", "", 10)
	selected := []*Card{NewLifeCard("弱いカード", "", 3, 0)}

	result := resolveChallenge(cfg, challenge, selected, 0)

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.VitalityChange != -7 {
		t.Errorf("VitalityChange = %d, want -7", result.VitalityChange)
	}
	if len(result.Rewards) != 0 {
		t.Errorf("failure should grant no rewards, got %d", len(result.Rewards))
	}
}

func TestResolveChallengeCoverageMitigation(t *testing.T) {
	cfg := DefaultConfig()
	challenge := NewChallengeCard("大病", "", 10)
	selected := []*Card{NewLifeCard("弱いカード", "", 3, 0)}

	// Coverage joins player power: damage shrinks from 7 to 3.
	result := resolveChallenge(cfg, challenge, selected, 4)
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.VitalityChange != -3 {
		t.Errorf("VitalityChange = %d, want -3", result.VitalityChange)
	}

	// Coverage above the shortfall turns failure into success, never
	// into a vitality gain from the damage formula.
	result = resolveChallenge(cfg, challenge, selected, 20)
	if !result.Success {
		t.Fatal("expected success with large coverage")
	}
	if result.VitalityChange != cfg.SuccessVitalityGain {
		t.Errorf("VitalityChange = %d, want %d", result.VitalityChange, cfg.SuccessVitalityGain)
	}
}

func TestResolveRiskRewardChallenge(t *testing.T) {
	cfg := DefaultConfig()
	challenge := NewRiskRewardChallenge("起業の誘い", "", 8, 4)

	// Success: base gain plus the bonus.
	result := resolveChallenge(cfg, challenge, []*Card{NewLifeCard("強", "", 8, 0)}, 0)
	if !result.Success {
		t.Fatal("expected success")
	}
	if result.VitalityChange != cfg.SuccessVitalityGain+4 {
		t.Errorf("VitalityChange = %d, want %d", result.VitalityChange, cfg.SuccessVitalityGain+4)
	}

	// Failure: shortfall doubled.
	result = resolveChallenge(cfg, challenge, []*Card{NewLifeCard("弱", "", 5, 0)}, 0)
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.VitalityChange != -6 {
		t.Errorf("VitalityChange = %d, want -6", result.VitalityChange)
	}
}

func TestValidateCardSelection(t *testing.T) {
	a := NewLifeCard("A", "", 1, 0)
	b := NewLifeCard("B", "", 2, 0)
	outsider := NewLifeCard("C", "", 3, 0)
	pool := []*Card{a, b}

	tests := []struct {
		name     string
		selected []*Card
		min, max int
		want     string
	}{
		{"empty below min", nil, 1, 3, "最低1枚のカードを選択してください"},
		{"above max", []*Card{a, b, outsider, a}, 1, 3, "選択できるカードは最大3枚です"},
		{"duplicate", []*Card{a, a}, 1, 3, "カード「A」が重複して選択されています"},
		{"not in pool", []*Card{outsider}, 1, 3, "カード「C」は選択できません"},
		{"nil card", []*Card{nil}, 1, 3, "不正なカードが選択されています"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := ValidateCardSelection(tt.selected, pool, tt.min, tt.max)
			if len(problems) == 0 {
				t.Fatal("expected problems, got none")
			}
			found := false
			for _, p := range problems {
				if p == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("problems = %v, want to include %q", problems, tt.want)
			}
		})
	}

	if problems := ValidateCardSelection([]*Card{a, b}, pool, 1, 3); len(problems) != 0 {
		t.Errorf("valid selection produced problems: %v", problems)
	}
}
