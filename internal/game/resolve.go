package game

import "fmt"

// resolveChallenge compares the selected hand power (plus active
// insurance coverage) against the challenge power and produces the
// result. It does not mutate any state.
func resolveChallenge(cfg GameConfig, challenge *Card, selected []*Card, coverage int) ChallengeResult {
	playerPower := coverage
	for _, c := range selected {
		playerPower += c.Power
	}
	challengePower := challenge.Power

	result := ChallengeResult{
		PlayerPower:    playerPower,
		ChallengePower: challengePower,
	}

	if playerPower >= challengePower {
		result.Success = true
		gain := cfg.SuccessVitalityGain
		if challenge.Challenge == ChallengeRiskReward {
			gain += challenge.BonusPower
		}
		result.VitalityChange = gain
		result.Message = fmt.Sprintf("チャレンジ成功: %s (%d vs %d)", challenge.Name, playerPower, challengePower)
		result.Rewards = []*Card{rewardFor(challenge)}
		return result
	}

	// Coverage is already part of playerPower, so the shortfall is the
	// post-mitigation damage. It can never flip into a gain.
	damage := challengePower - playerPower
	if challenge.Challenge == ChallengeRiskReward {
		damage *= 2
	}
	result.VitalityChange = -damage
	result.Message = fmt.Sprintf("チャレンジ失敗: %s (%d vs %d)", challenge.Name, playerPower, challengePower)
	return result
}

// rewardFor stamps the life card granted for overcoming a challenge.
func rewardFor(challenge *Card) *Card {
	power := 1 + challenge.Power/3
	return NewLifeCard(
		fmt.Sprintf("経験: %s", challenge.Name),
		fmt.Sprintf("%s を乗り越えた経験", challenge.Name),
		power, 0,
	)
}

// ValidateCardSelection checks a proposed selection against the pool of
// available cards. It returns one human-readable message per violation,
// so callers can report everything at once. Exposed for external
// tooling; ResolveChallenge applies it internally.
func ValidateCardSelection(selected, pool []*Card, min, max int) []string {
	var problems []string

	if len(selected) < min {
		problems = append(problems, fmt.Sprintf("最低%d枚のカードを選択してください", min))
	}
	if max > 0 && len(selected) > max {
		problems = append(problems, fmt.Sprintf("選択できるカードは最大%d枚です", max))
	}

	seen := make(map[string]bool, len(selected))
	for _, c := range selected {
		if c == nil {
			problems = append(problems, "不正なカードが選択されています")
			continue
		}
		if seen[c.ID] {
			problems = append(problems, fmt.Sprintf("カード「%s」が重複して選択されています", c.Name))
			continue
		}
		seen[c.ID] = true
		if findCard(pool, c.ID) == nil {
			problems = append(problems, fmt.Sprintf("カード「%s」は選択できません", c.Name))
		}
	}

	return problems
}
