package game

import "fmt"

// ValidationResult is the outcome of a static validation check. Errors
// are invariant violations; warnings flag suspicious but legal values.
// The message strings are part of the external contract.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func newValidationResult(errors, warnings []string) ValidationResult {
	return ValidationResult{
		IsValid:  len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

// ValidateGameConfig checks a config before a game is built from it.
func ValidateGameConfig(cfg GameConfig) ValidationResult {
	var errs, warns []string

	if cfg.StartingVitality < 1 {
		errs = append(errs, "初期体力は1以上である必要があります")
	}
	if cfg.MaxVitality < cfg.StartingVitality {
		errs = append(errs, "最大体力は初期体力以上である必要があります")
	}
	if cfg.MaxInsuranceBurden < 0 {
		errs = append(errs, "保険負担の上限は0以上である必要があります")
	}
	if cfg.MaxHandSize < 1 {
		errs = append(errs, "手札の上限は1以上である必要があります")
	}
	if cfg.MaxTurns < 1 {
		errs = append(errs, "最大ターン数は1以上である必要があります")
	}
	if cfg.MiddleAgeTurn < 1 || cfg.FulfillmentTurn <= cfg.MiddleAgeTurn {
		errs = append(errs, "ステージの閾値が不正です")
	}
	if cfg.MinSelection < 0 || (cfg.MaxSelection > 0 && cfg.MinSelection > cfg.MaxSelection) {
		errs = append(errs, "選択枚数の範囲が不正です")
	}

	if cfg.StartingVitality > 1000 {
		warns = append(warns, "初期体力が極端に大きい値です")
	}
	if cfg.MaxHandSize > 20 {
		warns = append(warns, "手札の上限が極端に大きい値です")
	}
	if cfg.VictoryTurn < cfg.FulfillmentTurn {
		warns = append(warns, "勝利ターンが充実期の開始より前に設定されています")
	}

	return newValidationResult(errs, warns)
}

// ValidateGameState checks a live game's invariants without mutating it.
func ValidateGameState(g *Game) ValidationResult {
	var errs, warns []string

	if g.vitality < 0 {
		errs = append(errs, "体力が負の値です")
	}
	if g.vitality > g.maxVitality {
		errs = append(errs, "体力が最大体力を超えています")
	}
	if g.turn < 1 {
		errs = append(errs, "ターン数は1以上である必要があります")
	}
	if g.status == StatusInProgress && g.stage != g.stageForTurn(g.turn) {
		errs = append(errs, "ステージがターン数と一致していません")
	}
	if g.insuranceBurden < 0 {
		errs = append(errs, "保険負担が負の値です")
	}
	if g.insuranceBurden > g.maxInsuranceBurden {
		errs = append(errs, "保険負担が上限を超えています")
	}

	sum := 0
	for _, c := range g.insuranceCards {
		sum += c.Cost
		if c.Insurance != InsuranceWholeLife && c.Insurance != InsuranceTerm {
			errs = append(errs, fmt.Sprintf("保険種別が不正です: %s", c.Name))
		}
		if c.Cost < 0 {
			errs = append(errs, fmt.Sprintf("保険のコストが負の値です: %s", c.Name))
		}
		if c.Coverage < 0 {
			errs = append(errs, fmt.Sprintf("保険の補償額が負の値です: %s", c.Name))
		}
	}
	if g.insuranceBurden != sum {
		errs = append(errs, "保険負担が保険料の合計と一致していません")
	}

	if len(g.hand) > g.cfg.MaxHandSize {
		errs = append(errs, "手札が上限を超えています")
	}
	for _, dup := range duplicateIDs(g.hand) {
		errs = append(errs, fmt.Sprintf("カードIDが重複しています: %s", dup))
	}
	for _, dup := range duplicateIDs(g.playerDeck.cards) {
		errs = append(errs, fmt.Sprintf("カードIDが重複しています: %s", dup))
	}
	for _, dup := range duplicateIDs(g.insuranceCards) {
		errs = append(errs, fmt.Sprintf("カードIDが重複しています: %s", dup))
	}

	if g.stats.TotalChallenges != g.stats.SuccessfulChallenges+g.stats.FailedChallenges {
		errs = append(errs, "チャレンジ回数の集計が一致していません")
	}

	if g.vitality > 500 {
		warns = append(warns, "体力が極端に大きい値です")
	}

	return newValidationResult(errs, warns)
}

// ValidateSelection is the ValidationResult form of ValidateCardSelection.
func ValidateSelection(selected, pool []*Card, min, max int) ValidationResult {
	return newValidationResult(ValidateCardSelection(selected, pool, min, max), nil)
}

// ValidateChallengeExecution checks that the game can resolve a
// challenge right now.
func ValidateChallengeExecution(g *Game) ValidationResult {
	var errs, warns []string

	if g.phase != PhaseChallenge {
		errs = append(errs, "チャレンジフェーズではありません")
	}
	if g.currentChallenge == nil {
		errs = append(errs, "チャレンジカードが設定されていません")
	} else {
		if g.currentChallenge.Kind != KindChallenge {
			errs = append(errs, "チャレンジ以外のカードが指定されています")
		}

		best := g.activeCoverage()
		for _, c := range g.hand {
			best += c.Power
		}
		if best < g.currentChallenge.Power {
			warns = append(warns, "手札全体でもこのチャレンジには届きません")
		}
	}

	errs = append(errs, ValidateCardSelection(g.selected, g.hand, g.cfg.MinSelection, g.cfg.MaxSelection)...)

	return newValidationResult(errs, warns)
}

// ValidateInsuranceRenewal checks a renewal offer against the player's
// current vitality.
func ValidateInsuranceRenewal(policy *Card, vitality int) ValidationResult {
	var errs, warns []string

	if policy == nil {
		errs = append(errs, "更新対象の保険が見つかりません")
		return newValidationResult(errs, warns)
	}
	if policy.Kind != KindInsurance || policy.Insurance != InsuranceTerm {
		errs = append(errs, "定期保険のみ更新できます")
	}
	if policy.Cost < 0 {
		errs = append(errs, fmt.Sprintf("保険のコストが負の値です: %s", policy.Name))
	}

	if policy.Cost > vitality {
		warns = append(warns, "更新コストが現在の体力を上回っています")
	} else if vitality > 0 && policy.Cost*2 > vitality {
		warns = append(warns, "更新コストが現在の体力に対して高すぎます")
	}

	return newValidationResult(errs, warns)
}

// duplicateIDs returns the IDs that appear more than once.
func duplicateIDs(cards []*Card) []string {
	seen := make(map[string]bool, len(cards))
	var dups []string
	for _, c := range cards {
		if seen[c.ID] {
			dups = append(dups, c.ID)
			continue
		}
		seen[c.ID] = true
	}
	return dups
}
