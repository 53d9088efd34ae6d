package game

// stageForTurn derives the life stage from the turn counter.
func (g *Game) stageForTurn(turn int) Stage {
	return StageForTurn(g.cfg, turn)
}

// StageForTurn is the pure stage rule: youth below MiddleAgeTurn,
// middle below FulfillmentTurn, fulfillment from there on.
func StageForTurn(cfg GameConfig, turn int) Stage {
	switch {
	case turn < cfg.MiddleAgeTurn:
		return StageYouth
	case turn < cfg.FulfillmentTurn:
		return StageMiddle
	default:
		return StageFulfillment
	}
}

// victoryReached evaluates the victory condition for the current turn.
func (g *Game) victoryReached() bool {
	return g.stage == StageFulfillment &&
		g.turn >= g.cfg.VictoryTurn &&
		g.vitality >= g.cfg.VictoryVitality
}

// regenerationForStage is the between-turn vitality recovery rule,
// applied after the burden charge. Recovery declines with age.
func (g *Game) regenerationForStage(stage Stage) int {
	switch stage {
	case StageYouth:
		return g.cfg.RegenYouth
	case StageMiddle:
		return g.cfg.RegenMiddle
	default:
		return g.cfg.RegenFulfillment
	}
}
