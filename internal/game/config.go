package game

import "github.com/jinsei-game/jinsei/internal/log"

// Default balancing values. Everything that tunes progression lives here,
// not inline in command methods.
const (
	DefaultStartingVitality   = 100
	DefaultMaxVitality        = 100
	DefaultMaxInsuranceBurden = 50
	DefaultMaxHandSize        = 7
	DefaultMaxTurns           = 50
	DefaultChallengeChoices   = 3

	// Stage thresholds: youth for turn < MiddleAgeTurn, middle for
	// turn < FulfillmentTurn, fulfillment afterwards.
	DefaultMiddleAgeTurn   = 15
	DefaultFulfillmentTurn = 30

	// Victory requires fulfillment stage, turn >= VictoryTurn and
	// vitality >= VictoryVitality, evaluated at the start of NextTurn.
	DefaultVictoryTurn     = 40
	DefaultVictoryVitality = 50

	DefaultMinSelection = 1
	DefaultMaxSelection = 3

	DefaultSuccessVitalityGain = 2

	// Per-stage vitality regeneration applied after the burden charge.
	DefaultRegenYouth       = 3
	DefaultRegenMiddle      = 2
	DefaultRegenFulfillment = 1

	DefaultTermUsage = 2
)

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	StartingVitality   int
	MaxVitality        int
	MaxInsuranceBurden int
	MaxHandSize        int
	MaxTurns           int
	ChallengeChoices   int

	MiddleAgeTurn   int
	FulfillmentTurn int
	VictoryTurn     int
	VictoryVitality int

	MinSelection int
	MaxSelection int

	SuccessVitalityGain int

	RegenYouth       int
	RegenMiddle      int
	RegenFulfillment int

	TermUsage int

	// Runtime wiring, ignored by validation and persistence.
	Catalog   *Catalog        // nil for the built-in catalog
	Logger    log.EventLogger // nil for an in-memory logger
	Seed      int64           // RNG seed (0 for random)
	NoShuffle bool            // skip deck shuffles (for deterministic tests)
}

// DefaultConfig returns the standard balancing table.
func DefaultConfig() GameConfig {
	return GameConfig{
		StartingVitality:    DefaultStartingVitality,
		MaxVitality:         DefaultMaxVitality,
		MaxInsuranceBurden:  DefaultMaxInsuranceBurden,
		MaxHandSize:         DefaultMaxHandSize,
		MaxTurns:            DefaultMaxTurns,
		ChallengeChoices:    DefaultChallengeChoices,
		MiddleAgeTurn:       DefaultMiddleAgeTurn,
		FulfillmentTurn:     DefaultFulfillmentTurn,
		VictoryTurn:         DefaultVictoryTurn,
		VictoryVitality:     DefaultVictoryVitality,
		MinSelection:        DefaultMinSelection,
		MaxSelection:        DefaultMaxSelection,
		SuccessVitalityGain: DefaultSuccessVitalityGain,
		RegenYouth:          DefaultRegenYouth,
		RegenMiddle:         DefaultRegenMiddle,
		RegenFulfillment:    DefaultRegenFulfillment,
		TermUsage:           DefaultTermUsage,
	}
}
