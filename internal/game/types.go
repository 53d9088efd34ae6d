package game

import "fmt"

// --- Enums ---

// Status is the lifecycle state of a game.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusVictory
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusInProgress:
		return "in_progress"
	case StatusVictory:
		return "victory"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ParseStatus converts a wire string to a Status.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "not_started":
		return StatusNotStarted, true
	case "in_progress":
		return StatusInProgress, true
	case "victory":
		return StatusVictory, true
	case "game_over":
		return StatusGameOver, true
	default:
		return StatusNotStarted, false
	}
}

// Phase is one step of the per-turn cycle.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseCharacterSelection
	PhaseDreamSelection
	PhaseDraw
	PhaseChallengeChoice
	PhaseChallenge
	PhaseInsuranceTypeSelection
	PhaseResolution
)

func (p Phase) String() string {
	switch p {
	case PhaseCharacterSelection:
		return "character_selection"
	case PhaseDreamSelection:
		return "dream_selection"
	case PhaseDraw:
		return "draw"
	case PhaseChallengeChoice:
		return "challenge_choice"
	case PhaseChallenge:
		return "challenge"
	case PhaseInsuranceTypeSelection:
		return "insurance_type_selection"
	case PhaseResolution:
		return "resolution"
	default:
		return "none"
	}
}

// ParsePhase converts a wire string to a Phase.
func ParsePhase(s string) (Phase, bool) {
	for p := PhaseNone; p <= PhaseResolution; p++ {
		if p.String() == s {
			return p, true
		}
	}
	return PhaseNone, false
}

// Stage is the life stage, derived purely from the turn counter.
type Stage int

const (
	StageYouth Stage = iota
	StageMiddle
	StageFulfillment
)

func (s Stage) String() string {
	switch s {
	case StageYouth:
		return "youth"
	case StageMiddle:
		return "middle"
	case StageFulfillment:
		return "fulfillment"
	default:
		return "unknown"
	}
}

// ParseStage converts a wire string to a Stage.
func ParseStage(s string) (Stage, bool) {
	switch s {
	case "youth":
		return StageYouth, true
	case "middle":
		return StageMiddle, true
	case "fulfillment":
		return StageFulfillment, true
	default:
		return StageYouth, false
	}
}

// CardKind discriminates the playable card variants.
type CardKind int

const (
	KindLife CardKind = iota
	KindChallenge
	KindInsurance
	KindDream
)

func (k CardKind) String() string {
	switch k {
	case KindLife:
		return "life"
	case KindChallenge:
		return "challenge"
	case KindInsurance:
		return "insurance"
	case KindDream:
		return "dream"
	default:
		return "unknown"
	}
}

// ParseCardKind converts a wire string to a CardKind.
func ParseCardKind(s string) (CardKind, bool) {
	switch s {
	case "life":
		return KindLife, true
	case "challenge":
		return KindChallenge, true
	case "insurance":
		return KindInsurance, true
	case "dream":
		return KindDream, true
	default:
		return KindLife, false
	}
}

// InsuranceKind discriminates insurance card variants.
type InsuranceKind int

const (
	InsuranceNone InsuranceKind = iota
	InsuranceWholeLife
	InsuranceTerm
)

func (k InsuranceKind) String() string {
	switch k {
	case InsuranceWholeLife:
		return "whole_life"
	case InsuranceTerm:
		return "term"
	default:
		return ""
	}
}

// ParseInsuranceKind converts a wire string to an InsuranceKind.
func ParseInsuranceKind(s string) (InsuranceKind, bool) {
	switch s {
	case "whole_life":
		return InsuranceWholeLife, true
	case "term":
		return InsuranceTerm, true
	default:
		return InsuranceNone, false
	}
}

// ChallengeKind discriminates challenge card variants.
type ChallengeKind int

const (
	ChallengeStandard ChallengeKind = iota
	ChallengeRiskReward
)

func (k ChallengeKind) String() string {
	switch k {
	case ChallengeRiskReward:
		return "risk_reward"
	default:
		return "standard"
	}
}

// ParseChallengeKind converts a wire string to a ChallengeKind.
func ParseChallengeKind(s string) (ChallengeKind, bool) {
	switch s {
	case "standard", "":
		return ChallengeStandard, true
	case "risk_reward":
		return ChallengeRiskReward, true
	default:
		return ChallengeStandard, false
	}
}

// --- Card ---

// Card is a playable unit. Cards are constructed by factory functions and
// treated as immutable, with one exception: UsageCount on a term insurance
// card counts down as its coverage is consumed.
type Card struct {
	ID          string
	Name        string
	Description string
	Kind        CardKind
	Power       int
	Cost        int

	// Insurance-kind fields
	Insurance InsuranceKind
	Coverage  int
	UsageCount int // remaining protections (term only)
	MaxUsage   int // usage count a renewal resets to (term only)

	// Challenge-kind fields
	Challenge  ChallengeKind
	BonusPower int // extra success reward for risk_reward challenges
}

func (c *Card) String() string {
	if c == nil {
		return "(none)"
	}
	return c.Name
}

// DisplayString returns a human-readable description for logs and prompts.
func (c *Card) DisplayString() string {
	if c == nil {
		return "(none)"
	}
	switch c.Kind {
	case KindChallenge:
		if c.Challenge == ChallengeRiskReward {
			return fmt.Sprintf("%s (必要パワー %d, ボーナス %d)", c.Name, c.Power, c.BonusPower)
		}
		return fmt.Sprintf("%s (必要パワー %d)", c.Name, c.Power)
	case KindInsurance:
		if c.Insurance == InsuranceTerm {
			return fmt.Sprintf("%s (定期, 補償 %d, 残り%d回, コスト %d)", c.Name, c.Coverage, c.UsageCount, c.Cost)
		}
		return fmt.Sprintf("%s (終身, 補償 %d, コスト %d)", c.Name, c.Coverage, c.Cost)
	case KindDream:
		return fmt.Sprintf("%s (目標値 %d)", c.Name, c.Power)
	default:
		return fmt.Sprintf("%s (パワー %d)", c.Name, c.Power)
	}
}

// --- ChallengeResult ---

// ChallengeResult is produced once per challenge resolution.
type ChallengeResult struct {
	Success        bool
	PlayerPower    int
	ChallengePower int
	VitalityChange int
	Message        string
	Rewards        []*Card
}

// --- Stats ---

// Stats holds cumulative per-game counters.
type Stats struct {
	TotalChallenges      int `json:"totalChallenges"`
	SuccessfulChallenges int `json:"successfulChallenges"`
	FailedChallenges     int `json:"failedChallenges"`
	CardsAcquired        int `json:"cardsAcquired"`
	TurnsPlayed          int `json:"turnsPlayed"`
	FinalVitality        int `json:"finalVitality"`
	FinalInsuranceBurden int `json:"finalInsuranceBurden"`
	Score                int `json:"score"`
}
