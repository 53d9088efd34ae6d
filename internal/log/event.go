package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventGameStart EventType = iota
	EventPhaseChange
	EventNewTurn
	EventStageChange
	EventCharacterSelected
	EventDreamSelected
	EventDraw
	EventShuffle
	EventChallengeOffer
	EventChallengeStart
	EventChallengeResult
	EventVitalityChange
	EventCardAcquired
	EventDiscard
	EventInsuranceAdded
	EventInsuranceConsumed
	EventInsuranceExpired
	EventInsuranceRenewed
	EventBurdenCharged
	EventVictory
	EventGameOver
)

func (e EventType) String() string {
	switch e {
	case EventGameStart:
		return "GameStart"
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventStageChange:
		return "StageChange"
	case EventCharacterSelected:
		return "CharacterSelected"
	case EventDreamSelected:
		return "DreamSelected"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventChallengeOffer:
		return "ChallengeOffer"
	case EventChallengeStart:
		return "ChallengeStart"
	case EventChallengeResult:
		return "ChallengeResult"
	case EventVitalityChange:
		return "VitalityChange"
	case EventCardAcquired:
		return "CardAcquired"
	case EventDiscard:
		return "Discard"
	case EventInsuranceAdded:
		return "InsuranceAdded"
	case EventInsuranceConsumed:
		return "InsuranceConsumed"
	case EventInsuranceExpired:
		return "InsuranceExpired"
	case EventInsuranceRenewed:
		return "InsuranceRenewed"
	case EventBurdenCharged:
		return "BurdenCharged"
	case EventVictory:
		return "Victory"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "challenge")
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
