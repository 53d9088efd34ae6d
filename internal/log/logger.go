package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 24 chars for alignment
	for len(phase) < 24 {
		phase += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewGameStartEvent(player string) GameEvent {
	return GameEvent{
		Turn:    1,
		Phase:   "character_selection",
		Type:    EventGameStart,
		Details: fmt.Sprintf("=== %s の人生、開幕 ===", player),
	}
}

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int, stage string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "draw",
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== ターン %d (%s) ===", turn, stage),
	}
}

func NewStageChangeEvent(turn int, stage string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "draw",
		Type:    EventStageChange,
		Details: fmt.Sprintf("人生のステージが %s に進んだ", stage),
	}
}

func NewCharacterSelectedEvent(name string, bonus int) GameEvent {
	return GameEvent{
		Turn:    1,
		Phase:   "character_selection",
		Type:    EventCharacterSelected,
		Card:    name,
		Details: fmt.Sprintf("キャラクター選択: %s (体力ボーナス +%d)", name, bonus),
	}
}

func NewDreamSelectedEvent(name string) GameEvent {
	return GameEvent{
		Turn:    1,
		Phase:   "dream_selection",
		Type:    EventDreamSelected,
		Card:    name,
		Details: fmt.Sprintf("夢を選択: %s", name),
	}
}

func NewDrawEvent(turn int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "draw",
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s を引いた", cardName),
	}
}

func NewShuffleEvent(turn int, pile string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "draw",
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s をシャッフル", pile),
	}
}

func NewChallengeOfferEvent(turn int, names []string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "challenge_choice",
		Type:    EventChallengeOffer,
		Details: fmt.Sprintf("チャレンジ候補: %s", strings.Join(names, " / ")),
	}
}

func NewChallengeStartEvent(turn int, cardName string, power int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "challenge",
		Type:    EventChallengeStart,
		Card:    cardName,
		Details: fmt.Sprintf("チャレンジ開始: %s (必要パワー %d)", cardName, power),
	}
}

func NewChallengeResultEvent(turn int, cardName string, success bool, playerPower, challengePower int) GameEvent {
	outcome := "失敗"
	if success {
		outcome = "成功"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   "challenge",
		Type:    EventChallengeResult,
		Card:    cardName,
		Details: fmt.Sprintf("チャレンジ%s: %s (%d vs %d)", outcome, cardName, playerPower, challengePower),
	}
}

func NewVitalityChangeEvent(turn int, phase string, old, new int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventVitalityChange,
		Details: fmt.Sprintf("体力: %d → %d (%s)", old, new, reason),
	}
}

func NewCardAcquiredEvent(turn int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "challenge",
		Type:    EventCardAcquired,
		Card:    cardName,
		Details: fmt.Sprintf("%s を獲得した", cardName),
	}
}

func NewDiscardEvent(turn int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "challenge",
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s を捨て札にした", cardName),
	}
}

func NewInsuranceAddedEvent(turn int, cardName string, cost, burden int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "insurance_type_selection",
		Type:    EventInsuranceAdded,
		Card:    cardName,
		Details: fmt.Sprintf("%s に加入 (コスト %d, 負担合計 %d)", cardName, cost, burden),
	}
}

func NewInsuranceConsumedEvent(turn int, cardName string, remaining int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "challenge",
		Type:    EventInsuranceConsumed,
		Card:    cardName,
		Details: fmt.Sprintf("%s の補償を使用 (残り %d 回)", cardName, remaining),
	}
}

func NewInsuranceExpiredEvent(turn int, phase string, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventInsuranceExpired,
		Card:    cardName,
		Details: fmt.Sprintf("%s が失効した", cardName),
	}
}

func NewInsuranceRenewedEvent(turn int, cardName string, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "resolution",
		Type:    EventInsuranceRenewed,
		Card:    cardName,
		Details: fmt.Sprintf("%s を更新した (コスト %d)", cardName, cost),
	}
}

func NewBurdenChargedEvent(turn int, burden, oldVit, newVit int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "resolution",
		Type:    EventBurdenCharged,
		Details: fmt.Sprintf("保険料の支払い: %d (体力 %d → %d)", burden, oldVit, newVit),
	}
}

func NewVictoryEvent(turn, vitality int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "resolution",
		Type:    EventVictory,
		Details: fmt.Sprintf("人生充実！ ターン %d、体力 %d で勝利", turn, vitality),
	}
}

func NewGameOverEvent(turn int, phase, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventGameOver,
		Details: fmt.Sprintf("ゲームオーバー (%s)", reason),
	}
}
