package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jinsei-game/jinsei/internal/log"
)

// Game is the aggregate root of a single playthrough. All fields are
// unexported: state changes only through command methods, which enforce
// the phase cycle and keep the invariants intact.
type Game struct {
	cfg     GameConfig
	catalog *Catalog
	rng     *rand.Rand
	logger  log.EventLogger
	onEvent func(log.GameEvent)

	id         string
	playerName string
	character  string

	status Status
	phase  Phase
	turn   int
	stage  Stage

	vitality    int
	maxVitality int

	insuranceBurden    int
	maxInsuranceBurden int

	hand             []*Card
	playerDeck       *Deck
	challengeDeck    *Deck
	discardPile      *Deck
	challengeDiscard *Deck

	insuranceCards []*Card
	dueRenewals    []*Card

	cardChoices      []*Card
	currentChallenge *Card
	selectedDream    *Card
	selected         []*Card

	stats Stats
}

// NewGame creates a game from the given config. Zero-valued numeric
// fields fall back to DefaultConfig; the filled-in config must then pass
// ValidateGameConfig.
func NewGame(cfg GameConfig) (*Game, error) {
	cfg = withDefaults(cfg)

	if res := ValidateGameConfig(cfg); !res.IsValid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(res.Errors, "; "))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	return &Game{
		cfg:                cfg,
		catalog:            catalog,
		rng:                rand.New(rand.NewSource(seed)),
		logger:             logger,
		id:                 uuid.NewString(),
		status:             StatusNotStarted,
		phase:              PhaseNone,
		turn:               1,
		stage:              StageYouth,
		vitality:           cfg.StartingVitality,
		maxVitality:        cfg.MaxVitality,
		maxInsuranceBurden: cfg.MaxInsuranceBurden,
		playerDeck:         &Deck{},
		challengeDeck:      &Deck{},
		discardPile:        &Deck{},
		challengeDiscard:   &Deck{},
	}, nil
}

// withDefaults fills zero-valued config fields from DefaultConfig.
func withDefaults(cfg GameConfig) GameConfig {
	def := DefaultConfig()
	if cfg.StartingVitality == 0 {
		cfg.StartingVitality = def.StartingVitality
	}
	if cfg.MaxVitality == 0 {
		cfg.MaxVitality = def.MaxVitality
	}
	if cfg.MaxVitality < cfg.StartingVitality {
		cfg.MaxVitality = cfg.StartingVitality
	}
	if cfg.MaxInsuranceBurden == 0 {
		cfg.MaxInsuranceBurden = def.MaxInsuranceBurden
	}
	if cfg.MaxHandSize == 0 {
		cfg.MaxHandSize = def.MaxHandSize
	}
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = def.MaxTurns
	}
	if cfg.ChallengeChoices == 0 {
		cfg.ChallengeChoices = def.ChallengeChoices
	}
	if cfg.MiddleAgeTurn == 0 {
		cfg.MiddleAgeTurn = def.MiddleAgeTurn
	}
	if cfg.FulfillmentTurn == 0 {
		cfg.FulfillmentTurn = def.FulfillmentTurn
	}
	if cfg.VictoryTurn == 0 {
		cfg.VictoryTurn = def.VictoryTurn
	}
	if cfg.VictoryVitality == 0 {
		cfg.VictoryVitality = def.VictoryVitality
	}
	if cfg.MinSelection == 0 {
		cfg.MinSelection = def.MinSelection
	}
	if cfg.MaxSelection == 0 {
		cfg.MaxSelection = def.MaxSelection
	}
	if cfg.SuccessVitalityGain == 0 {
		cfg.SuccessVitalityGain = def.SuccessVitalityGain
	}
	if cfg.RegenYouth == 0 {
		cfg.RegenYouth = def.RegenYouth
	}
	if cfg.RegenMiddle == 0 {
		cfg.RegenMiddle = def.RegenMiddle
	}
	if cfg.RegenFulfillment == 0 {
		cfg.RegenFulfillment = def.RegenFulfillment
	}
	if cfg.TermUsage == 0 {
		cfg.TermUsage = def.TermUsage
	}
	return cfg
}

// --- Commands ---

// Start begins a new playthrough and offers the character choices.
func (g *Game) Start(playerName string) error {
	if g.Finished() {
		return nil
	}
	if g.status != StatusNotStarted {
		return errors.New("start: game already started")
	}

	g.playerName = playerName
	g.status = StatusInProgress
	g.phase = PhaseCharacterSelection
	g.turn = 1
	g.stage = StageYouth

	for _, c := range g.catalog.BuildLifeDeck() {
		g.playerDeck.cards = append(g.playerDeck.cards, c)
	}
	for _, c := range g.catalog.BuildChallengeDeck() {
		g.challengeDeck.cards = append(g.challengeDeck.cards, c)
	}
	if !g.cfg.NoShuffle {
		g.playerDeck.Shuffle(g.rng)
		g.challengeDeck.Shuffle(g.rng)
	}

	g.cardChoices = g.catalog.CharacterChoices()

	g.log(log.NewGameStartEvent(playerName))
	return nil
}

// SelectCharacter picks a character card from the offered choices. The
// character's bonus is added to starting vitality.
func (g *Game) SelectCharacter(cardID string) error {
	if g.Finished() {
		return nil
	}
	if g.phase != PhaseCharacterSelection {
		return newPhaseError("select_character", g.phase, PhaseCharacterSelection)
	}

	card := findCard(g.cardChoices, cardID)
	if card == nil {
		return fmt.Errorf("select_character %q: %w", cardID, ErrUnknownCard)
	}

	g.character = card.Name
	g.maxVitality = g.cfg.MaxVitality + card.Power
	g.setVitality(g.vitality+card.Power, PhaseCharacterSelection, "キャラクターボーナス")

	g.cardChoices = g.catalog.DreamChoices()
	g.phase = PhaseDreamSelection

	g.log(log.NewCharacterSelectedEvent(card.Name, card.Power))
	return nil
}

// SelectDream picks the dream card that shapes the final score.
func (g *Game) SelectDream(cardID string) error {
	if g.Finished() {
		return nil
	}
	if g.phase != PhaseDreamSelection {
		return newPhaseError("select_dream", g.phase, PhaseDreamSelection)
	}

	card := findCard(g.cardChoices, cardID)
	if card == nil {
		return fmt.Errorf("select_dream %q: %w", cardID, ErrUnknownCard)
	}

	g.selectedDream = card
	g.cardChoices = nil
	g.phase = PhaseDraw

	g.log(log.NewDreamSelectedEvent(card.Name))
	return nil
}

// DrawCards refills the hand to the hand limit, recycling the discard
// pile when the deck runs dry.
func (g *Game) DrawCards() error {
	if g.Finished() {
		return nil
	}
	if g.phase != PhaseDraw {
		return newPhaseError("draw_cards", g.phase, PhaseDraw)
	}

	for len(g.hand) < g.cfg.MaxHandSize {
		if g.playerDeck.Len() == 0 {
			if g.discardPile.Len() == 0 {
				break
			}
			g.playerDeck.RefillFrom(g.discardPile, g.rng, !g.cfg.NoShuffle)
			g.log(log.NewShuffleEvent(g.turn, "捨て札"))
		}
		c := g.playerDeck.Draw()
		g.hand = append(g.hand, c)
		g.log(log.NewDrawEvent(g.turn, c.Name))
	}

	g.phase = PhaseChallengeChoice
	g.log(log.NewPhaseChangeEvent(g.turn, g.phase.String()))
	return nil
}

// StartChallengePhase draws the challenge offer set into cardChoices.
func (g *Game) StartChallengePhase() error {
	if g.Finished() {
		return nil
	}
	if g.phase != PhaseChallengeChoice {
		return newPhaseError("start_challenge_phase", g.phase, PhaseChallengeChoice)
	}
	if len(g.cardChoices) > 0 {
		return errors.New("start_challenge_phase: challenge offer already drawn")
	}

	for i := 0; i < g.cfg.ChallengeChoices; i++ {
		if g.challengeDeck.Len() == 0 {
			if g.challengeDiscard.Len() == 0 {
				break
			}
			g.challengeDeck.RefillFrom(g.challengeDiscard, g.rng, !g.cfg.NoShuffle)
			g.log(log.NewShuffleEvent(g.turn, "チャレンジの山札"))
		}
		g.cardChoices = append(g.cardChoices, g.challengeDeck.Draw())
	}
	if len(g.cardChoices) == 0 {
		return fmt.Errorf("start_challenge_phase: %w", ErrDeckEmpty)
	}

	names := make([]string, 0, len(g.cardChoices))
	for _, c := range g.cardChoices {
		names = append(names, c.Name)
	}
	g.log(log.NewChallengeOfferEvent(g.turn, names))
	return nil
}

// StartChallenge picks one challenge from the offer set; the rest return
// to the bottom of the challenge deck.
func (g *Game) StartChallenge(cardID string) error {
	if g.Finished() {
		return nil
	}
	if g.phase != PhaseChallengeChoice {
		return newPhaseError("start_challenge", g.phase, PhaseChallengeChoice)
	}

	card := findCard(g.cardChoices, cardID)
	if card == nil {
		return fmt.Errorf("start_challenge %q: %w", cardID, ErrUnknownCard)
	}

	for _, c := range g.cardChoices {
		if c.ID != card.ID {
			_ = g.challengeDeck.AddToBottom(c)
		}
	}
	g.cardChoices = nil
	g.currentChallenge = card
	g.selected = nil
	g.phase = PhaseChallenge

	g.log(log.NewChallengeStartEvent(g.turn, card.Name, card.Power))
	return nil
}

// ToggleCardSelection adds a hand card to the selection for the current
// challenge, or removes it if already selected.
func (g *Game) ToggleCardSelection(cardID string) error {
	if g.Finished() {
		return nil
	}
	if g.phase != PhaseChallenge {
		return newPhaseError("toggle_card_selection", g.phase, PhaseChallenge)
	}

	card := findCard(g.hand, cardID)
	if card == nil {
		return fmt.Errorf("toggle_card_selection %q: %w", cardID, ErrUnknownCard)
	}

	for i, c := range g.selected {
		if c.ID == cardID {
			g.selected = append(g.selected[:i], g.selected[i+1:]...)
			return nil
		}
	}
	g.selected = append(g.selected, card)
	return nil
}

// ResolveChallenge resolves the current challenge with the selected hand
// cards, applies the result and advances the phase.
func (g *Game) ResolveChallenge() (ChallengeResult, error) {
	if g.Finished() {
		return ChallengeResult{}, nil
	}
	if g.phase != PhaseChallenge {
		return ChallengeResult{}, newPhaseError("resolve_challenge", g.phase, PhaseChallenge)
	}
	if g.currentChallenge == nil {
		return ChallengeResult{}, fmt.Errorf("resolve_challenge: %w", ErrNoChallenge)
	}

	if problems := ValidateCardSelection(g.selected, g.hand, g.cfg.MinSelection, g.cfg.MaxSelection); len(problems) > 0 {
		return ChallengeResult{}, &SelectionError{Problems: problems}
	}

	challenge := g.currentChallenge
	coverage := g.activeCoverage()
	result := resolveChallenge(g.cfg, challenge, g.selected, coverage)

	g.stats.TotalChallenges++
	if result.Success {
		g.stats.SuccessfulChallenges++
	} else {
		g.stats.FailedChallenges++
	}
	g.log(log.NewChallengeResultEvent(g.turn, challenge.Name, result.Success, result.PlayerPower, result.ChallengePower))

	if result.VitalityChange != 0 {
		g.setVitality(g.vitality+result.VitalityChange, PhaseChallenge, challenge.Name)
	}

	if !result.Success && coverage > 0 {
		g.consumeCoverage()
	}

	// Played cards leave the hand.
	for _, c := range g.selected {
		g.removeFromHand(c.ID)
		_ = g.discardPile.Add(c)
		g.log(log.NewDiscardEvent(g.turn, c.Name))
	}
	g.selected = nil

	g.currentChallenge = nil
	_ = g.challengeDiscard.Add(challenge)

	for _, r := range result.Rewards {
		if len(g.hand) < g.cfg.MaxHandSize {
			g.hand = append(g.hand, r)
		} else {
			_ = g.discardPile.Add(r)
		}
		g.stats.CardsAcquired++
		g.log(log.NewCardAcquiredEvent(g.turn, r.Name))
	}

	if g.vitality <= 0 {
		g.finish(StatusGameOver, "体力が尽きた")
		return result, nil
	}

	if result.Success && g.insuranceBurden < g.maxInsuranceBurden {
		g.cardChoices = g.catalog.InsuranceOffers(g.stage, g.cfg.TermUsage)
		g.phase = PhaseInsuranceTypeSelection
	} else {
		g.phase = PhaseResolution
	}
	g.log(log.NewPhaseChangeEvent(g.turn, g.phase.String()))

	return result, nil
}

// SelectInsurance signs the chosen policy from the offer set.
func (g *Game) SelectInsurance(cardID string) error {
	if g.Finished() {
		return nil
	}
	if g.phase != PhaseInsuranceTypeSelection {
		return newPhaseError("select_insurance", g.phase, PhaseInsuranceTypeSelection)
	}

	card := findCard(g.cardChoices, cardID)
	if card == nil {
		return fmt.Errorf("select_insurance %q: %w", cardID, ErrUnknownCard)
	}

	if err := g.addInsurance(card); err != nil {
		return err
	}

	g.cardChoices = nil
	g.phase = PhaseResolution
	return nil
}

// DeclineInsurance skips insurance for this turn.
func (g *Game) DeclineInsurance() error {
	if g.Finished() {
		return nil
	}
	if g.phase != PhaseInsuranceTypeSelection {
		return newPhaseError("decline_insurance", g.phase, PhaseInsuranceTypeSelection)
	}
	g.cardChoices = nil
	g.phase = PhaseResolution
	return nil
}

// NextTurn evaluates victory, charges the insurance burden, applies
// regeneration and advances to the next turn's draw phase.
func (g *Game) NextTurn() error {
	if g.Finished() {
		return nil
	}
	if g.phase != PhaseResolution {
		return newPhaseError("next_turn", g.phase, PhaseResolution)
	}

	// Unanswered renewal offers lapse.
	for len(g.dueRenewals) > 0 {
		_ = g.RenewInsurance(g.dueRenewals[0].ID, false)
	}

	if g.victoryReached() {
		g.finish(StatusVictory, "")
		return nil
	}

	if g.turn >= g.cfg.MaxTurns {
		g.finish(StatusGameOver, "最大ターン数に到達した")
		return nil
	}

	if g.insuranceBurden > 0 {
		old := g.vitality
		g.vitality = clamp(g.vitality-g.insuranceBurden, 0, g.maxVitality)
		g.log(log.NewBurdenChargedEvent(g.turn, g.insuranceBurden, old, g.vitality))
		if g.vitality <= 0 {
			g.finish(StatusGameOver, "保険料が払えなくなった")
			return nil
		}
	}

	if regen := g.regenerationForStage(g.stage); regen > 0 {
		g.setVitality(g.vitality+regen, PhaseResolution, "回復")
	}

	g.turn++
	g.stats.TurnsPlayed++

	if next := g.stageForTurn(g.turn); next != g.stage {
		g.stage = next
		g.log(log.NewStageChangeEvent(g.turn, next.String()))
	}

	g.phase = PhaseDraw
	g.log(log.NewTurnEvent(g.turn, g.stage.String()))
	return nil
}

// --- Internal helpers ---

// finish moves the game to a terminal status and freezes the stats.
func (g *Game) finish(status Status, reason string) {
	g.status = status
	g.stats.FinalVitality = g.vitality
	g.stats.FinalInsuranceBurden = g.insuranceBurden
	g.stats.Score = g.computeScore(status == StatusVictory)

	if status == StatusVictory {
		g.log(log.NewVictoryEvent(g.turn, g.vitality))
	} else {
		g.log(log.NewGameOverEvent(g.turn, g.phase.String(), reason))
	}
}

// computeScore derives the final score from vitality, successes and the
// selected dream.
func (g *Game) computeScore(victory bool) int {
	score := g.vitality + g.stats.SuccessfulChallenges*10 + g.stats.TurnsPlayed*3
	if victory && g.selectedDream != nil {
		score += g.selectedDream.Power * 10
	}
	return score
}

// setVitality clamps into [0, maxVitality] and logs the change.
func (g *Game) setVitality(v int, phase Phase, reason string) {
	old := g.vitality
	g.vitality = clamp(v, 0, g.maxVitality)
	if g.vitality != old {
		g.log(log.NewVitalityChangeEvent(g.turn, phase.String(), old, g.vitality, reason))
	}
}

func (g *Game) removeFromHand(cardID string) {
	for i, c := range g.hand {
		if c.ID == cardID {
			g.hand = append(g.hand[:i], g.hand[i+1:]...)
			return
		}
	}
}

func (g *Game) log(e log.GameEvent) {
	g.logger.Log(e)
	if g.onEvent != nil {
		g.onEvent(e)
	}
}

// OnEvent registers a callback invoked for every logged event. Used by
// session front ends to forward events to their controller.
func (g *Game) OnEvent(fn func(log.GameEvent)) {
	g.onEvent = fn
}

func findCard(cards []*Card, id string) *Card {
	for _, c := range cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- Read-only projections ---

func (g *Game) ID() string          { return g.id }
func (g *Game) PlayerName() string  { return g.playerName }
func (g *Game) Character() string   { return g.character }
func (g *Game) Status() Status      { return g.status }
func (g *Game) Phase() Phase        { return g.phase }
func (g *Game) Turn() int           { return g.turn }
func (g *Game) Stage() Stage        { return g.stage }
func (g *Game) Vitality() int       { return g.vitality }
func (g *Game) MaxVitality() int    { return g.maxVitality }
func (g *Game) InsuranceBurden() int { return g.insuranceBurden }
func (g *Game) MaxInsuranceBurden() int { return g.maxInsuranceBurden }
func (g *Game) Config() GameConfig  { return g.cfg }
func (g *Game) GameStats() Stats    { return g.stats }

// Finished reports whether the game reached a terminal status.
func (g *Game) Finished() bool {
	return g.status == StatusVictory || g.status == StatusGameOver
}

func (g *Game) Hand() []*Card            { return copyCards(g.hand) }
func (g *Game) Insurance() []*Card       { return copyCards(g.insuranceCards) }
func (g *Game) CardChoices() []*Card     { return copyCards(g.cardChoices) }
func (g *Game) SelectedCards() []*Card   { return copyCards(g.selected) }
func (g *Game) DueRenewals() []*Card     { return copyCards(g.dueRenewals) }
func (g *Game) CurrentChallenge() *Card  { return g.currentChallenge }
func (g *Game) SelectedDream() *Card     { return g.selectedDream }
func (g *Game) DeckCount() int           { return g.playerDeck.Len() }
func (g *Game) DiscardCount() int        { return g.discardPile.Len() }
func (g *Game) ChallengeDeckCount() int  { return g.challengeDeck.Len() }

func copyCards(cards []*Card) []*Card {
	out := make([]*Card, len(cards))
	copy(out, cards)
	return out
}
