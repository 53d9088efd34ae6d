package game

import (
	"github.com/google/uuid"

	"github.com/jinsei-game/jinsei/internal/log"
)

// CardSnapshot is the wire form of a card. Enum fields travel as
// strings and pass through validated parsing on the way back in.
type CardSnapshot struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Kind          string `json:"kind"`
	Power         int    `json:"power"`
	Cost          int    `json:"cost"`
	InsuranceType string `json:"insuranceType,omitempty"`
	Coverage      int    `json:"coverage,omitempty"`
	UsageCount    int    `json:"usageCount,omitempty"`
	MaxUsage      int    `json:"maxUsage,omitempty"`
	ChallengeType string `json:"challengeType,omitempty"`
	BonusPower    int    `json:"bonusPower,omitempty"`
}

// Snapshot is the wire form of a whole game. It is also the untrusted
// entry point: FromSnapshot accepts arbitrary snapshots and repairs
// them instead of trusting their fields.
type Snapshot struct {
	GameID     string `json:"gameId"`
	PlayerName string `json:"playerName"`
	Character  string `json:"character,omitempty"`

	Status string `json:"status"`
	Phase  string `json:"phase"`
	Turn   int    `json:"turn"`
	Stage  string `json:"stage"`

	Vitality    int `json:"vitality"`
	MaxVitality int `json:"maxVitality"`

	InsuranceBurden    int `json:"insuranceBurden"`
	MaxInsuranceBurden int `json:"maxInsuranceBurden"`

	Hand             []CardSnapshot `json:"hand"`
	PlayerDeck       []CardSnapshot `json:"playerDeck"`
	DiscardPile      []CardSnapshot `json:"discardPile"`
	ChallengeDeck    []CardSnapshot `json:"challengeDeck"`
	ChallengeDiscard []CardSnapshot `json:"challengeDiscard"`
	InsuranceCards   []CardSnapshot `json:"insuranceCards"`
	CardChoices      []CardSnapshot `json:"cardChoices"`

	CurrentChallenge *CardSnapshot `json:"currentChallenge,omitempty"`
	SelectedDream    *CardSnapshot `json:"selectedDream,omitempty"`

	Stats Stats `json:"stats"`
}

// Snapshot produces a read-only copy of the full game state.
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		GameID:             g.id,
		PlayerName:         g.playerName,
		Character:          g.character,
		Status:             g.status.String(),
		Phase:              g.phase.String(),
		Turn:               g.turn,
		Stage:              g.stage.String(),
		Vitality:           g.vitality,
		MaxVitality:        g.maxVitality,
		InsuranceBurden:    g.insuranceBurden,
		MaxInsuranceBurden: g.maxInsuranceBurden,
		Hand:               snapshotCards(g.hand),
		PlayerDeck:         snapshotCards(g.playerDeck.cards),
		DiscardPile:        snapshotCards(g.discardPile.cards),
		ChallengeDeck:      snapshotCards(g.challengeDeck.cards),
		ChallengeDiscard:   snapshotCards(g.challengeDiscard.cards),
		InsuranceCards:     snapshotCards(g.insuranceCards),
		CardChoices:        snapshotCards(g.cardChoices),
		Stats:              g.stats,
	}
	if g.currentChallenge != nil {
		cs := snapshotCard(g.currentChallenge)
		s.CurrentChallenge = &cs
	}
	if g.selectedDream != nil {
		cs := snapshotCard(g.selectedDream)
		s.SelectedDream = &cs
	}
	return s
}

func snapshotCards(cards []*Card) []CardSnapshot {
	out := make([]CardSnapshot, 0, len(cards))
	for _, c := range cards {
		out = append(out, snapshotCard(c))
	}
	return out
}

func snapshotCard(c *Card) CardSnapshot {
	cs := CardSnapshot{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Kind:        c.Kind.String(),
		Power:       c.Power,
		Cost:        c.Cost,
	}
	if c.Kind == KindInsurance {
		cs.InsuranceType = c.Insurance.String()
		cs.Coverage = c.Coverage
		cs.UsageCount = c.UsageCount
		cs.MaxUsage = c.MaxUsage
	}
	if c.Kind == KindChallenge {
		cs.ChallengeType = c.Challenge.String()
		cs.BonusPower = c.BonusPower
	}
	return cs
}

// RepairSnapshot clamps out-of-range values and replaces missing or
// unrecognized fields with legal ones. It never fails: whatever comes
// in, a playable snapshot comes out.
func RepairSnapshot(s *Snapshot, cfg GameConfig) {
	cfg = withDefaults(cfg)

	if s.GameID == "" {
		s.GameID = uuid.NewString()
	}

	if _, ok := ParseStatus(s.Status); !ok {
		if s.Vitality <= 0 {
			s.Status = StatusGameOver.String()
		} else {
			s.Status = StatusInProgress.String()
		}
	}

	if s.Turn < 1 {
		s.Turn = 1
	}
	if s.MaxVitality < 1 {
		s.MaxVitality = cfg.MaxVitality
	}
	s.Vitality = clamp(s.Vitality, 0, s.MaxVitality)
	if s.MaxInsuranceBurden < 0 {
		s.MaxInsuranceBurden = cfg.MaxInsuranceBurden
	}

	// Stage is a pure function of turn; whatever the snapshot claims is
	// replaced with the derived value.
	s.Stage = StageForTurn(cfg, s.Turn).String()

	if _, ok := ParsePhase(s.Phase); !ok || s.Phase == "none" {
		if st, _ := ParseStatus(s.Status); st == StatusInProgress {
			s.Phase = PhaseDraw.String()
		}
	}

	s.Hand = repairCards(s.Hand)
	if len(s.Hand) > cfg.MaxHandSize {
		s.Hand = s.Hand[:cfg.MaxHandSize]
	}
	s.PlayerDeck = repairCards(s.PlayerDeck)
	s.DiscardPile = repairCards(s.DiscardPile)
	s.ChallengeDeck = repairCards(s.ChallengeDeck)
	s.ChallengeDiscard = repairCards(s.ChallengeDiscard)
	s.CardChoices = repairCards(s.CardChoices)

	// Insurance cards additionally need a valid variant; anything else
	// is dropped rather than guessed at.
	var kept []CardSnapshot
	for _, c := range repairCards(s.InsuranceCards) {
		if _, ok := ParseInsuranceKind(c.InsuranceType); ok {
			kept = append(kept, c)
		}
	}
	s.InsuranceCards = kept

	// The burden is always the exact sum of active policy costs.
	sum := 0
	for _, c := range s.InsuranceCards {
		sum += c.Cost
	}
	s.InsuranceBurden = sum
	if s.InsuranceBurden > s.MaxInsuranceBurden {
		s.MaxInsuranceBurden = s.InsuranceBurden
	}

	if s.Stats.TotalChallenges != s.Stats.SuccessfulChallenges+s.Stats.FailedChallenges {
		s.Stats.TotalChallenges = s.Stats.SuccessfulChallenges + s.Stats.FailedChallenges
	}
}

// repairCards drops duplicate IDs, fills missing IDs and clamps
// negative numeric fields.
func repairCards(cards []CardSnapshot) []CardSnapshot {
	seen := make(map[string]bool, len(cards))
	out := cards[:0]
	for _, c := range cards {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		if _, ok := ParseCardKind(c.Kind); !ok {
			c.Kind = KindLife.String()
		}
		if c.Cost < 0 {
			c.Cost = 0
		}
		if c.Coverage < 0 {
			c.Coverage = 0
		}
		if c.UsageCount < 0 {
			c.UsageCount = 0
		}
		if c.MaxUsage < c.UsageCount {
			c.MaxUsage = c.UsageCount
		}
		out = append(out, c)
	}
	return out
}

// FromSnapshot rebuilds a game from an untrusted snapshot. The snapshot
// always passes through RepairSnapshot first, so this never fails.
func FromSnapshot(s *Snapshot, cfg GameConfig) *Game {
	cfg = withDefaults(cfg)
	RepairSnapshot(s, cfg)

	g, _ := NewGame(cfg)
	if g == nil {
		// A config broken beyond withDefaults falls back entirely.
		g, _ = NewGame(DefaultConfig())
	}

	g.id = s.GameID
	g.playerName = s.PlayerName
	g.character = s.Character
	g.status, _ = ParseStatus(s.Status)
	g.phase, _ = ParsePhase(s.Phase)
	g.turn = s.Turn
	g.stage, _ = ParseStage(s.Stage)
	g.vitality = s.Vitality
	g.maxVitality = s.MaxVitality
	g.maxInsuranceBurden = s.MaxInsuranceBurden

	g.hand = restoreCards(s.Hand)
	g.playerDeck = &Deck{cards: restoreCards(s.PlayerDeck)}
	g.discardPile = &Deck{cards: restoreCards(s.DiscardPile)}
	g.challengeDeck = &Deck{cards: restoreCards(s.ChallengeDeck)}
	g.challengeDiscard = &Deck{cards: restoreCards(s.ChallengeDiscard)}
	g.insuranceCards = restoreCards(s.InsuranceCards)
	g.cardChoices = restoreCards(s.CardChoices)
	if s.CurrentChallenge != nil {
		g.currentChallenge = restoreCard(*s.CurrentChallenge)
	}
	if s.SelectedDream != nil {
		g.selectedDream = restoreCard(*s.SelectedDream)
	}
	g.stats = s.Stats

	g.recomputeBurden()

	g.log(log.GameEvent{
		Turn:    g.turn,
		Phase:   g.phase.String(),
		Type:    log.EventGameStart,
		Details: "セーブデータから再開",
	})
	return g
}

func restoreCards(snaps []CardSnapshot) []*Card {
	out := make([]*Card, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, restoreCard(s))
	}
	return out
}

func restoreCard(s CardSnapshot) *Card {
	kind, _ := ParseCardKind(s.Kind)
	c := &Card{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Kind:        kind,
		Power:       s.Power,
		Cost:        s.Cost,
	}
	if kind == KindInsurance {
		c.Insurance, _ = ParseInsuranceKind(s.InsuranceType)
		c.Coverage = s.Coverage
		c.UsageCount = s.UsageCount
		c.MaxUsage = s.MaxUsage
	}
	if kind == KindChallenge {
		c.Challenge, _ = ParseChallengeKind(s.ChallengeType)
		c.BonusPower = s.BonusPower
	}
	return c
}
