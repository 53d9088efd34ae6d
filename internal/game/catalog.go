package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the full card set a game is built from. The zero value is
// not usable; use DefaultCatalog or LoadCatalog.
type Catalog struct {
	life       []lifeSpec
	challenges []challengeSpec
	dreams     []*Card
	characters []*Card
	plans      []insurancePlan
}

// DefaultCatalog returns the built-in card set.
func DefaultCatalog() *Catalog {
	c := &Catalog{
		life:       builtinLife,
		challenges: builtinChallenges,
		plans:      builtinPlans,
	}
	for _, d := range builtinDreams {
		c.dreams = append(c.dreams, NewDreamCard(d.name, d.desc, d.power))
	}
	for _, ch := range builtinCharacters {
		c.characters = append(c.characters, newCharacterCard(ch.name, ch.desc, ch.bonus))
	}
	return c
}

// BuildLifeDeck stamps a fresh player deck (new card IDs each game).
func (c *Catalog) BuildLifeDeck() []*Card {
	var cards []*Card
	for _, spec := range c.life {
		n := spec.count
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			cards = append(cards, NewLifeCard(spec.name, spec.desc, spec.power, spec.cost))
		}
	}
	return cards
}

// BuildChallengeDeck stamps a fresh challenge deck.
func (c *Catalog) BuildChallengeDeck() []*Card {
	var cards []*Card
	for _, spec := range c.challenges {
		if spec.kind == ChallengeRiskReward {
			cards = append(cards, NewRiskRewardChallenge(spec.name, spec.desc, spec.power, spec.bonus))
		} else {
			cards = append(cards, NewChallengeCard(spec.name, spec.desc, spec.power))
		}
	}
	return cards
}

// DreamChoices returns the dream offer set.
func (c *Catalog) DreamChoices() []*Card {
	return c.dreams
}

// CharacterChoices returns the character offer set.
func (c *Catalog) CharacterChoices() []*Card {
	return c.characters
}

// InsuranceOffers stamps the insurance offer set for the given stage.
// Premiums climb as the player ages.
func (c *Catalog) InsuranceOffers(stage Stage, termUsage int) []*Card {
	var offers []*Card
	for _, p := range c.plans {
		cost := p.cost + int(stage)
		offers = append(offers, NewInsuranceCard(p.name, p.desc, p.kind, cost, p.coverage, termUsage))
	}
	return offers
}

// --- YAML catalog files ---

// CatalogFile is the top-level YAML structure.
type CatalogFile struct {
	Life       []LifeEntry      `yaml:"life"`
	Challenges []ChallengeEntry `yaml:"challenges"`
	Dreams     []DreamEntry     `yaml:"dreams"`
	Characters []CharacterEntry `yaml:"characters"`
	Insurance  []PlanEntry      `yaml:"insurance"`
}

type LifeEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Power       int    `yaml:"power"`
	Cost        int    `yaml:"cost"`
	Count       int    `yaml:"count"`
}

type ChallengeEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Power       int    `yaml:"power"`
	Type        string `yaml:"type"` // "standard" (default) or "risk_reward"
	Bonus       int    `yaml:"bonus"`
}

type DreamEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Power       int    `yaml:"power"`
}

type CharacterEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Bonus       int    `yaml:"bonus"`
}

type PlanEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"` // "whole_life" or "term"
	Cost        int    `yaml:"cost"`
	Coverage    int    `yaml:"coverage"`
}

// LoadCatalog parses a YAML catalog file. Sections left empty fall back
// to the built-in card set.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	cat := DefaultCatalog()

	if len(cf.Life) > 0 {
		cat.life = nil
		for _, e := range cf.Life {
			cat.life = append(cat.life, lifeSpec{name: e.Name, desc: e.Description, power: e.Power, cost: e.Cost, count: e.Count})
		}
	}
	if len(cf.Challenges) > 0 {
		cat.challenges = nil
		for _, e := range cf.Challenges {
			kind, ok := ParseChallengeKind(e.Type)
			if !ok {
				return nil, fmt.Errorf("challenge %q: unknown type %q", e.Name, e.Type)
			}
			cat.challenges = append(cat.challenges, challengeSpec{name: e.Name, desc: e.Description, power: e.Power, kind: kind, bonus: e.Bonus})
		}
	}
	if len(cf.Dreams) > 0 {
		cat.dreams = nil
		for _, e := range cf.Dreams {
			cat.dreams = append(cat.dreams, NewDreamCard(e.Name, e.Description, e.Power))
		}
	}
	if len(cf.Characters) > 0 {
		cat.characters = nil
		for _, e := range cf.Characters {
			cat.characters = append(cat.characters, newCharacterCard(e.Name, e.Description, e.Bonus))
		}
	}
	if len(cf.Insurance) > 0 {
		cat.plans = nil
		for _, e := range cf.Insurance {
			kind, ok := ParseInsuranceKind(e.Type)
			if !ok {
				return nil, fmt.Errorf("insurance plan %q: unknown type %q", e.Name, e.Type)
			}
			cat.plans = append(cat.plans, insurancePlan{name: e.Name, desc: e.Description, kind: kind, cost: e.Cost, coverage: e.Coverage})
		}
	}

	return cat, nil
}
