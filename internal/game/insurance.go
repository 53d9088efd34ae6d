package game

import (
	"fmt"

	"github.com/jinsei-game/jinsei/internal/log"
)

// addInsurance signs a policy and recomputes the burden. The burden is
// always re-derived from the active policies, never adjusted
// incrementally.
func (g *Game) addInsurance(card *Card) error {
	if card.Kind != KindInsurance {
		return fmt.Errorf("add insurance %q: not an insurance card", card.Name)
	}
	if g.insuranceBurden+card.Cost > g.maxInsuranceBurden {
		return fmt.Errorf("add insurance %q: burden %d would exceed limit %d",
			card.Name, g.insuranceBurden+card.Cost, g.maxInsuranceBurden)
	}

	g.insuranceCards = append(g.insuranceCards, card)
	g.recomputeBurden()

	g.log(log.NewInsuranceAddedEvent(g.turn, card.Name, card.Cost, g.insuranceBurden))
	return nil
}

// recomputeBurden re-derives insuranceBurden as the exact sum of active
// policy costs.
func (g *Game) recomputeBurden() {
	sum := 0
	for _, c := range g.insuranceCards {
		sum += c.Cost
	}
	g.insuranceBurden = sum
}

// activeCoverage sums the coverage of policies that can still protect:
// whole-life always, term only while usages remain.
func (g *Game) activeCoverage() int {
	sum := 0
	for _, c := range g.insuranceCards {
		switch c.Insurance {
		case InsuranceWholeLife:
			sum += c.Coverage
		case InsuranceTerm:
			if c.UsageCount > 0 {
				sum += c.Coverage
			}
		}
	}
	return sum
}

// consumeCoverage burns one usage from every protecting term policy.
// A term policy that already sits at zero usages expires on this
// qualifying event instead; one that just reached zero becomes due for
// renewal.
func (g *Game) consumeCoverage() {
	var expired []*Card
	for _, c := range g.insuranceCards {
		if c.Insurance != InsuranceTerm {
			continue
		}
		if c.UsageCount == 0 {
			expired = append(expired, c)
			continue
		}
		c.UsageCount--
		g.log(log.NewInsuranceConsumedEvent(g.turn, c.Name, c.UsageCount))
		if c.UsageCount == 0 {
			g.dueRenewals = append(g.dueRenewals, c)
		}
	}
	for _, c := range expired {
		g.expireInsurance(c)
	}
}

// expireInsurance drops a policy and recomputes the burden.
func (g *Game) expireInsurance(card *Card) {
	for i, c := range g.insuranceCards {
		if c.ID == card.ID {
			g.insuranceCards = append(g.insuranceCards[:i], g.insuranceCards[i+1:]...)
			break
		}
	}
	g.removeDueRenewal(card.ID)
	g.recomputeBurden()
	g.log(log.NewInsuranceExpiredEvent(g.turn, g.phase.String(), card.Name))
}

func (g *Game) removeDueRenewal(cardID string) {
	for i, c := range g.dueRenewals {
		if c.ID == cardID {
			g.dueRenewals = append(g.dueRenewals[:i], g.dueRenewals[i+1:]...)
			return
		}
	}
}

// RenewInsurance answers a pending renewal offer for a term policy.
// Accepting resets the usage count and keeps the cost in the burden; a
// declined or unaffordable renewal lets the policy expire.
func (g *Game) RenewInsurance(cardID string, accept bool) error {
	if g.Finished() {
		return nil
	}
	if g.phase != PhaseResolution {
		return newPhaseError("renew_insurance", g.phase, PhaseResolution)
	}

	card := findCard(g.dueRenewals, cardID)
	if card == nil {
		return fmt.Errorf("renew_insurance %q: no renewal due", cardID)
	}

	g.removeDueRenewal(card.ID)

	if !accept || card.Cost > g.vitality {
		g.expireInsurance(card)
		return nil
	}

	card.UsageCount = card.MaxUsage
	g.recomputeBurden()
	g.log(log.NewInsuranceRenewedEvent(g.turn, card.Name, card.Cost))
	return nil
}
