package game

import (
	"testing"

	"github.com/jinsei-game/jinsei/internal/log"
)

func termPolicy(cost, coverage, usage int) *Card {
	return NewInsuranceCard("定期保険", "", InsuranceTerm, cost, coverage, usage)
}

func wholeLifePolicy(cost, coverage int) *Card {
	return NewInsuranceCard("終身保険", "", InsuranceWholeLife, cost, coverage, 0)
}

func TestAddInsuranceBurdenIsExactSum(t *testing.T) {
	g := startedGame(t, DefaultConfig())

	if err := g.addInsurance(wholeLifePolicy(3, 4)); err != nil {
		t.Fatalf("addInsurance: %v", err)
	}
	if err := g.addInsurance(termPolicy(2, 6, 2)); err != nil {
		t.Fatalf("addInsurance: %v", err)
	}

	if g.InsuranceBurden() != 5 {
		t.Errorf("burden = %d, want 5", g.InsuranceBurden())
	}
}

func TestAddInsuranceRespectsBurdenCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxInsuranceBurden = 4
	g := startedGame(t, cfg)

	if err := g.addInsurance(wholeLifePolicy(3, 4)); err != nil {
		t.Fatalf("addInsurance: %v", err)
	}
	if err := g.addInsurance(termPolicy(2, 6, 2)); err == nil {
		t.Fatal("expected error when burden would exceed the cap")
	}
	if g.InsuranceBurden() != 3 {
		t.Errorf("burden = %d after rejected add, want 3", g.InsuranceBurden())
	}
	if len(g.Insurance()) != 1 {
		t.Errorf("policies = %d, want 1", len(g.Insurance()))
	}
}

func TestAddInsuranceRejectsNonInsurance(t *testing.T) {
	g := startedGame(t, DefaultConfig())
	if err := g.addInsurance(NewLifeCard("A", "", 1, 0)); err == nil {
		t.Fatal("expected error for non-insurance card")
	}
}

func TestActiveCoverage(t *testing.T) {
	g := startedGame(t, DefaultConfig())

	if err := g.addInsurance(wholeLifePolicy(3, 4)); err != nil {
		t.Fatalf("addInsurance: %v", err)
	}
	term := termPolicy(2, 6, 2)
	if err := g.addInsurance(term); err != nil {
		t.Fatalf("addInsurance: %v", err)
	}

	if got := g.activeCoverage(); got != 10 {
		t.Errorf("coverage = %d, want 10", got)
	}

	// A spent term policy no longer protects; whole-life always does.
	term.UsageCount = 0
	if got := g.activeCoverage(); got != 4 {
		t.Errorf("coverage = %d with spent term policy, want 4", got)
	}
}

func TestTermPolicyConsumption(t *testing.T) {
	g := startedGame(t, DefaultConfig())
	term := termPolicy(2, 6, 2)
	if err := g.addInsurance(term); err != nil {
		t.Fatalf("addInsurance: %v", err)
	}

	// First qualifying event.
	g.consumeCoverage()
	if term.UsageCount != 1 {
		t.Errorf("UsageCount = %d after first event, want 1", term.UsageCount)
	}
	if len(g.DueRenewals()) != 0 {
		t.Errorf("renewal due too early: %v", g.DueRenewals())
	}

	// Second qualifying event exhausts the policy and queues a renewal.
	g.consumeCoverage()
	if term.UsageCount != 0 {
		t.Errorf("UsageCount = %d after second event, want 0", term.UsageCount)
	}
	if len(g.DueRenewals()) != 1 {
		t.Fatalf("renewals due = %d, want 1", len(g.DueRenewals()))
	}

	// The policy still counts toward the burden until it expires.
	if g.InsuranceBurden() != 2 {
		t.Errorf("burden = %d, want 2", g.InsuranceBurden())
	}
}

func TestRenewInsuranceDeclineExpires(t *testing.T) {
	g := startedGame(t, DefaultConfig())
	if err := g.addInsurance(wholeLifePolicy(3, 4)); err != nil {
		t.Fatalf("addInsurance: %v", err)
	}
	term := termPolicy(2, 6, 1)
	if err := g.addInsurance(term); err != nil {
		t.Fatalf("addInsurance: %v", err)
	}
	g.consumeCoverage()

	g.phase = PhaseResolution
	if err := g.RenewInsurance(term.ID, false); err != nil {
		t.Fatalf("RenewInsurance: %v", err)
	}

	// Burden drops by exactly the expired policy's cost.
	if g.InsuranceBurden() != 3 {
		t.Errorf("burden = %d after expiry, want 3", g.InsuranceBurden())
	}
	if len(g.Insurance()) != 1 {
		t.Errorf("policies = %d after expiry, want 1", len(g.Insurance()))
	}
	if len(g.DueRenewals()) != 0 {
		t.Errorf("renewals still due: %v", g.DueRenewals())
	}
}

func TestRenewInsuranceAcceptResetsUsage(t *testing.T) {
	g := startedGame(t, DefaultConfig())
	term := termPolicy(2, 6, 1)
	if err := g.addInsurance(term); err != nil {
		t.Fatalf("addInsurance: %v", err)
	}
	g.consumeCoverage()

	g.phase = PhaseResolution
	if err := g.RenewInsurance(term.ID, true); err != nil {
		t.Fatalf("RenewInsurance: %v", err)
	}

	if term.UsageCount != term.MaxUsage {
		t.Errorf("UsageCount = %d after renewal, want %d", term.UsageCount, term.MaxUsage)
	}
	if g.InsuranceBurden() != 2 {
		t.Errorf("burden = %d after renewal, want 2", g.InsuranceBurden())
	}
}

func TestRenewInsuranceUnaffordableExpires(t *testing.T) {
	g := startedGame(t, DefaultConfig())
	term := termPolicy(2, 6, 1)
	if err := g.addInsurance(term); err != nil {
		t.Fatalf("addInsurance: %v", err)
	}
	g.consumeCoverage()

	g.vitality = 1 // below the renewal cost
	g.phase = PhaseResolution
	if err := g.RenewInsurance(term.ID, true); err != nil {
		t.Fatalf("RenewInsurance: %v", err)
	}

	if len(g.Insurance()) != 0 {
		t.Error("unaffordable renewal should expire the policy")
	}
	if g.InsuranceBurden() != 0 {
		t.Errorf("burden = %d, want 0", g.InsuranceBurden())
	}
}

func TestNextTurnExpiresUnansweredRenewals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logger = log.NewMemoryLogger()
	g := startedGame(t, cfg)
	term := termPolicy(2, 6, 1)
	if err := g.addInsurance(term); err != nil {
		t.Fatalf("addInsurance: %v", err)
	}
	g.consumeCoverage()

	g.phase = PhaseResolution
	if err := g.NextTurn(); err != nil {
		t.Fatalf("NextTurn: %v", err)
	}

	if len(g.Insurance()) != 0 {
		t.Error("unanswered renewal should lapse at turn end")
	}
	logger := cfg.Logger.(*log.MemoryLogger)
	if len(logger.EventsOfType(log.EventInsuranceExpired)) == 0 {
		t.Error("expected an insurance expiry event")
	}
}
