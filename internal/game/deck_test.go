package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestDeckDrawOrder(t *testing.T) {
	a := NewLifeCard("A", "", 1, 0)
	b := NewLifeCard("B", "", 2, 0)
	c := NewLifeCard("C", "", 3, 0)

	d, err := NewDeck(a, b, c)
	if err != nil {
		t.Fatalf("NewDeck: %v", err)
	}
	if d.Len() != 3 {
		t.Fatalf("Len = %d, want 3", d.Len())
	}

	// Top of the pile is the last card added.
	for _, want := range []string{"C", "B", "A"} {
		got := d.Draw()
		if got == nil || got.Name != want {
			t.Fatalf("Draw = %v, want %s", got, want)
		}
	}
	if d.Draw() != nil {
		t.Error("Draw from empty deck should return nil")
	}
}

func TestDeckRejectsDuplicateIDs(t *testing.T) {
	a := NewLifeCard("A", "", 1, 0)
	d, err := NewDeck(a)
	if err != nil {
		t.Fatalf("NewDeck: %v", err)
	}

	if err := d.Add(a); !errors.Is(err, ErrDuplicateCard) {
		t.Errorf("Add duplicate: err = %v, want ErrDuplicateCard", err)
	}
	if err := d.AddToBottom(a); !errors.Is(err, ErrDuplicateCard) {
		t.Errorf("AddToBottom duplicate: err = %v, want ErrDuplicateCard", err)
	}
	if d.Len() != 1 {
		t.Errorf("Len = %d after rejected adds, want 1", d.Len())
	}
}

func TestDeckAddToBottom(t *testing.T) {
	a := NewLifeCard("A", "", 1, 0)
	b := NewLifeCard("B", "", 2, 0)

	d, _ := NewDeck(a)
	if err := d.AddToBottom(b); err != nil {
		t.Fatalf("AddToBottom: %v", err)
	}

	if got := d.Draw(); got.Name != "A" {
		t.Errorf("first draw = %s, want A", got.Name)
	}
	if got := d.Draw(); got.Name != "B" {
		t.Errorf("second draw = %s, want B", got.Name)
	}
}

func TestDeckRefillFrom(t *testing.T) {
	discard, _ := NewDeck(
		NewLifeCard("A", "", 1, 0),
		NewLifeCard("B", "", 2, 0),
	)
	d := &Deck{}

	d.RefillFrom(discard, rand.New(rand.NewSource(1)), false)

	if discard.Len() != 0 {
		t.Errorf("source Len = %d after refill, want 0", discard.Len())
	}
	if d.Len() != 2 {
		t.Errorf("Len = %d after refill, want 2", d.Len())
	}
}

func TestDeckShuffleKeepsCards(t *testing.T) {
	var cards []*Card
	for i := 0; i < 20; i++ {
		cards = append(cards, NewLifeCard("カード", "", i, 0))
	}
	d, _ := NewDeck(cards...)

	d.Shuffle(rand.New(rand.NewSource(42)))

	if d.Len() != 20 {
		t.Fatalf("Len = %d after shuffle, want 20", d.Len())
	}
	for _, c := range cards {
		if !d.Contains(c.ID) {
			t.Errorf("card %s lost in shuffle", c.ID)
		}
	}
}
