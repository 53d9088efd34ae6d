package game

import (
	"fmt"
	"math/rand"
)

// Deck is an ordered pile of cards. The top of the pile is the last
// element (pop from end). No two cards sharing an ID may coexist in
// the same deck.
type Deck struct {
	cards []*Card
}

// NewDeck builds a deck from the given cards, bottom first.
func NewDeck(cards ...*Card) (*Deck, error) {
	d := &Deck{}
	for _, c := range cards {
		if err := d.Add(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Draw removes and returns the top card, or nil if the deck is empty.
func (d *Deck) Draw() *Card {
	if len(d.cards) == 0 {
		return nil
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c
}

// Add places a card on top of the deck.
func (d *Deck) Add(c *Card) error {
	if c == nil {
		return fmt.Errorf("add card: nil card")
	}
	if d.Contains(c.ID) {
		return fmt.Errorf("add card %q: %w", c.Name, ErrDuplicateCard)
	}
	d.cards = append(d.cards, c)
	return nil
}

// AddToBottom places a card underneath the deck.
func (d *Deck) AddToBottom(c *Card) error {
	if c == nil {
		return fmt.Errorf("add card: nil card")
	}
	if d.Contains(c.ID) {
		return fmt.Errorf("add card %q: %w", c.Name, ErrDuplicateCard)
	}
	d.cards = append([]*Card{c}, d.cards...)
	return nil
}

// Contains reports whether a card with the given ID is in the deck.
func (d *Deck) Contains(id string) bool {
	for _, c := range d.cards {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Shuffle randomizes the deck order in place.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// RefillFrom moves every card of src into d and shuffles. Used to turn
// the discard pile back into a draw pile when the deck runs dry.
func (d *Deck) RefillFrom(src *Deck, rng *rand.Rand, shuffle bool) {
	for _, c := range src.cards {
		d.cards = append(d.cards, c)
	}
	src.cards = nil
	if shuffle {
		d.Shuffle(rng)
	}
}

// Cards returns a copy of the pile, bottom first.
func (d *Deck) Cards() []*Card {
	out := make([]*Card, len(d.cards))
	copy(out, d.cards)
	return out
}
