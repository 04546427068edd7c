// Package study runs a drill over a set of cards: draw a card at random,
// grade it, and cycle missed cards back in until the pool is exhausted.
package study

import (
	"math/rand/v2"

	"github.com/gubarz/cardinal/internal/card"
)

// Session tracks which cards are still to be shown and how each was graded
type Session struct {
	pool      []card.Card
	correct   []card.Card
	incorrect []card.Card
	current   card.Card
	hasCard   bool
	rng       *rand.Rand
}

// New starts a session over a copy of cards. A nil rng uses a random seed.
func New(cards []card.Card, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Session{
		pool: append([]card.Card(nil), cards...),
		rng:  rng,
	}
	s.draw()
	return s
}

// NewSeeded starts a session whose draw order is fixed by seed
func NewSeeded(cards []card.Card, seed uint64) *Session {
	return New(cards, rand.New(rand.NewPCG(seed, seed)))
}

// Current returns the card being studied, false if the session is empty
func (s *Session) Current() (card.Card, bool) {
	return s.current, s.hasCard
}

// Next files the current card under correct or incorrect and draws another.
// When the pool runs dry the piles are shuffled back in.
func (s *Session) Next(correct bool) {
	if !s.hasCard {
		return
	}
	if correct {
		s.correct = append(s.correct, s.current)
	} else {
		s.incorrect = append(s.incorrect, s.current)
	}

	if len(s.pool) == 0 {
		s.Reset()
	}
	s.draw()
}

// Counts returns the remaining, correct and incorrect pile sizes.
// The card on screen is in none of them.
func (s *Session) Counts() (remaining, correct, incorrect int) {
	return len(s.pool), len(s.correct), len(s.incorrect)
}

// Reset refills the pool. Correct cards only come back once nothing was missed,
// so a round of misses is repeated before the whole deck starts over.
// The card on screen is left in place.
func (s *Session) Reset() {
	if len(s.pool) != 0 || len(s.incorrect) == 0 {
		s.pool = append(s.pool, s.correct...)
		s.correct = nil
	}
	s.pool = append(s.pool, s.incorrect...)
	s.incorrect = nil
}

func (s *Session) draw() {
	if len(s.pool) == 0 {
		s.current, s.hasCard = card.Card{}, false
		return
	}
	i := s.rng.IntN(len(s.pool))
	s.current, s.hasCard = s.pool[i], true
	s.pool = append(s.pool[:i], s.pool[i+1:]...)
}
