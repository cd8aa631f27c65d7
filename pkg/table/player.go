package table

import (
	"cardroom-server/pkg/deck"
)

// Player is a seated participant. The Table owns all player game state;
// the session layer references players only by ID.
type Player struct {
	ID   string
	Name string

	stack       int
	streetBet   int
	contributed int
	holeCards   deck.Hand
	folded      bool
	allIn       bool
	reveal      bool
	handName    string
}

func newPlayer(id, name string, buyIn int) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		stack: buyIn,
	}
}

// Stack returns the player's chip stack
func (p *Player) Stack() int {
	return p.stack
}

// StreetBet returns the chips the player has bet on the current street
func (p *Player) StreetBet() int {
	return p.streetBet
}

// Contributed returns the chips the player has put into the hand so far
func (p *Player) Contributed() int {
	return p.contributed
}

// HoleCards returns the player's hole cards
func (p *Player) HoleCards() deck.Hand {
	return p.holeCards
}

// Folded returns true if the player folded this hand
func (p *Player) Folded() bool {
	return p.folded
}

// AllIn returns true if the player is all-in
func (p *Player) AllIn() bool {
	return p.allIn
}

// canAct returns true if the player can check, call, bet, raise, or fold
func (p *Player) canAct() bool {
	return !p.folded && !p.allIn
}

// betTo puts chips in play until the player's street bet reaches amount,
// capped at their stack. Putting in the final chip marks the player all-in.
// The chips actually added are returned.
func (p *Player) betTo(amount int) int {
	diff := amount - p.streetBet
	if diff >= p.stack {
		diff = p.stack
		p.allIn = true
	}

	p.stack -= diff
	p.streetBet += diff
	p.contributed += diff

	return diff
}

// newStreet resets the player's per-street state
func (p *Player) newStreet() {
	p.streetBet = 0
}

// newHand resets the player's per-hand state
func (p *Player) newHand() {
	p.streetBet = 0
	p.contributed = 0
	p.holeCards = nil
	p.folded = false
	p.allIn = false
	p.reveal = false
	p.handName = ""
}
