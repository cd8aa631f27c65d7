// Package potmanager computes pots and side pots from the chips each player
// contributed over a hand, and splits pot winnings without losing chips to
// integer division.
package potmanager

import (
	"sort"
)

// Contribution is the total amount a single player put into the hand,
// summed across every street. Folded players stay in the list: their chips
// are dead money that remains claimable by the pots they funded.
type Contribution struct {
	PlayerID string
	Amount   int
	Folded   bool
}

// Pot is a single pot tier
type Pot struct {
	Amount            int      `json:"amount"`
	EligiblePlayerIDs []string `json:"eligiblePlayerIds"`
}

// Pots is an ordered list of pots, main pot first
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}

// BuildPots forms the pot tiers for a hand. Each distinct contribution level,
// ascending, closes one tier; a player is eligible for a tier if they have not
// folded and contributed at least that level. A player all-in below another
// player's contribution is therefore eligible only up to their own level,
// which is what creates side pots.
//
// Contributions must be passed in action-priority order (clockwise from the
// first seat after the dealer) so eligibility lists are deterministic.
func BuildPots(contributions []Contribution) Pots {
	levels := make([]int, 0, len(contributions))
	seen := make(map[int]bool)
	for _, c := range contributions {
		if c.Amount > 0 && !seen[c.Amount] {
			seen[c.Amount] = true
			levels = append(levels, c.Amount)
		}
	}

	sort.Ints(levels)

	pots := make(Pots, 0, len(levels))
	previous := 0
	for _, level := range levels {
		pot := &Pot{}
		for _, c := range contributions {
			amount := c.Amount
			if amount > level {
				amount = level
			}

			if amount > previous {
				pot.Amount += amount - previous
			}

			if !c.Folded && c.Amount >= level {
				pot.EligiblePlayerIDs = append(pot.EligiblePlayerIDs, c.PlayerID)
			}
		}

		pots = append(pots, pot)
		previous = level
	}

	return pots
}

// Split divides an amount evenly among the winners. The integer remainder is
// distributed one chip at a time starting with the first winner, so callers
// must order winners by action priority to keep chip accounting exact.
func Split(amount int, winners []string) map[string]int {
	if len(winners) == 0 {
		return nil
	}

	share := amount / len(winners)
	remainder := amount % len(winners)

	payouts := make(map[string]int, len(winners))
	for i, winner := range winners {
		payout := share
		if i < remainder {
			payout++
		}

		payouts[winner] = payout
	}

	return payouts
}
