package table

// BettingRound enforces turn order, legal-action computation, and action
// application within one street. A round is created per street and discarded
// when the street ends.
type BettingRound struct {
	street        Street
	bigBlind      int
	currentBet    int
	lastRaiseSize int

	// order is the clockwise action order for the street, index 0 first to act
	order []*Player
	// actionStartIndex is where the action started, or changed (i.e., a raise)
	actionStartIndex int
	// actionAtIndex is the offset of the player currently making a decision
	actionAtIndex int
}

// newBettingRound opens a betting round. For the preflop street the blinds
// are already in play, so currentBet is the big blind; later streets open
// with currentBet 0 and a minimum raise of the big blind.
func newBettingRound(street Street, order []*Player, currentBet, bigBlind int) *BettingRound {
	b := &BettingRound{
		street:        street,
		bigBlind:      bigBlind,
		currentBet:    currentBet,
		lastRaiseSize: bigBlind,
		order:         order,
	}

	b.advanceToActable()
	return b
}

// Street returns the street this round is for
func (b *BettingRound) Street() Street {
	return b.street
}

// CurrentBet returns the bet players must match this street
func (b *BettingRound) CurrentBet() int {
	return b.currentBet
}

// Closed returns true when all players who can act have acted and matched
// the current bet, or when at most one player remains unfolded
func (b *BettingRound) Closed() bool {
	return b.actionAtIndex >= len(b.order) || b.unfoldedCount() <= 1
}

// ActingPlayer returns the player whose turn it is, or nil if the round is closed
func (b *BettingRound) ActingPlayer() *Player {
	if b.Closed() {
		return nil
	}

	return b.order[b.normalizedIndex()]
}

// CallAmount returns the chips the player owes to call, capped at their stack
func (b *BettingRound) CallAmount(p *Player) int {
	owed := b.currentBet - p.streetBet
	if owed > p.stack {
		owed = p.stack
	}
	if owed < 0 {
		owed = 0
	}

	return owed
}

// MinRaiseTo returns the smallest total a raise may be made to
func (b *BettingRound) MinRaiseTo() int {
	return b.currentBet + b.lastRaiseSize
}

// MaxBet returns the largest total the player can have in play this street
func (b *BettingRound) MaxBet(p *Player) int {
	return p.streetBet + p.stack
}

// LegalActions derives the actions the player may take right now. The list is
// empty unless it is the player's turn.
func (b *BettingRound) LegalActions(p *Player) []Action {
	if b.ActingPlayer() != p {
		return nil
	}

	actions := make([]Action, 0, 3)
	if b.currentBet == p.streetBet {
		actions = append(actions, Check)
	} else {
		actions = append(actions, Call)
	}

	if b.currentBet == 0 {
		actions = append(actions, Bet)
	} else if b.MaxBet(p) > b.currentBet {
		actions = append(actions, Raise)
	}

	return append(actions, Fold)
}

// apply performs the action for the acting player. The caller must have
// already verified that p is the acting player.
func (b *BettingRound) apply(p *Player, action Action, amount int) error {
	switch action {
	case Fold:
		p.folded = true
	case Check:
		if p.streetBet != b.currentBet {
			return newPlayerError("you cannot check with an active bet")
		}
	case Call:
		if b.currentBet <= p.streetBet {
			return newPlayerError("you cannot call without an active bet")
		}

		p.betTo(b.currentBet)
	case Bet:
		return b.applyBet(p, amount)
	case Raise:
		return b.applyRaise(p, amount)
	default:
		return newPlayerError("unknown action: %s", action)
	}

	b.completeTurn()
	return nil
}

func (b *BettingRound) applyBet(p *Player, amount int) error {
	if b.currentBet > 0 {
		return newPlayerError("there is already a bet of %d; you must call, raise, or fold", b.currentBet)
	}

	if amount <= 0 {
		return newPlayerError("bet must be a positive amount")
	}

	maxBet := b.MaxBet(p)
	if amount > maxBet {
		return newPlayerError("bet of %d exceeds your stack", amount)
	}

	// any positive amount is accepted when the player puts their whole stack in
	if amount < b.bigBlind && amount != maxBet {
		return newPlayerError("bet must be at least the big blind of %d", b.bigBlind)
	}

	b.placeBetOrRaise(p, amount)
	return nil
}

func (b *BettingRound) applyRaise(p *Player, amount int) error {
	if b.currentBet == 0 {
		return newPlayerError("there is no bet to raise; you must bet or check")
	}

	// the preflop small-blind completion to the big blind is a call, not a
	// raise, and is exempt from minimum-raise sizing
	if b.street == Preflop && amount == b.currentBet {
		return b.apply(p, Call, 0)
	}

	if amount <= b.currentBet {
		return newPlayerError("raise must exceed the current bet of %d", b.currentBet)
	}

	maxBet := b.MaxBet(p)
	if amount > maxBet {
		return newPlayerError("raise to %d exceeds your stack", amount)
	}

	increase := amount - b.currentBet
	if increase < b.lastRaiseSize && amount != maxBet {
		return newPlayerError("raise must be at least %d more, to a total of %d", b.lastRaiseSize, b.MinRaiseTo())
	}

	b.placeBetOrRaise(p, amount)
	return nil
}

// placeBetOrRaise applies a new bet level and re-queues every other active
// player to act again
func (b *BettingRound) placeBetOrRaise(p *Player, amount int) {
	b.lastRaiseSize = amount - b.currentBet
	b.currentBet = amount
	p.betTo(amount)

	b.actionStartIndex = b.indexOf(p)
	b.actionAtIndex = 0
	b.completeTurn()
}

// completeTurn advances to the next player who can act
func (b *BettingRound) completeTurn() {
	b.actionAtIndex++
	b.advanceToActable()
}

func (b *BettingRound) advanceToActable() {
	for ; b.actionAtIndex < len(b.order); b.actionAtIndex++ {
		if b.order[b.normalizedIndex()].canAct() {
			return
		}
	}
}

func (b *BettingRound) normalizedIndex() int {
	return (b.actionStartIndex + b.actionAtIndex) % len(b.order)
}

func (b *BettingRound) indexOf(p *Player) int {
	for i, player := range b.order {
		if player == p {
			return i
		}
	}

	panic("player not in betting round")
}

func (b *BettingRound) unfoldedCount() int {
	count := 0
	for _, p := range b.order {
		if !p.folded {
			count++
		}
	}

	return count
}
