package table

import (
	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/poker/potmanager"
)

// SeatState is the public view of a single seat
type SeatState struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Stack     int       `json:"stackSize"`
	Bet       int       `json:"currentBet"`
	Folded    bool      `json:"folded"`
	AllIn     bool      `json:"allIn"`
	IsTurn    bool      `json:"isTurn"`
	HoleCards deck.Hand `json:"holeCards,omitempty"`
	Hand      string    `json:"hand,omitempty"`
}

// PublicState is the view of the table broadcast to every session. Hole cards
// appear only for players who reached a showdown.
type PublicState struct {
	Stage          Stage           `json:"stage"`
	Street         string          `json:"street,omitempty"`
	Community      deck.Hand       `json:"communityCards"`
	Seats          []*SeatState    `json:"seats"`
	Pot            int             `json:"pot"`
	Pots           potmanager.Pots `json:"pots,omitempty"`
	CurrentBet     int             `json:"currentBet"`
	SmallBlind     int             `json:"smallBlind"`
	BigBlind       int             `json:"bigBlind"`
	DealerIndex    int             `json:"dealerIndex"`
	ActingPlayerID string          `json:"actingPlayerId,omitempty"`
}

// PrivateState is the per-player view: their hole cards plus, on their turn,
// the legal actions and the amounts that bound them
type PrivateState struct {
	PlayerID   string    `json:"playerId"`
	HoleCards  deck.Hand `json:"holeCards"`
	Actions    []Action  `json:"actions"`
	CallAmount int       `json:"callAmount"`
	MinRaiseTo int       `json:"minRaiseTo"`
	MaxBet     int       `json:"maxBet"`
	Stack      int       `json:"stackSize"`
}

// Winner is a payout line in a hand result
type Winner struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Amount   int    `json:"amount"`
	Hand     string `json:"hand,omitempty"`
}

// HandResult reports how a completed hand paid out, winners in action order
type HandResult struct {
	Winners []Winner `json:"winners"`
}

// PublicState builds the broadcast view of the table
func (t *Table) PublicState() *PublicState {
	actingID := t.ActingPlayerID()

	seats := make([]*SeatState, len(t.seats))
	for i, p := range t.seats {
		seat := &SeatState{
			ID:     p.ID,
			Name:   p.Name,
			Stack:  p.stack,
			Bet:    p.streetBet,
			Folded: p.folded,
			AllIn:  p.allIn,
			IsTurn: p.ID == actingID,
		}

		if p.reveal {
			seat.HoleCards = p.holeCards
			seat.Hand = p.handName
		}

		seats[i] = seat
	}

	state := &PublicState{
		Stage:       t.stage,
		Community:   t.community,
		Seats:       seats,
		SmallBlind:  t.opts.SmallBlind,
		BigBlind:    t.opts.BigBlind,
		DealerIndex: t.dealerIndex,
	}

	// a completed hand has already paid its pot out to the stacks
	if t.stage == StageHandInProgress {
		state.Street = t.round.street.String()
		state.CurrentBet = t.round.currentBet
		state.ActingPlayerID = actingID
		state.Pot = t.potTotal()
		state.Pots = potmanager.BuildPots(t.contributions())
	}

	return state
}

// PrivateState builds the view for one player, or nil if they are not seated
func (t *Table) PrivateState(id string) *PrivateState {
	p := t.playerByID(id)
	if p == nil {
		return nil
	}

	state := &PrivateState{
		PlayerID:  p.ID,
		HoleCards: p.holeCards,
		Actions:   []Action{},
		Stack:     p.stack,
	}

	if t.stage == StageHandInProgress && t.round.ActingPlayer() == p {
		state.Actions = t.round.LegalActions(p)
		state.CallAmount = t.round.CallAmount(p)
		state.MinRaiseTo = t.round.MinRaiseTo()
		state.MaxBet = t.round.MaxBet(p)
	}

	return state
}

func (t *Table) potTotal() int {
	total := 0
	for _, p := range t.hand {
		total += p.contributed
	}

	return total
}
