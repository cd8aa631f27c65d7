package table

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardroom-server/pkg/deck"
)

func testTable(opts Options) *Table {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(logger, opts)
}

func totalChips(t *Table) int {
	total := 0
	for _, p := range t.Players() {
		total += p.Stack() + p.Contributed()
	}

	return total
}

func TestTable_seating(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.MaxSeats = 2
	tbl := testTable(opts)

	p1, err := tbl.Seat("1", "Alice")
	a.NoError(err)
	a.Equal(1000, p1.Stack())

	_, err = tbl.Seat("2", "Bob")
	a.NoError(err)

	// seating an existing ID is a reconnect, not a new seat
	again, err := tbl.Seat("1", "Alice")
	a.NoError(err)
	a.Equal(p1, again)
	a.Len(tbl.Players(), 2)

	_, err = tbl.Seat("3", "Carol")
	a.Equal(ErrTableFull, err)
}

func TestTable_startHandErrors(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(DefaultOptions())
	_, err := tbl.StartHand()
	a.Equal(ErrInsufficientPlayers, err)

	_, _ = tbl.Seat("1", "Alice")
	_, err = tbl.StartHand()
	a.Equal(ErrInsufficientPlayers, err)

	_, _ = tbl.Seat("2", "Bob")
	result, err := tbl.StartHand()
	a.NoError(err)
	a.Nil(result)

	_, err = tbl.StartHand()
	a.Equal(ErrHandInProgress, err)
}

func TestTable_actErrors(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(DefaultOptions())
	_, _ = tbl.Seat("1", "Alice")
	_, _ = tbl.Seat("2", "Bob")

	_, err := tbl.Act("1", Check, 0)
	a.Equal(ErrNoHandInProgress, err)

	_, _ = tbl.StartHand()

	_, err = tbl.Act("99", Fold, 0)
	a.Equal(ErrUnknownPlayer, err)

	// heads-up, the small blind (seat after the dealer) acts first
	a.Equal("2", tbl.ActingPlayerID())
	_, err = tbl.Act("1", Check, 0)
	a.Equal(ErrNotYourTurn, err)
}

func TestTable_headsUpBlindsAndFlop(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	tbl := testTable(DefaultOptions())
	_, _ = tbl.Seat("1", "Alice")
	_, _ = tbl.Seat("2", "Bob")

	_, err := tbl.StartHand()
	r.NoError(err)

	state := tbl.PublicState()
	a.Equal("preflop", state.Street)
	a.Equal(10, state.CurrentBet)
	a.Equal(15, state.Pot)
	a.Equal("2", state.ActingPlayerID)

	// small blind completes, big blind checks behind
	_, err = tbl.Act("2", Call, 0)
	r.NoError(err)
	a.Equal("1", tbl.ActingPlayerID())

	result, err := tbl.Act("1", Check, 0)
	r.NoError(err)
	a.Nil(result)

	state = tbl.PublicState()
	a.Equal("flop", state.Street)
	a.Len(state.Community, 3)
	a.Equal(20, state.Pot)
	a.Equal(0, state.CurrentBet)
}

func TestTable_playthroughToShowdown(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	tbl := testTable(DefaultOptions())
	_, _ = tbl.Seat("a", "Alice")
	_, _ = tbl.Seat("b", "Bob")
	_, _ = tbl.Seat("c", "Carol")

	_, err := tbl.StartHand()
	r.NoError(err)
	a.Equal(3000, totalChips(tbl))

	// dealer is "a", so the hand runs b (small blind), c (big blind), a
	pa, pb, pc := tbl.playerByID("a"), tbl.playerByID("b"), tbl.playerByID("c")
	pa.holeCards = deck.CardsFromString("14s,14d")
	pb.holeCards = deck.CardsFromString("12s,12d")
	pc.holeCards = deck.CardsFromString("13s,13d")
	tbl.deck.Cards = deck.CardsFromString("2c,7d,9h,11c,4s")

	// preflop: first to act is the player after the big blind
	a.Equal("a", tbl.ActingPlayerID())
	_, err = tbl.Act("a", Call, 0)
	r.NoError(err)
	_, err = tbl.Act("b", Call, 0)
	r.NoError(err)
	_, err = tbl.Act("c", Check, 0)
	r.NoError(err)

	a.Equal("flop", tbl.PublicState().Street)
	a.Equal("b", tbl.ActingPlayerID())

	_, err = tbl.Act("b", Check, 0)
	r.NoError(err)
	_, err = tbl.Act("c", Bet, 50)
	r.NoError(err)
	_, err = tbl.Act("a", Call, 0)
	r.NoError(err)
	_, err = tbl.Act("b", Fold, 0)
	r.NoError(err)

	a.Equal("turn", tbl.PublicState().Street)
	a.Equal("c", tbl.ActingPlayerID())

	_, err = tbl.Act("c", Check, 0)
	r.NoError(err)
	_, err = tbl.Act("a", Check, 0)
	r.NoError(err)

	a.Equal("river", tbl.PublicState().Street)

	_, err = tbl.Act("c", Bet, 100)
	r.NoError(err)
	result, err := tbl.Act("a", Call, 0)
	r.NoError(err)
	r.NotNil(result)

	r.Len(result.Winners, 1)
	a.Equal("a", result.Winners[0].PlayerID)
	a.Equal(330, result.Winners[0].Amount)
	a.Equal("Pair", result.Winners[0].Hand)

	a.Equal(1170, pa.Stack())
	a.Equal(990, pb.Stack())
	a.Equal(840, pc.Stack())
	a.Equal(StageWaitingForPlayers, tbl.Stage())

	// showdown hands are revealed in the public state
	state := tbl.PublicState()
	for _, seat := range state.Seats {
		switch seat.ID {
		case "b":
			a.Empty(seat.HoleCards)
		default:
			a.Len(seat.HoleCards, 2)
			a.Equal("Pair", seat.Hand)
		}
	}
}

func TestTable_allInCreatesSidePot(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	tbl := testTable(DefaultOptions())
	big, _ := tbl.Seat("big", "Alice")
	short, _ := tbl.Seat("short", "Bob")
	short.stack = 500

	_, err := tbl.StartHand()
	r.NoError(err)

	big.holeCards = deck.CardsFromString("13s,13d")
	short.holeCards = deck.CardsFromString("14s,14d")
	tbl.deck.Cards = deck.CardsFromString("2c,7d,9h,11c,4s")

	// short is the small blind and acts first preflop
	_, err = tbl.Act("short", Call, 0)
	r.NoError(err)
	_, err = tbl.Act("big", Raise, 1000)
	r.NoError(err)

	result, err := tbl.Act("short", Call, 0)
	r.NoError(err)
	r.NotNil(result)

	// short wins the main pot of 1000; big's unmatched 500 comes back as a side pot
	r.Len(result.Winners, 2)
	a.Equal(Winner{PlayerID: "short", Name: "Bob", Amount: 1000, Hand: "Pair"}, result.Winners[0])
	a.Equal(Winner{PlayerID: "big", Name: "Alice", Amount: 500, Hand: "Pair"}, result.Winners[1])

	a.Equal(1000, short.Stack())
	a.Equal(500, big.Stack())
}

func TestTable_foldEndsHandUncontested(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	tbl := testTable(DefaultOptions())
	p1, _ := tbl.Seat("1", "Alice")
	p2, _ := tbl.Seat("2", "Bob")

	_, err := tbl.StartHand()
	r.NoError(err)

	// the small blind folds; the big blind wins the blinds without a showdown
	result, err := tbl.Act("2", Fold, 0)
	r.NoError(err)
	r.NotNil(result)

	r.Len(result.Winners, 1)
	a.Equal("1", result.Winners[0].PlayerID)
	a.Equal(15, result.Winners[0].Amount)
	a.Empty(result.Winners[0].Hand)

	a.Equal(1005, p1.Stack())
	a.Equal(995, p2.Stack())

	// no further community cards were revealed
	a.Empty(tbl.PublicState().Community)
}

func TestTable_forceFold(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	tbl := testTable(DefaultOptions())
	_, _ = tbl.Seat("1", "Alice")
	_, _ = tbl.Seat("2", "Bob")

	_, err := tbl.StartHand()
	r.NoError(err)

	// only the acting player can be forced to fold
	_, folded := tbl.ForceFold("1")
	a.False(folded)

	result, folded := tbl.ForceFold("2")
	a.True(folded)
	r.NotNil(result)
	a.Equal("1", result.Winners[0].PlayerID)
}

func TestTable_standMidHandFolds(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	tbl := testTable(DefaultOptions())
	p1, _ := tbl.Seat("1", "Alice")
	_, _ = tbl.Seat("2", "Bob")

	_, err := tbl.StartHand()
	r.NoError(err)

	// the big blind stands while the small blind is acting; their blind stays
	// in the pot and the hand ends uncontested
	result, err := tbl.Stand("1")
	r.NoError(err)
	r.NotNil(result)

	a.Equal("2", result.Winners[0].PlayerID)
	a.Equal(15, result.Winners[0].Amount)
	a.Equal(1010, tbl.playerByID("2").Stack())
	a.Len(tbl.Players(), 1)
	a.Equal(990, p1.Stack())
}

func TestTable_eliminationDeferredToNextHand(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	tbl := testTable(DefaultOptions())
	p1, _ := tbl.Seat("1", "Alice")
	p2, _ := tbl.Seat("2", "Bob")

	_, err := tbl.StartHand()
	r.NoError(err)

	p1.holeCards = deck.CardsFromString("13s,13d")
	p2.holeCards = deck.CardsFromString("14s,14d")
	tbl.deck.Cards = deck.CardsFromString("2c,7d,9h,11c,4s")

	_, err = tbl.Act("2", Raise, 1000)
	r.NoError(err)
	result, err := tbl.Act("1", Call, 0)
	r.NoError(err)
	r.NotNil(result)

	a.Equal(2000, p2.Stack())
	a.Equal(0, p1.Stack())

	// the busted seat stays visible until the next hand starts
	a.Len(tbl.Players(), 2)

	_, err = tbl.StartHand()
	a.Equal(ErrInsufficientPlayers, err)
	a.Len(tbl.Players(), 1)
}

func TestTable_reset(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	tbl := testTable(DefaultOptions())
	_, _ = tbl.Seat("1", "Alice")
	_, _ = tbl.Seat("2", "Bob")

	_, err := tbl.StartHand()
	r.NoError(err)

	tbl.Reset()
	a.Equal(StageWaitingForPlayers, tbl.Stage())
	a.Empty(tbl.Players())
	a.Empty(tbl.PublicState().Community)

	// a reset table seats players fresh
	p, err := tbl.Seat("1", "Alice")
	r.NoError(err)
	a.Equal(1000, p.Stack())
}

func TestTable_privateState(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	tbl := testTable(DefaultOptions())
	_, _ = tbl.Seat("1", "Alice")
	_, _ = tbl.Seat("2", "Bob")

	a.Nil(tbl.PrivateState("99"))

	_, err := tbl.StartHand()
	r.NoError(err)

	// the acting small blind sees its options and amounts
	state := tbl.PrivateState("2")
	r.NotNil(state)
	a.Len(state.HoleCards, 2)
	a.Equal([]Action{Call, Raise, Fold}, state.Actions)
	a.Equal(5, state.CallAmount)
	a.Equal(20, state.MinRaiseTo)
	a.Equal(1000, state.MaxBet)

	// everyone else gets an empty action list
	state = tbl.PrivateState("1")
	r.NotNil(state)
	a.Empty(state.Actions)
}

func TestTable_dealerRotates(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	tbl := testTable(DefaultOptions())
	_, _ = tbl.Seat("1", "Alice")
	_, _ = tbl.Seat("2", "Bob")
	_, _ = tbl.Seat("3", "Carol")

	_, err := tbl.StartHand()
	r.NoError(err)
	a.Equal(0, tbl.PublicState().DealerIndex)

	// first to act preflop is the player after the big blind
	a.Equal("1", tbl.ActingPlayerID())

	// everyone folds to the big blind
	_, err = tbl.Act("1", Fold, 0)
	r.NoError(err)
	result, err := tbl.Act("2", Fold, 0)
	r.NoError(err)
	r.NotNil(result)
	a.Equal("3", result.Winners[0].PlayerID)

	_, err = tbl.StartHand()
	r.NoError(err)
	a.Equal(1, tbl.PublicState().DealerIndex)
	a.Equal("2", tbl.ActingPlayerID())
}
