package table

import (
	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/poker/handrank"
	"cardroom-server/pkg/poker/potmanager"

	"github.com/sirupsen/logrus"
)

// Options configures a table
type Options struct {
	SmallBlind int
	BigBlind   int
	BuyIn      int
	MaxSeats   int
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return Options{
		SmallBlind: 5,
		BigBlind:   10,
		BuyIn:      1000,
		MaxSeats:   9,
	}
}

// Table owns the authoritative state for one game room: the seated players,
// the deck, the community cards, and the active betting round. A Table is not
// safe for concurrent use; the room layer must serialize all calls.
type Table struct {
	logger logrus.FieldLogger
	opts   Options

	seats       []*Player
	dealerIndex int
	deck        *deck.Deck
	community   deck.Hand
	round       *BettingRound
	stage       Stage

	// hand holds the players dealt into the current hand, clockwise from the
	// seat after the dealer. Players who stand up mid-hand stay in this list
	// so their contributed chips remain in the pots as dead money.
	hand []*Player

	lastResult *HandResult
}

// New returns a new table
func New(logger logrus.FieldLogger, opts Options) *Table {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if opts.MaxSeats <= 0 || opts.MaxSeats > 9 {
		opts.MaxSeats = 9
	}

	return &Table{
		logger:      logger,
		opts:        opts,
		dealerIndex: -1,
		stage:       StageWaitingForPlayers,
	}
}

// Options returns the table options
func (t *Table) Options() Options {
	return t.opts
}

// Stage returns the table lifecycle stage
func (t *Table) Stage() Stage {
	return t.stage
}

// Seat seats a player with the house buy-in. Seating an already-seated
// player ID is a reconnect and returns the existing seat untouched.
func (t *Table) Seat(id, name string) (*Player, error) {
	if p := t.playerByID(id); p != nil {
		return p, nil
	}

	if len(t.seats) >= t.opts.MaxSeats {
		return nil, ErrTableFull
	}

	p := newPlayer(id, name, t.opts.BuyIn)
	t.seats = append(t.seats, p)

	t.logger.WithFields(logrus.Fields{
		"player": id,
		"name":   name,
		"buyIn":  t.opts.BuyIn,
	}).Info("player seated")

	return p, nil
}

// Stand removes the player's seat. If the player is in the current hand they
// are folded first, which may conclude the hand; the result is returned in
// that case.
func (t *Table) Stand(id string) (*HandResult, error) {
	p := t.playerByID(id)
	if p == nil {
		return nil, nil
	}

	for i, seat := range t.seats {
		if seat == p {
			t.seats = append(t.seats[0:i], t.seats[i+1:]...)
			if t.dealerIndex >= i {
				t.dealerIndex--
			}
			break
		}
	}

	t.logger.WithField("player", id).Info("player stood up")

	if t.stage == StageHandInProgress && t.inHand(p) && !p.folded {
		if t.round.ActingPlayer() == p {
			_ = t.round.apply(p, Fold, 0)
		} else {
			p.folded = true
		}

		return t.postAction()
	}

	return nil, nil
}

// StartHand begins a new hand: the button rotates, blinds are posted, each
// player receives two hole cards, and the preflop betting round opens with
// the first player after the big blind to act. Seats that busted during the
// previous hand are removed first.
//
// A result is returned in the rare case the hand resolves without any player
// input (every player all-in on their blind).
func (t *Table) StartHand() (*HandResult, error) {
	if t.stage == StageHandInProgress {
		return nil, ErrHandInProgress
	}

	t.removeEliminated()
	if len(t.seats) < 2 {
		return nil, ErrInsufficientPlayers
	}

	t.dealerIndex = (t.dealerIndex + 1) % len(t.seats)

	for _, p := range t.seats {
		p.newHand()
	}

	t.community = nil
	t.lastResult = nil
	t.deck = deck.NewShuffled()
	t.hand = t.handOrder()
	t.stage = StageHandInProgress

	for i := 0; i < 2; i++ {
		for _, p := range t.hand {
			card, err := t.deck.Draw()
			if err != nil {
				return nil, t.abortHand(err)
			}

			p.holeCards.AddCard(card)
		}
	}

	smallBlind, bigBlind := t.hand[0], t.hand[1]
	smallBlind.betTo(t.opts.SmallBlind)
	bigBlind.betTo(t.opts.BigBlind)

	t.logger.WithFields(logrus.Fields{
		"dealer":     t.seats[t.dealerIndex].ID,
		"smallBlind": smallBlind.ID,
		"bigBlind":   bigBlind.ID,
		"players":    len(t.hand),
	}).Info("hand started")

	// preflop action starts with the first player after the big blind
	t.round = newBettingRound(Preflop, rotated(t.hand, 2), t.opts.BigBlind, t.opts.BigBlind)

	return t.postAction()
}

// Act validates and applies a betting action for the player. For bets the
// amount is the total bet; for raises it is the total to raise to.
func (t *Table) Act(id string, action Action, amount int) (*HandResult, error) {
	if t.stage != StageHandInProgress {
		return nil, ErrNoHandInProgress
	}

	p := t.playerByID(id)
	if p == nil {
		return nil, ErrUnknownPlayer
	}

	if t.round.ActingPlayer() != p {
		return nil, ErrNotYourTurn
	}

	if err := t.round.apply(p, action, amount); err != nil {
		return nil, err
	}

	t.logger.WithFields(logrus.Fields{
		"player": id,
		"action": action,
		"amount": amount,
	}).Debug("action applied")

	return t.postAction()
}

// ForceFold unconditionally folds the player if it is their turn. This is the
// auto-fold path for illegal requests and cannot fail.
func (t *Table) ForceFold(id string) (*HandResult, bool) {
	if t.stage != StageHandInProgress {
		return nil, false
	}

	p := t.playerByID(id)
	if p == nil || t.round.ActingPlayer() != p {
		return nil, false
	}

	_ = t.round.apply(p, Fold, 0)
	t.logger.WithField("player", id).Info("player auto-folded")

	result, _ := t.postAction()
	return result, true
}

// Reset unconditionally discards all table state, including in-flight hands
// and every seat
func (t *Table) Reset() {
	t.seats = nil
	t.hand = nil
	t.round = nil
	t.deck = nil
	t.community = nil
	t.dealerIndex = -1
	t.stage = StageWaitingForPlayers
	t.lastResult = nil

	t.logger.Info("table reset")
}

// ActingPlayerID returns the ID of the player whose turn it is, or ""
func (t *Table) ActingPlayerID() string {
	if t.stage != StageHandInProgress {
		return ""
	}

	if p := t.round.ActingPlayer(); p != nil {
		return p.ID
	}

	return ""
}

// LastResult returns the result of the most recently completed hand, if the
// table has not started another hand since
func (t *Table) LastResult() *HandResult {
	return t.lastResult
}

// Players returns the seated players in seat order
func (t *Table) Players() []*Player {
	players := make([]*Player, len(t.seats))
	copy(players, t.seats)
	return players
}

// postAction resolves everything that follows a state change: early
// termination when one player remains, street advancement when the betting
// round closes, and the showdown after the river.
func (t *Table) postAction() (*HandResult, error) {
	for t.stage == StageHandInProgress {
		if t.unfoldedCount() == 1 {
			return t.finishEarly(), nil
		}

		if !t.round.Closed() {
			return nil, nil
		}

		if t.round.street == River {
			return t.showdown()
		}

		if err := t.nextStreet(); err != nil {
			return nil, t.abortHand(err)
		}
	}

	return nil, nil
}

// nextStreet reveals the next community cards and opens a fresh betting
// round with the first active player clockwise from the dealer
func (t *Table) nextStreet() error {
	for _, p := range t.hand {
		p.newStreet()
	}

	street := t.round.street + 1
	count := 1
	if street == Flop {
		count = 3
	}

	cards, err := t.deck.DrawCount(count)
	if err != nil {
		return err
	}

	t.community = append(t.community, cards...)

	order := make([]*Player, 0, len(t.hand))
	for _, p := range t.hand {
		if !p.folded {
			order = append(order, p)
		}
	}

	t.round = newBettingRound(street, order, 0, t.opts.BigBlind)

	t.logger.WithFields(logrus.Fields{
		"street":    street,
		"community": t.community.String(),
	}).Debug("street advanced")

	return nil
}

// finishEarly pays the full pot to the last unfolded player without a
// showdown or revealing further community cards
func (t *Table) finishEarly() *HandResult {
	var winner *Player
	for _, p := range t.hand {
		if !p.folded {
			winner = p
			break
		}
	}

	total := 0
	for _, p := range t.hand {
		total += p.contributed
	}

	winner.stack += total

	result := &HandResult{
		Winners: []Winner{{
			PlayerID: winner.ID,
			Name:     winner.Name,
			Amount:   total,
		}},
	}

	t.logger.WithFields(logrus.Fields{
		"winner": winner.ID,
		"amount": total,
	}).Info("hand won uncontested")

	t.finishHand(result)
	return result
}

// showdown evaluates every unfolded player's best hand and awards each pot
// tier to its best eligible hand(s), splitting ties with any remainder going
// to the earliest-acting winner
func (t *Table) showdown() (*HandResult, error) {
	ranks := make(map[string]*handrank.Rank)
	for _, p := range t.hand {
		if p.folded {
			continue
		}

		rank, err := handrank.Evaluate(append(p.holeCards.Clone(), t.community...))
		if err != nil {
			return nil, t.abortHand(err)
		}

		ranks[p.ID] = rank
		p.reveal = true
		p.handName = rank.String()
	}

	pots := potmanager.BuildPots(t.contributions())

	payouts := make(map[string]int)
	for _, pot := range pots {
		var winners []string
		best := -1
		for _, id := range pot.EligiblePlayerIDs {
			strength := ranks[id].Strength()
			if strength > best {
				best = strength
				winners = winners[:0]
			}

			if strength == best {
				winners = append(winners, id)
			}
		}

		for id, amount := range potmanager.Split(pot.Amount, winners) {
			payouts[id] += amount
		}
	}

	result := &HandResult{}
	for _, p := range t.hand {
		amount, ok := payouts[p.ID]
		if !ok {
			continue
		}

		p.stack += amount
		result.Winners = append(result.Winners, Winner{
			PlayerID: p.ID,
			Name:     p.Name,
			Amount:   amount,
			Hand:     p.handName,
		})

		t.logger.WithFields(logrus.Fields{
			"winner": p.ID,
			"amount": amount,
			"hand":   p.handName,
		}).Info("pot awarded")
	}

	t.finishHand(result)
	return result, nil
}

// finishHand returns the table to its waiting state. Busted seats stay
// visible with a zeroed stack until the next hand starts.
func (t *Table) finishHand(result *HandResult) {
	t.stage = StageWaitingForPlayers
	t.round = nil
	t.lastResult = result
}

// abortHand unwinds the current hand after an internal invariant violation:
// every contribution is returned and the table goes back to waiting
func (t *Table) abortHand(err error) error {
	t.logger.WithError(err).Error("aborting hand")

	for _, p := range t.hand {
		p.stack += p.contributed
		p.newHand()
	}

	t.hand = nil
	t.round = nil
	t.community = nil
	t.stage = StageWaitingForPlayers

	return err
}

// contributions returns each hand participant's total contribution in
// action-priority order (clockwise from the first seat after the dealer)
func (t *Table) contributions() []potmanager.Contribution {
	contributions := make([]potmanager.Contribution, len(t.hand))
	for i, p := range t.hand {
		contributions[i] = potmanager.Contribution{
			PlayerID: p.ID,
			Amount:   p.contributed,
			Folded:   p.folded,
		}
	}

	return contributions
}

// removeEliminated removes seats that finished the previous hand without
// chips. Removal is deferred to hand start so the final-state broadcast can
// still show the zeroed stack.
func (t *Table) removeEliminated() {
	var dealer *Player
	if t.dealerIndex >= 0 && t.dealerIndex < len(t.seats) {
		dealer = t.seats[t.dealerIndex]
	}

	remaining := make([]*Player, 0, len(t.seats))
	for _, p := range t.seats {
		if p.stack > 0 {
			remaining = append(remaining, p)
			continue
		}

		t.logger.WithField("player", p.ID).Info("player eliminated")
	}

	t.seats = remaining

	// keep the button on (or before) the same player so the next rotation
	// is still one seat clockwise
	t.dealerIndex = -1
	for i, p := range t.seats {
		if p == dealer {
			t.dealerIndex = i
			break
		}
	}
}

// handOrder returns the seated players clockwise from the seat after the dealer
func (t *Table) handOrder() []*Player {
	n := len(t.seats)
	order := make([]*Player, 0, n)
	for i := 1; i <= n; i++ {
		order = append(order, t.seats[(t.dealerIndex+i)%n])
	}

	return order
}

func (t *Table) playerByID(id string) *Player {
	for _, p := range t.seats {
		if p.ID == id {
			return p
		}
	}

	return nil
}

func (t *Table) inHand(p *Player) bool {
	for _, player := range t.hand {
		if player == p {
			return true
		}
	}

	return false
}

func (t *Table) unfoldedCount() int {
	count := 0
	for _, p := range t.hand {
		if !p.folded {
			count++
		}
	}

	return count
}

// rotated returns the players shifted left by n
func rotated(players []*Player, n int) []*Player {
	size := len(players)
	order := make([]*Player, 0, size)
	for i := 0; i < size; i++ {
		order = append(order, players[(i+n)%size])
	}

	return order
}
