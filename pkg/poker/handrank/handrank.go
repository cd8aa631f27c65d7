package handrank

import (
	"errors"
	"fmt"
	"sort"

	"cardroom-server/pkg/deck"
)

// ErrInvalidHandSize is an error when fewer than 5 or more than 7 cards are evaluated
var ErrInvalidHandSize = errors.New("hand must contain between 5 and 7 cards")

// Rank is a fully resolved poker hand rank. Two ranks are totally ordered by
// their strength, with kicker ties broken down to an exact tie.
type Rank struct {
	category Category
	kickers  []int
	strength int
}

// Evaluate returns the best 5-card rank the given 5-7 cards can make
func Evaluate(cards []*deck.Card) (*Rank, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return nil, ErrInvalidHandSize
	}

	seen := make(map[deck.Card]bool)
	for _, card := range cards {
		if seen[*card] {
			return nil, fmt.Errorf("duplicate card in hand: %s", card)
		}
		seen[*card] = true
	}

	e := newEvaluation(cards)
	category, kickers := e.bestHand()

	return &Rank{
		category: category,
		kickers:  kickers,
		strength: encodeStrength(category, kickers),
	}, nil
}

// Category returns the hand category
func (r *Rank) Category() Category {
	return r.category
}

// Kickers returns the tie-break ranks, strongest first
func (r *Rank) Kickers() []int {
	return r.kickers
}

// Strength returns a value that totally orders hands. A higher strength
// always beats a lower one, and equal strengths are an exact tie.
func (r *Rank) Strength() int {
	return r.strength
}

// Compare returns >0 if r beats other, <0 if other beats r, and 0 on a tie
func (r *Rank) Compare(other *Rank) int {
	return r.strength - other.strength
}

func (r *Rank) String() string {
	return r.category.String()
}

// encodeStrength packs a category and up to five kickers into a single
// comparable integer. Each kicker occupies a base-15 digit below the category.
func encodeStrength(category Category, kickers []int) int {
	strength := int(category)
	for i := 0; i < 5; i++ {
		kicker := 0
		if i < len(kickers) {
			kicker = kickers[i]
		}

		strength = strength*15 + kicker
	}

	return strength
}

// evaluation holds the intermediate card groupings for a single hand
type evaluation struct {
	// distinct ranks held, descending
	ranks []int
	// number of cards per rank
	rankCounts map[int]int
	// quads, trips, and pairs hold ranks by group size, descending
	quads []int
	trips []int
	pairs []int
	// flushRanks are the top five ranks of the flush suit, or nil
	flushRanks []int
	// straight and straightFlush are the high card of the run, or 0
	straight      int
	straightFlush int
}

func newEvaluation(cards []*deck.Card) *evaluation {
	e := &evaluation{
		rankCounts: make(map[int]int),
	}

	suitCards := make(map[deck.Suit][]int)
	for _, card := range cards {
		e.rankCounts[card.Rank]++
		suitCards[card.Suit] = append(suitCards[card.Suit], card.Rank)
	}

	for rank, count := range e.rankCounts {
		e.ranks = append(e.ranks, rank)
		switch count {
		case 4:
			e.quads = append(e.quads, rank)
		case 3:
			e.trips = append(e.trips, rank)
		case 2:
			e.pairs = append(e.pairs, rank)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(e.ranks)))
	sort.Sort(sort.Reverse(sort.IntSlice(e.quads)))
	sort.Sort(sort.Reverse(sort.IntSlice(e.trips)))
	sort.Sort(sort.Reverse(sort.IntSlice(e.pairs)))

	e.straight = bestStraight(e.ranks)

	for _, suited := range suitCards {
		if len(suited) < 5 {
			continue
		}

		sort.Sort(sort.Reverse(sort.IntSlice(suited)))
		e.flushRanks = suited[0:5]
		e.straightFlush = bestStraight(suited)
		break
	}

	return e
}

// bestHand resolves the strongest category and its kicker vector
func (e *evaluation) bestHand() (Category, []int) {
	if e.straightFlush == deck.Ace {
		return RoyalFlush, []int{e.straightFlush}
	}

	if e.straightFlush > 0 {
		return StraightFlush, []int{e.straightFlush}
	}

	if len(e.quads) > 0 {
		quad := e.quads[0]
		return FourOfAKind, []int{quad, e.bestKicker(1, quad)[0]}
	}

	if trips, pair, ok := e.fullHouse(); ok {
		return FullHouse, []int{trips, pair}
	}

	if e.flushRanks != nil {
		return Flush, e.flushRanks
	}

	if e.straight > 0 {
		return Straight, []int{e.straight}
	}

	if len(e.trips) > 0 {
		trips := e.trips[0]
		return ThreeOfAKind, append([]int{trips}, e.bestKicker(2, trips)...)
	}

	if len(e.pairs) >= 2 {
		high, low := e.pairs[0], e.pairs[1]
		return TwoPair, []int{high, low, e.bestKicker(1, high, low)[0]}
	}

	if len(e.pairs) == 1 {
		pair := e.pairs[0]
		return OnePair, append([]int{pair}, e.bestKicker(3, pair)...)
	}

	return HighCard, e.ranks[0:5]
}

// fullHouse returns the best trips+pair combination, if one exists.
// With seven cards the pair may come from a second set of trips.
func (e *evaluation) fullHouse() (trips, pair int, ok bool) {
	if len(e.trips) == 0 {
		return 0, 0, false
	}

	trips = e.trips[0]

	if len(e.trips) >= 2 {
		pair = e.trips[1]
	}

	if len(e.pairs) > 0 && e.pairs[0] > pair {
		pair = e.pairs[0]
	}

	if pair == 0 {
		return 0, 0, false
	}

	return trips, pair, true
}

// bestKicker returns the n highest distinct ranks not in the exclude list
func (e *evaluation) bestKicker(n int, exclude ...int) []int {
	excluded := make(map[int]bool, len(exclude))
	for _, rank := range exclude {
		excluded[rank] = true
	}

	kickers := make([]int, 0, n)
	for _, rank := range e.ranks {
		if excluded[rank] {
			continue
		}

		kickers = append(kickers, rank)
		if len(kickers) == n {
			break
		}
	}

	return kickers
}
