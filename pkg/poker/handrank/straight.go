package handrank

import (
	"sort"

	"cardroom-server/pkg/deck"
)

// bestStraight returns the high card of the best five-card run in the given
// ranks, or 0 if no straight exists. An ace counts both high and low, so the
// wheel (A-2-3-4-5) is found with a high card of 5.
func bestStraight(ranks []int) int {
	distinct := make(map[int]bool, len(ranks))
	for _, rank := range ranks {
		distinct[rank] = true
	}

	unique := make([]int, 0, len(distinct)+1)
	for rank := range distinct {
		unique = append(unique, rank)
	}

	if distinct[deck.Ace] {
		unique = append(unique, deck.LowAce)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(unique)))

	run := 1
	for i := 1; i < len(unique); i++ {
		if unique[i] == unique[i-1]-1 {
			run++
			if run == 5 {
				return unique[i] + 4
			}
		} else {
			run = 1
		}
	}

	return 0
}
