package server

import (
	"math"
	"sort"
)

// scoreRound ranks every player by how close their guess landed to the item's
// price. Players without a finite guess get a diff of +Inf, so they can never
// tie for the win and always rank last. Ties on equal diffs keep join order
// (the sort is stable and the input is built in player order).
//
// Winners are all players at the minimum diff; losers all players at the
// maximum diff, but only when the two differ — a lone extreme is never both.
func scoreRound(roundNumber int, players []Player, guesses map[int]float64, category string, item Item) RoundResult {
	diffs := make([]PlayerDiff, 0, len(players))
	for _, player := range players {
		entry := PlayerDiff{
			PlayerID: player.ID,
			Name:     player.Name,
			Diff:     math.Inf(1),
		}
		if guess, ok := guesses[player.ID]; ok && !math.IsNaN(guess) && !math.IsInf(guess, 0) {
			entry.Diff = math.Abs(guess - item.Price)
			entry.Guess = floatPtr(guess)
		}
		diffs = append(diffs, entry)
	}
	sort.SliceStable(diffs, func(i, j int) bool {
		return diffs[i].Diff < diffs[j].Diff
	})

	result := RoundResult{
		Round:    roundNumber,
		Category: category,
		Item:     item,
		Diffs:    diffs,
	}
	if len(diffs) == 0 {
		return result
	}

	minDiff := diffs[0].Diff
	maxDiff := diffs[len(diffs)-1].Diff
	for _, entry := range diffs {
		if entry.Diff == minDiff {
			result.Winners = append(result.Winners, entry.PlayerID)
		}
	}
	if maxDiff != minDiff {
		for _, entry := range diffs {
			if entry.Diff == maxDiff {
				result.Losers = append(result.Losers, entry.PlayerID)
			}
		}
	}
	return result
}

// applyScores mutates player scores in place: +1 per win, -1 per loss.
func applyScores(players []Player, result RoundResult) {
	deltas := make(map[int]int, len(result.Winners)+len(result.Losers))
	for _, id := range result.Winners {
		deltas[id]++
	}
	for _, id := range result.Losers {
		deltas[id]--
	}
	for i := range players {
		players[i].Score += deltas[players[i].ID]
	}
}
