package server

import "math"

const (
	eventState    = "state"
	eventQuestion = "question"
	eventGuess    = "guess"
	eventResult   = "result"
)

// Wire payloads are plain maps so every event marshals to flat JSON the
// host display and phones can switch on by "type".

// questionPayload announces a new round. The item's price is withheld — only
// the result event reveals it.
func questionPayload(category string, item Item) map[string]any {
	return map[string]any{
		"type":     eventQuestion,
		"category": category,
		"item": map[string]any{
			"name":      item.Name,
			"image_url": item.ImageURL,
		},
	}
}

func guessPayload(playerID int, name string, guess float64) map[string]any {
	return map[string]any{
		"type":      eventGuess,
		"player_id": playerID,
		"name":      name,
		"guess":     guess,
	}
}

func resultPayload(result RoundResult) map[string]any {
	diffs := make([]map[string]any, 0, len(result.Diffs))
	for _, entry := range result.Diffs {
		row := map[string]any{
			"player_id": entry.PlayerID,
			"name":      entry.Name,
		}
		// +Inf marks "no guess" internally but is not valid JSON; absent
		// players are sent with null diff and no guess field.
		if math.IsInf(entry.Diff, 1) {
			row["diff"] = nil
		} else {
			row["diff"] = entry.Diff
			if entry.Guess != nil {
				row["guess"] = *entry.Guess
			}
		}
		diffs = append(diffs, row)
	}
	return map[string]any{
		"type":     eventResult,
		"round":    result.Round,
		"category": result.Category,
		"item": map[string]any{
			"name":      result.Item.Name,
			"price":     result.Item.Price,
			"image_url": result.Item.ImageURL,
		},
		"winners": intList(result.Winners),
		"losers":  intList(result.Losers),
		"diffs":   diffs,
	}
}

// intList keeps empty winner/loser sets as [] instead of null on the wire.
func intList(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
