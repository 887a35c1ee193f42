package stages

import (
	"context"
	"fmt"

	"GoScribeAI/app/models"
	"GoScribeAI/app/parse"
	"GoScribeAI/app/state"
	"GoScribeAI/app/utils"
)

// runFactions generates the power blocs. Each carries a hidden truth and a
// dark secret, and rivals reference other factions from the same batch.
func runFactions(ctx context.Context, m models.Interface, l *state.Lore, p LoreParams) (LoreResult, error) {
	prompt := seedPreamble(l) + fmt.Sprintf(`
ERAS SO FAR: %s

Design %d factions competing for power in this world. Each faction has a
public ideology, a hidden truth its leaders conceal, and a dark secret that
would destroy it if revealed. Rivals must name other factions in this list.

Output JSON:
{
    "factions": [
        {
            "name": "Faction Name",
            "type": "religious_order | noble_house | guild | cult | militia",
            "ideology": "What they publicly stand for...",
            "hidden_truth": "What their leaders actually know...",
            "dark_secret": "What would destroy them...",
            "rivals": ["Other Faction Name"]
        }
    ]
}`, utils.DumpJSON(l.Eras, 800), p.NumFactions)

	var out struct {
		Factions []state.Faction `json:"factions"`
	}
	err := generateObject(ctx, m, prompt, p.Profiles.Creative.Options(CallerFactions), &out)
	if err != nil {
		if !parse.IsExhausted(err) {
			return LoreResult{}, err
		}
		return LoreResult{
			Update: func(l *state.Lore) {
				l.Factions = []state.Faction{{Name: "The Nameless Order", Type: "cult"}}
			},
			Degraded: true,
			Detail:   "factions defaulted to a single placeholder order",
		}, nil
	}

	if len(out.Factions) == 0 {
		out.Factions = []state.Faction{{Name: "The Nameless Order", Type: "cult"}}
	}
	return LoreResult{
		Update: func(l *state.Lore) { l.Factions = out.Factions },
		Detail: fmt.Sprintf("%d factions", len(out.Factions)),
	}, nil
}
