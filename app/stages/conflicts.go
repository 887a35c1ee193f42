package stages

import (
	"context"
	"fmt"

	"GoScribeAI/app/models"
	"GoScribeAI/app/parse"
	"GoScribeAI/app/state"
	"GoScribeAI/app/utils"
)

// runConflicts generates the major conflicts, grounded in the factions and
// characters already in the document.
func runConflicts(ctx context.Context, m models.Interface, l *state.Lore, p LoreParams) (LoreResult, error) {
	prompt := seedPreamble(l) + fmt.Sprintf(`
FACTIONS: %s
CHARACTERS: %s

Design %d major conflicts shaping this world. Each has a root cause buried in
history and a tragedy: the cost no side can escape.

Output JSON:
{
    "conflicts": [
        {
            "name": "Conflict Name",
            "type": "war | schism | blood_feud | uprising | cold_war",
            "root_cause": "The buried origin...",
            "tragedy": "The inescapable cost..."
        }
    ]
}`, utils.DumpJSON(l.Factions, 800), utils.DumpJSON(loreCharacterNames(l.Characters), 400), p.NumConflicts)

	var out struct {
		Conflicts []state.Conflict `json:"conflicts"`
	}
	err := generateObject(ctx, m, prompt, p.Profiles.Creative.Options(CallerConflicts), &out)
	if err != nil {
		if !parse.IsExhausted(err) {
			return LoreResult{}, err
		}
		return LoreResult{
			Update: func(l *state.Lore) {
				l.Conflicts = []state.Conflict{{Name: "The Silent War", Type: "cold_war"}}
			},
			Degraded: true,
			Detail:   "conflicts defaulted to a single silent war",
		}, nil
	}

	if len(out.Conflicts) == 0 {
		out.Conflicts = []state.Conflict{{Name: "The Silent War", Type: "cold_war"}}
	}
	return LoreResult{
		Update: func(l *state.Lore) { l.Conflicts = out.Conflicts },
		Detail: fmt.Sprintf("%d conflicts", len(out.Conflicts)),
	}, nil
}
