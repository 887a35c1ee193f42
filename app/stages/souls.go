package stages

import (
	"context"
	"fmt"
	"strings"

	"GoScribeAI/app/models"
	"GoScribeAI/app/parse"
	"GoScribeAI/app/state"
	"GoScribeAI/app/utils"
)

// runSouls generates the key characters of the lore. Each is tied to a
// faction and carries a fate for every route.
func runSouls(ctx context.Context, m models.Interface, l *state.Lore, p LoreParams) (LoreResult, error) {
	factionNames := make([]string, 0, len(l.Factions))
	for _, f := range l.Factions {
		factionNames = append(factionNames, f.Name)
	}

	prompt := seedPreamble(l) + fmt.Sprintf(`
FACTIONS: %s

Design %d key characters for this world. Each belongs to one of the factions
above, has a motivation rooted in the central tension, an inner demon, and a
distinct fate on each of the three routes: %s, %s, %s.
Draw names from the listed name cultures.

Output JSON:
{
    "characters": [
        {
            "name": "Name",
            "title": "Epithet or rank",
            "archetype": "Jungian archetype",
            "faction": "One of the faction names above",
            "motivation": "What drives them...",
            "inner_demon": "The flaw that may consume them...",
            "fate_by_route": {
                "light": "Their fate on the light route...",
                "shadow": "Their fate on the shadow route...",
                "neutral": "Their fate on the neutral route..."
            }
        }
    ]
}`, utils.DumpJSON(factionNames, 400), p.NumCharacters,
		state.RouteLight, state.RouteShadow, state.RouteNeutral)

	var out struct {
		Characters []state.LoreCharacter `json:"characters"`
	}
	err := generateObject(ctx, m, prompt, p.Profiles.CharacterGeneration.Options(CallerSouls), &out)
	if err != nil {
		if !parse.IsExhausted(err) {
			return LoreResult{}, err
		}
		return LoreResult{
			Update: func(l *state.Lore) {
				l.Characters = []state.LoreCharacter{{Name: "The Unnamed", Archetype: "Unknown"}}
			},
			Degraded: true,
			Detail:   "characters defaulted to a single unnamed soul",
		}, nil
	}

	if len(out.Characters) == 0 {
		out.Characters = []state.LoreCharacter{{Name: "The Unnamed", Archetype: "Unknown"}}
	}
	return LoreResult{
		Update: func(l *state.Lore) { l.Characters = out.Characters },
		Detail: "souls: " + strings.Join(loreCharacterNames(out.Characters), ", "),
	}, nil
}

func loreCharacterNames(chars []state.LoreCharacter) []string {
	names := make([]string, 0, len(chars))
	for _, c := range chars {
		names = append(names, c.Name)
	}
	return names
}
