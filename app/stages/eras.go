package stages

import (
	"context"
	"fmt"

	"GoScribeAI/app/models"
	"GoScribeAI/app/parse"
	"GoScribeAI/app/state"
)

// runEras generates the cosmology and the historical eras in one call. At
// least one era is marked as a cataclysm.
func runEras(ctx context.Context, m models.Interface, l *state.Lore, p LoreParams) (LoreResult, error) {
	prompt := seedPreamble(l) + fmt.Sprintf(`
Design the cosmology and %d historical eras for this dark fantasy world.
Eras are chronological; at least one must be a world-shattering cataclysm.

Output JSON:
{
    "cosmology": {
        "creation_myth": "How the world came to be...",
        "divine_forces": "The gods or powers that shaped it...",
        "forbidden_knowledge": "What mortals were never meant to learn..."
    },
    "eras": [
        {
            "name": "Era Name",
            "duration": "e.g. 'c. 800 years'",
            "summary": "What defined this age...",
            "defining_event": "The event history remembers it for...",
            "legacy": "What it left behind...",
            "is_cataclysm": false
        }
    ]
}`, p.NumEras)

	var out struct {
		Cosmology state.Cosmology `json:"cosmology"`
		Eras      []state.Era     `json:"eras"`
	}
	err := generateObject(ctx, m, prompt, p.Profiles.Creative.Options(CallerEras), &out)
	if err != nil {
		if !parse.IsExhausted(err) {
			return LoreResult{}, err
		}
		return LoreResult{
			Update: func(l *state.Lore) {
				l.Cosmology = &state.Cosmology{}
				l.Eras = []state.Era{{Name: "The Unrecorded Age", IsCataclysm: true}}
			},
			Degraded: true,
			Detail:   "eras defaulted to a single unrecorded age",
		}, nil
	}

	if len(out.Eras) == 0 {
		out.Eras = []state.Era{{Name: "The Unrecorded Age", IsCataclysm: true}}
	}
	cosmo := out.Cosmology
	return LoreResult{
		Update: func(l *state.Lore) {
			l.Cosmology = &cosmo
			l.Eras = out.Eras
		},
		Detail: fmt.Sprintf("%d eras", len(out.Eras)),
	}, nil
}
