package stages

import (
	"context"
	"fmt"
	"strings"

	"GoScribeAI/app/models"
	"GoScribeAI/app/parse"
	"GoScribeAI/app/state"
)

// runWorld generates the world bible: locations, lore entries and the magic
// system, in a single batched call.
func runWorld(ctx context.Context, m models.Interface, b *state.Book, p BookParams) (Result, error) {
	prompt := fmt.Sprintf(`Create a detailed 'World Bible' for a Dark Fantasy book titled %q.
Themes: %s

Output a JSON object with the following structure:
{
    "locations": [
        {
            "name": "Location Name",
            "description": "Atmospheric description...",
            "significance": "Why this place matters..."
        }
    ],
    "lore": [
        {
            "topic": "History/Magic/Religion",
            "details": "Detailed explanation..."
        }
    ],
    "magic_system": "Description of the magic system, its costs, and limitations."
}`, b.Title, strings.Join(b.ThemeKeywords, ", "))

	var world state.WorldBible
	err := generateObject(ctx, m, prompt, p.Profiles.Creative.Options(CallerWorld), &world)
	if err != nil {
		if !parse.IsExhausted(err) {
			return Result{}, err
		}
		return Result{
			Update:   func(b *state.Book) { b.SetWorldBible(state.WorldBible{}) },
			Degraded: true,
			Detail:   "world bible defaulted to empty sections",
		}, nil
	}

	return Result{
		Update: func(b *state.Book) { b.SetWorldBible(world) },
		Detail: fmt.Sprintf("%d locations, %d lore entries", len(world.Locations), len(world.Lore)),
	}, nil
}
