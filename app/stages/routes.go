package stages

import (
	"context"
	"fmt"

	"GoScribeAI/app/models"
	"GoScribeAI/app/parse"
	"GoScribeAI/app/state"
	"GoScribeAI/app/utils"
)

// runRoutes generates the three narrative routes. The output always carries
// the light, shadow and neutral keys so downstream consumers can rely on them.
func runRoutes(ctx context.Context, m models.Interface, l *state.Lore, p LoreParams) (LoreResult, error) {
	prompt := seedPreamble(l) + fmt.Sprintf(`
CONFLICTS: %s
CHARACTERS: %s

Design the three narrative routes through this world, each spanning roughly
%d chapters. Every route demands a sacrifice and ends differently.

Output JSON:
{
    "routes": {
        "light": {
            "name": "Route Name",
            "philosophy": "The belief that guides this path...",
            "sacrifice": "What must be given up...",
            "ending": "Where this path leads..."
        },
        "shadow": { ...same fields... },
        "neutral": { ...same fields... }
    }
}`, utils.DumpJSON(l.Conflicts, 600), utils.DumpJSON(loreCharacterNames(l.Characters), 400), p.ChaptersPerRoute)

	var out struct {
		Routes map[string]state.Route `json:"routes"`
	}
	err := generateObject(ctx, m, prompt, p.Profiles.Creative.Options(CallerRoutes), &out)
	if err != nil {
		if !parse.IsExhausted(err) {
			return LoreResult{}, err
		}
		return LoreResult{
			Update:   func(l *state.Lore) { l.Routes = defaultRoutes() },
			Degraded: true,
			Detail:   "routes defaulted to named placeholders",
		}, nil
	}

	routes := out.Routes
	if routes == nil {
		routes = map[string]state.Route{}
	}
	for key, name := range map[string]string{
		state.RouteLight:   "The Path of Embers",
		state.RouteShadow:  "The Path of Hollows",
		state.RouteNeutral: "The Path of Thorns",
	} {
		if r, ok := routes[key]; !ok || r.Name == "" {
			if !ok {
				r = state.Route{}
			}
			if r.Name == "" {
				r.Name = name
			}
			routes[key] = r
		}
	}
	return LoreResult{
		Update: func(l *state.Lore) { l.Routes = routes },
		Detail: fmt.Sprintf("%d routes", len(routes)),
	}, nil
}

func defaultRoutes() map[string]state.Route {
	return map[string]state.Route{
		state.RouteLight:   {Name: "The Path of Embers"},
		state.RouteShadow:  {Name: "The Path of Hollows"},
		state.RouteNeutral: {Name: "The Path of Thorns"},
	}
}
