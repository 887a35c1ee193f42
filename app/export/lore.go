package export

import (
	"fmt"
	"strings"

	"GoScribeAI/app/state"
)

// LoreBible renders the lore document as a markdown "Game Lore Bible".
// Sections appear only when populated, so a paused run still exports cleanly.
func LoreBible(l *state.Lore) string {
	var lines []string
	add := func(s string) { lines = append(lines, s) }

	add("# " + l.ProjectName + " - Game Lore Bible")
	add("")
	add(fmt.Sprintf("*Generated with variety seeds: %s*", strings.Join(l.VarietySeeds.NameCultures, ", ")))
	add(fmt.Sprintf("*Emotional core: %s*", orUnknown(l.VarietySeeds.EmotionSeed)))
	add("")
	add("---")
	add("")

	if c := l.Cosmology; c != nil {
		add("## Cosmology")
		add("")
		if c.CreationMyth != "" {
			add("**Creation Myth**: " + c.CreationMyth)
		}
		if c.DivineForces != "" {
			add("**Divine Forces**: " + c.DivineForces)
		}
		if c.ForbiddenKnowledge != "" {
			add("**Forbidden Knowledge**: " + c.ForbiddenKnowledge)
		}
		add("")
	}

	if len(l.Eras) > 0 {
		add("## Historical Eras")
		add("")
		for _, era := range l.Eras {
			marker := ""
			if era.IsCataclysm {
				marker = " ⚠️"
			}
			add("### " + era.Name + marker)
			add("*" + orDefault(era.Duration, "Unknown duration") + "*")
			add("")
			add(era.Summary)
			if era.DefiningEvent != "" {
				add("- **Defining Event**: " + era.DefiningEvent)
			}
			if era.Legacy != "" {
				add("- **Legacy**: " + era.Legacy)
			}
			add("")
		}
	}

	if len(l.Factions) > 0 {
		add("## Factions")
		add("")
		for _, f := range l.Factions {
			add("### " + f.Name)
			add("*" + orDefault(f.Type, "Unknown type") + "*")
			add("")
			add("**Ideology**: " + orUnknown(f.Ideology))
			if f.HiddenTruth != "" {
				add("**Hidden Truth**: " + f.HiddenTruth)
			}
			if f.DarkSecret != "" {
				add("**Dark Secret**: " + f.DarkSecret)
			}
			if len(f.Rivals) > 0 {
				add("**Rivals**: " + strings.Join(f.Rivals, ", "))
			}
			add("")
		}
	}

	if len(l.Characters) > 0 {
		add("## Characters")
		add("")
		for _, c := range l.Characters {
			add("### " + c.Name)
			if c.Title != "" {
				add("*" + c.Title + "*")
			}
			add("")
			add("**Archetype**: " + orUnknown(c.Archetype))
			add("**Faction**: " + orUnknown(c.Faction))
			add("**Motivation**: " + orUnknown(c.Motivation))
			if c.InnerDemon != "" {
				add("**Inner Demon**: " + c.InnerDemon)
			}
			if len(c.FateByRoute) > 0 {
				add(fmt.Sprintf("**Fates**: Light: %s | Shadow: %s | Neutral: %s",
					orFate(c.FateByRoute[state.RouteLight]),
					orFate(c.FateByRoute[state.RouteShadow]),
					orFate(c.FateByRoute[state.RouteNeutral])))
			}
			add("")
		}
	}

	if len(l.Conflicts) > 0 {
		add("## Conflicts")
		add("")
		for _, c := range l.Conflicts {
			add("### " + c.Name)
			add("*" + orDefault(c.Type, "Unknown type") + "*")
			add("")
			if c.RootCause != "" {
				add("**Root Cause**: " + c.RootCause)
			}
			if c.Tragedy != "" {
				add("**Tragedy**: " + c.Tragedy)
			}
			add("")
		}
	}

	if len(l.Routes) > 0 {
		add("## Story Routes")
		add("")
		for _, key := range []string{state.RouteLight, state.RouteShadow, state.RouteNeutral} {
			route, ok := l.Routes[key]
			if !ok || route.Name == "" {
				continue
			}
			add("### " + route.Name)
			if route.Philosophy != "" {
				add("*" + route.Philosophy + "*")
			}
			add("")
			if route.Sacrifice != "" {
				add("**Sacrifice**: " + route.Sacrifice)
			}
			if route.Ending != "" {
				add("**Ending**: " + route.Ending)
			}
			add("")
		}
	}

	return strings.Join(lines, "\n")
}

func orUnknown(s string) string {
	return orDefault(s, "Unknown")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func orFate(s string) string {
	return orDefault(s, "?")
}
