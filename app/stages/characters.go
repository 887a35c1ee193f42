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

// Extra name-generation calls allowed when the model keeps returning names
// that collide with already-generated ones.
const nameRetries = 2

// runCharacters creates the cast in two phases: a hot name-generation call
// (checked for uniqueness against existing names, with a disambiguating suffix
// as last resort), then a profile-elaboration call over the final name list.
func runCharacters(ctx context.Context, m models.Interface, b *state.Book, p BookParams) (Result, error) {
	names, nameDegraded, err := generateNames(ctx, m, b, p)
	if err != nil {
		return Result{}, err
	}

	chars, profileDegraded, err := generateProfiles(ctx, m, b, p, names)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Update:   func(b *state.Book) { b.AddCharacters(chars) },
		Degraded: nameDegraded || profileDegraded,
		Detail:   "cast: " + strings.Join(names, ", "),
	}, nil
}

func generateNames(ctx context.Context, m models.Interface, b *state.Book, p BookParams) ([]string, bool, error) {
	taken := make(map[string]bool)
	for _, name := range b.CharacterNames() {
		taken[strings.ToLower(name)] = true
	}

	var accepted []string
	degraded := false
	for attempt := 0; attempt <= nameRetries && len(accepted) < p.NumCharacters; attempt++ {
		need := p.NumCharacters - len(accepted)
		prompt := fmt.Sprintf(`GENERATE %d unique character names for the dark fantasy novel %q.
The names MUST be evocative, non-archetypical, and MUST NOT repeat any of: [%s].

OUTPUT FORMAT (JSON ONLY):
{"names": ["Name 1", "Name 2"]}`, need, b.Title, strings.Join(append(b.CharacterNames(), accepted...), ", "))

		var out struct {
			Names []string `json:"names"`
		}
		err := generateObject(ctx, m, prompt, p.Profiles.CharacterGeneration.Options(CallerCharacterNames), &out)
		if err != nil {
			if parse.IsExhausted(err) {
				degraded = true
				break
			}
			return nil, false, err
		}

		for _, name := range out.Names {
			name = strings.TrimSpace(name)
			if name == "" || len(accepted) >= p.NumCharacters {
				continue
			}
			if taken[strings.ToLower(name)] {
				continue
			}
			taken[strings.ToLower(name)] = true
			accepted = append(accepted, name)
		}
	}

	// last resort: disambiguating suffix on colliding names, then placeholders
	for i := len(accepted); i < p.NumCharacters; i++ {
		base := fmt.Sprintf("Unnamed %d", i+1)
		if i < len(accepted) {
			base = accepted[i]
		}
		accepted = append(accepted, disambiguate(base, taken))
	}
	return accepted, degraded, nil
}

func disambiguate(name string, taken map[string]bool) string {
	if !taken[strings.ToLower(name)] {
		taken[strings.ToLower(name)] = true
		return name
	}
	for _, suffix := range []string{" II", " III", " IV", " V"} {
		candidate := name + suffix
		if !taken[strings.ToLower(candidate)] {
			taken[strings.ToLower(candidate)] = true
			return candidate
		}
	}
	return name
}

func generateProfiles(ctx context.Context, m models.Interface, b *state.Book, p BookParams, names []string) ([]state.Character, bool, error) {
	worldSummary := utils.DumpJSON(b.WorldBible, 1000)
	prompt := fmt.Sprintf(`Create complex dark fantasy character profiles for the book %q.
Characters to profile (use these EXACT names): %s
Themes: %s
World Context: %s

Use Jungian archetypes (Shadow, Anima/Animus, Persona, Self) to add depth.

Output a JSON object with a key "characters" containing a list of objects:
{
    "characters": [
        {
            "name": "Name",
            "archetype": "Jungian Archetype",
            "motivation": "Core drive",
            "flaw": "Fatal flaw",
            "description": "Physical and psychological description",
            "backstory": "Brief history"
        }
    ]
}`, b.Title, strings.Join(names, ", "), strings.Join(b.ThemeKeywords, ", "), worldSummary)

	var out struct {
		Characters []state.Character `json:"characters"`
	}
	err := generateObject(ctx, m, prompt, p.Profiles.CharacterGeneration.Options(CallerCharacterProfiles), &out)
	if err != nil && !parse.IsExhausted(err) {
		return nil, false, err
	}

	byName := make(map[string]state.Character, len(out.Characters))
	for _, c := range out.Characters {
		byName[strings.ToLower(strings.TrimSpace(c.Name))] = c
	}

	degraded := parse.IsExhausted(err)
	chars := make([]state.Character, 0, len(names))
	for i, name := range names {
		if c, ok := byName[strings.ToLower(name)]; ok {
			c.Name = name
			chars = append(chars, c)
			continue
		}
		// profile missing for this name: keep a minimal record by position
		if !degraded && i < len(out.Characters) {
			c := out.Characters[i]
			c.Name = name
			chars = append(chars, c)
			continue
		}
		degraded = true
		chars = append(chars, state.Character{Name: name, Archetype: "Unknown"})
	}
	return chars, degraded, nil
}
