package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"GoScribeAI/app/state"
)

func TestManuscriptCompilesInOutlineOrder(t *testing.T) {
	b := &state.Book{Title: "The Hollow Crown"}
	b.SetOutline([]state.ChapterOutline{
		{Number: 1, Title: "Arrival"},
		{Number: 2, Title: "The Vigil"},
	})
	b.SetChapter(0, "She reached the gates at dusk.")

	md := Manuscript(b)
	require.True(t, strings.HasPrefix(md, "# The Hollow Crown\n\n"))
	require.Contains(t, md, "## Chapter 1: Arrival\n\nShe reached the gates at dusk.")
	require.Contains(t, md, "## Chapter 2: The Vigil\n\n*Not yet drafted.*")
	require.Less(t, strings.Index(md, "Chapter 1"), strings.Index(md, "Chapter 2"))
}

func TestLoreBibleSectionsAndFates(t *testing.T) {
	l := state.NewLore("Hollow Crown")
	l.VarietySeeds = state.VarietySeeds{
		NameCultures: []string{"norse", "slavic"},
		EmotionSeed:  "grief",
	}
	l.Cosmology = &state.Cosmology{CreationMyth: "The world froze mid-scream."}
	l.Eras = []state.Era{{Name: "The Shattering", Duration: "c. 40 years", Summary: "Everything broke.", IsCataclysm: true}}
	l.Characters = []state.LoreCharacter{{
		Name:      "Veyra",
		Archetype: "Shadow",
		FateByRoute: map[string]string{
			state.RouteLight:  "redeemed",
			state.RouteShadow: "consumed",
		},
	}}
	l.Routes = map[string]state.Route{
		state.RouteLight: {Name: "The Dawn Road", Ending: "renewal"},
	}

	md := LoreBible(l)
	require.Contains(t, md, "# Hollow Crown - Game Lore Bible")
	require.Contains(t, md, "*Generated with variety seeds: norse, slavic*")
	require.Contains(t, md, "*Emotional core: grief*")
	require.Contains(t, md, "### The Shattering ⚠️")
	require.Contains(t, md, "**Fates**: Light: redeemed | Shadow: consumed | Neutral: ?")
	require.Contains(t, md, "### The Dawn Road")
	require.NotContains(t, md, "## Factions")
}

func TestHTMLWrapsConvertedMarkdown(t *testing.T) {
	page, err := HTML("The Hollow Crown", "# Title\n\nSome *prose*.")
	require.NoError(t, err)
	require.Contains(t, page, "<title>The Hollow Crown</title>")
	require.Contains(t, page, "<h1>Title</h1>")
	require.Contains(t, page, "<em>prose</em>")
}

func TestBookTreeShowsChapterStatus(t *testing.T) {
	b := &state.Book{Title: "The Hollow Crown", Progress: state.ProgressOutline}
	b.SetOutline([]state.ChapterOutline{{Number: 1, Title: "Arrival"}, {Number: 2, Title: "The Vigil"}})
	b.SetChapter(0, "text")
	b.MarkDegraded(state.ProgressWorld)

	out := BookTree(b)
	require.Contains(t, out, "The Hollow Crown [outlining]")
	require.Contains(t, out, "1. Arrival [drafted]")
	require.Contains(t, out, "2. The Vigil [pending]")
	require.Contains(t, out, "world_building")
}
