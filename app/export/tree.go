package export

import (
	"fmt"

	"github.com/xlab/treeprint"

	"GoScribeAI/app/state"
)

// BookTree renders the document's section status as a terminal tree.
func BookTree(b *state.Book) string {
	tree := treeprint.NewWithRoot(fmt.Sprintf("%s [%s]", b.Title, orDefault(b.Progress, "not_started")))

	concept := tree.AddBranch("concept")
	if b.Concept != nil {
		concept.AddNode("logline: " + orDefault(b.Concept.Logline, "(none)"))
	} else {
		concept.AddNode("(pending)")
	}

	world := tree.AddBranch("world_building")
	if b.WorldBible != nil {
		world.AddNode(fmt.Sprintf("%d locations", len(b.WorldBible.Locations)))
		world.AddNode(fmt.Sprintf("%d lore entries", len(b.WorldBible.Lore)))
	} else {
		world.AddNode("(pending)")
	}

	chars := tree.AddBranch("character_creation")
	if len(b.Characters) > 0 {
		for _, c := range b.Characters {
			chars.AddNode(c.Name)
		}
	} else {
		chars.AddNode("(pending)")
	}

	chapters := tree.AddBranch("chapters")
	if len(b.Outline) > 0 {
		for i, entry := range b.Outline {
			status := "pending"
			if b.ChapterText(i) != "" {
				status = "drafted"
			}
			chapters.AddNode(fmt.Sprintf("%d. %s [%s]", i+1, entry.Title, status))
		}
	} else {
		chapters.AddNode("(no outline)")
	}

	if len(b.DegradedSections) > 0 {
		degraded := tree.AddBranch("degraded")
		for _, s := range b.DegradedSections {
			degraded.AddNode(s)
		}
	}

	return tree.String()
}

// LoreTree renders the lore document's phase status as a terminal tree.
func LoreTree(l *state.Lore) string {
	tree := treeprint.NewWithRoot(fmt.Sprintf("%s [%s]", l.ProjectName, l.CurrentPhase))

	tree.AddNode(fmt.Sprintf("eras: %d", len(l.Eras)))
	tree.AddNode(fmt.Sprintf("factions: %d", len(l.Factions)))
	tree.AddNode(fmt.Sprintf("characters: %d", len(l.Characters)))
	tree.AddNode(fmt.Sprintf("conflicts: %d", len(l.Conflicts)))
	tree.AddNode(fmt.Sprintf("routes: %d", len(l.Routes)))

	if len(l.DegradedSections) > 0 {
		degraded := tree.AddBranch("degraded")
		for _, s := range l.DegradedSections {
			degraded.AddNode(s)
		}
	}

	return tree.String()
}
