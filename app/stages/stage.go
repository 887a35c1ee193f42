// Package stages implements the generation stages of both pipelines. A stage
// is a pure function of (current state, parameters): it issues backend calls,
// parses the structured payloads, and returns a partial state update for the
// controller to merge. Stages never mutate shared state directly.
package stages

import (
	"context"

	"GoScribeAI/app/models"
	"GoScribeAI/app/state"
)

// Caller identifiers, passed to the backend through Options for logging and
// easy to key on in test stubs.
const (
	CallerConcept           = "concept_architect"
	CallerWorld             = "world_builder"
	CallerCharacterNames    = "character_names"
	CallerCharacterProfiles = "character_profiles"
	CallerOutline           = "story_outline"
	CallerDraft             = "chapter_draft"
	CallerEditTone          = "edit_tone"
	CallerEditShow          = "edit_show_dont_tell"
	CallerEditVocabulary    = "edit_vocabulary"
	CallerEditGeneral       = "edit_general"

	CallerEras      = "era_architect"
	CallerFactions  = "faction_forge"
	CallerSouls     = "soul_weaver"
	CallerConflicts = "conflict_designer"
	CallerRoutes    = "pathweaver"
)

// Retriever prunes draft context down to the excerpts relevant to a chapter.
// Optional; stages fall back to deterministic truncation without one.
type Retriever interface {
	Search(ctx context.Context, text string, k int) ([]string, error)
}

// BookParams carries the caller-supplied knobs for a novel run.
type BookParams struct {
	Title           string
	Themes          []string
	NumChapters     int
	NumCharacters   int
	Inquiry         map[string]string
	RestrictedWords []string
	Profiles        models.Profiles
	Retriever       Retriever
}

// Result is a stage's output: the partial update to merge plus a degraded flag
// set when the stage had to substitute its documented default.
type Result struct {
	Update   func(b *state.Book)
	Degraded bool
	Detail   string
}

// BookStage is one entry of the fixed pipeline table. Needs lists the stage
// names whose sections must be present before this stage may run; Done reports
// whether this stage's own output is already in the document.
type BookStage struct {
	Name  string
	Needs []string
	Run   func(ctx context.Context, m models.Interface, b *state.Book, p BookParams) (Result, error)
}

func (s BookStage) Done(b *state.Book) bool {
	return b.HasSection(s.Name)
}

// BookStages returns the fixed stage order for the novel pipeline. Chapter
// drafting and editing run after the table, per chapter, driven by the
// controller so each chapter persists independently.
func BookStages() []BookStage {
	return []BookStage{
		{
			Name: state.ProgressConcept,
			Run:  runConcept,
		},
		{
			Name:  state.ProgressWorld,
			Needs: []string{state.ProgressConcept},
			Run:   runWorld,
		},
		{
			Name:  state.ProgressCharacters,
			Needs: []string{state.ProgressConcept, state.ProgressWorld},
			Run:   runCharacters,
		},
		{
			Name:  state.ProgressOutline,
			Needs: []string{state.ProgressConcept, state.ProgressWorld, state.ProgressCharacters},
			Run:   runOutline,
		},
	}
}
