package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"GoScribeAI/app/models"
	"GoScribeAI/app/stages"
	"GoScribeAI/app/state"
	"GoScribeAI/app/storage"
)

// scriptedModel answers by caller identifier so a whole run is deterministic.
type scriptedModel struct {
	calls     int
	overrides map[string]func(prompt string) (string, error)
}

func (s *scriptedModel) Generate(_ context.Context, prompt string, opts models.Options) (string, error) {
	s.calls++
	if fn, ok := s.overrides[opts.Caller]; ok {
		return fn(prompt)
	}
	switch opts.Caller {
	case stages.CallerConcept:
		return `{"title": "The Hollow Crown", "logline": "A queen rots with her city.",
			"synopsis": "Decay spreads.", "themes": ["decay", "sacrifice"], "tone": ["bleak"]}`, nil
	case stages.CallerWorld:
		return `{"locations": [{"name": "Valdrath", "description": "A drowned citadel."}],
			"lore": [{"topic": "History", "details": "The crown sank."}],
			"magic_system": "Blood-bound sorcery."}`, nil
	case stages.CallerCharacterNames:
		return `{"names": ["Maelis", "Veyra"]}`, nil
	case stages.CallerCharacterProfiles:
		return `{"characters": [
			{"name": "Maelis", "archetype": "Self", "motivation": "atonement"},
			{"name": "Veyra", "archetype": "Shadow", "motivation": "revenge"}
		]}`, nil
	case stages.CallerOutline:
		return `{"chapters": [
			{"chapter_number": 1, "title": "Arrival", "summary": "Maelis reaches the gates."},
			{"chapter_number": 2, "title": "The Vigil", "summary": "Veyra keeps watch."}
		]}`, nil
	case stages.CallerDraft:
		// echoing the prompt makes the draft carry its context verbatim
		return prompt, nil
	case stages.CallerEditTone, stages.CallerEditShow, stages.CallerEditVocabulary, stages.CallerEditGeneral:
		parts := strings.SplitN(prompt, "TEXT TO REVISE:\n", 2)
		return parts[1], nil
	}
	return "", fmt.Errorf("unexpected caller %s", opts.Caller)
}

type recordingNotifier struct {
	notices []Notice
}

func (r *recordingNotifier) Notify(_ context.Context, n Notice) {
	r.notices = append(r.notices, n)
}

func bookParams() stages.BookParams {
	return stages.BookParams{
		Title:           "The Hollow Crown",
		Themes:          []string{"decay", "sacrifice"},
		NumChapters:     2,
		NumCharacters:   2,
		RestrictedWords: []string{"very", "suddenly"},
		Profiles:        models.DefaultProfiles(),
	}
}

func TestRunBookPausesAfterWorldBuilding(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "book_state.json")
	m := &scriptedModel{}
	history := &storage.MockStorage{}
	history.On("SaveStageRun", mock.Anything, mock.Anything).Return(nil)
	notifier := &recordingNotifier{}

	c := NewController(m, statePath)
	c.History = history
	c.Notifiers = []Notifier{notifier}

	res := c.RunBook(context.Background(), bookParams(), nil, state.ProgressWorld)
	require.Equal(t, StatusPaused, res.Status)
	require.Equal(t, state.ProgressWorld, res.PausedAfter)
	require.NotNil(t, res.State.Concept)
	require.NotNil(t, res.State.WorldBible)
	require.Empty(t, res.State.Characters)
	require.Equal(t, state.ProgressWorld, res.State.Progress)
	require.Equal(t, 2, m.calls)

	saved, err := state.LoadBook(statePath)
	require.NoError(t, err)
	require.Equal(t, state.ProgressWorld, saved.Progress)

	history.AssertNumberOfCalls(t, "SaveStageRun", 2)
	require.Len(t, notifier.notices, 1)
	require.Equal(t, StatusPaused, notifier.notices[0].Status)
	require.Equal(t, state.ProgressWorld, notifier.notices[0].Stage)
}

func TestRunBookResumeIsIdempotent(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "book_state.json")
	first := NewController(&scriptedModel{}, statePath)
	res := first.RunBook(context.Background(), bookParams(), nil, state.ProgressWorld)
	require.Equal(t, StatusPaused, res.Status)

	saved, err := state.LoadBook(statePath)
	require.NoError(t, err)

	m := &scriptedModel{}
	res = NewController(m, statePath).RunBook(context.Background(), bookParams(), saved, state.ProgressWorld)
	require.Equal(t, StatusPaused, res.Status)
	require.Equal(t, state.ProgressWorld, res.PausedAfter)
	require.Equal(t, 0, m.calls)
}

func TestRunBookResumeReflectsHumanEdit(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "book_state.json")
	res := NewController(&scriptedModel{}, statePath).
		RunBook(context.Background(), bookParams(), nil, state.ProgressWorld)
	require.Equal(t, StatusPaused, res.Status)

	saved, err := state.LoadBook(statePath)
	require.NoError(t, err)
	saved.WorldBible.Locations[0].Name = "Gloomhaven"

	m := &scriptedModel{}
	final := NewController(m, statePath).RunBook(context.Background(), bookParams(), saved, "")
	require.Equal(t, StatusComplete, final.Status)
	require.Equal(t, state.ProgressComplete, final.State.Progress)
	require.Len(t, final.State.Chapters, 2)
	// names+profiles+outline plus 2 chapters at 1 draft and 4 edit passes each
	require.Equal(t, 13, m.calls)

	require.Contains(t, final.CompiledText, "# The Hollow Crown")
	require.Contains(t, final.CompiledText, "## Chapter 1: Arrival")
	require.Contains(t, final.CompiledText, "Gloomhaven")
	require.NotContains(t, final.CompiledText, "Valdrath")
}

func TestRunBookPauseResumeMatchesSingleRun(t *testing.T) {
	dir := t.TempDir()

	oneShot := NewController(&scriptedModel{}, filepath.Join(dir, "oneshot.json")).
		RunBook(context.Background(), bookParams(), nil, "")
	require.Equal(t, StatusComplete, oneShot.Status)

	twoStepPath := filepath.Join(dir, "twostep.json")
	paused := NewController(&scriptedModel{}, twoStepPath).
		RunBook(context.Background(), bookParams(), nil, state.ProgressCharacters)
	require.Equal(t, StatusPaused, paused.Status)

	saved, err := state.LoadBook(twoStepPath)
	require.NoError(t, err)
	resumed := NewController(&scriptedModel{}, twoStepPath).
		RunBook(context.Background(), bookParams(), saved, "")
	require.Equal(t, StatusComplete, resumed.Status)

	require.Equal(t, oneShot.State, resumed.State)
	require.Equal(t, oneShot.CompiledText, resumed.CompiledText)
}

func TestRunBookContinuesWhenStageDegrades(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "book_state.json")
	m := &scriptedModel{overrides: map[string]func(string) (string, error){
		stages.CallerWorld: func(string) (string, error) { return "the muse is silent today", nil },
	}}
	notifier := &recordingNotifier{}
	c := NewController(m, statePath)
	c.Notifiers = []Notifier{notifier}

	res := c.RunBook(context.Background(), bookParams(), nil, "")
	require.Equal(t, StatusComplete, res.Status)
	require.Contains(t, res.State.DegradedSections, state.ProgressWorld)
	require.NotNil(t, res.State.WorldBible)
	require.Len(t, res.State.Chapters, 2)

	require.Len(t, notifier.notices, 1)
	require.Equal(t, StatusComplete, notifier.notices[0].Status)
}

func TestRunBookTransportErrorIsFatal(t *testing.T) {
	boom := errors.New("connection refused")
	m := &scriptedModel{overrides: map[string]func(string) (string, error){
		stages.CallerConcept: func(string) (string, error) { return "", boom },
	}}
	notifier := &recordingNotifier{}
	c := NewController(m, filepath.Join(t.TempDir(), "book_state.json"))
	c.Notifiers = []Notifier{notifier}

	res := c.RunBook(context.Background(), bookParams(), nil, "")
	require.Equal(t, StatusError, res.Status)
	require.ErrorIs(t, res.Err, boom)
	require.NotNil(t, res.State)
	require.Len(t, notifier.notices, 1)
	require.Equal(t, StatusError, notifier.notices[0].Status)
}

func loreScript() *scriptedModel {
	return &scriptedModel{overrides: map[string]func(string) (string, error){
		stages.CallerEras: func(string) (string, error) {
			return `{"cosmology": {"creation_myth": "The world froze mid-scream."},
				"eras": [{"name": "The Shattering", "duration": "c. 40 years", "summary": "Everything broke.", "is_cataclysm": true}]}`, nil
		},
		stages.CallerFactions: func(string) (string, error) {
			return `{"factions": [{"name": "The Pale Synod", "type": "religious_order", "ideology": "Purity through stillness."}]}`, nil
		},
		stages.CallerSouls: func(string) (string, error) {
			return `{"characters": [{"name": "Veyra", "archetype": "Shadow", "faction": "The Pale Synod",
				"motivation": "revenge", "fate_by_route": {"light": "redeemed", "shadow": "consumed", "neutral": "forgotten"}}]}`, nil
		},
		stages.CallerConflicts: func(string) (string, error) {
			return `{"conflicts": [{"name": "The Silent War", "type": "cold_war", "root_cause": "A stolen relic."}]}`, nil
		},
		stages.CallerRoutes: func(string) (string, error) {
			return `{"routes": {
				"light": {"name": "The Dawn Road", "ending": "renewal"},
				"shadow": {"name": "The Long Dusk", "ending": "ruin"},
				"neutral": {"name": "The Grey March", "ending": "stalemate"}}}`, nil
		},
	}}
}

func TestRunLorePauseAndResumeKeepsSeeds(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "lore_state.json")
	p := stages.LoreParams{
		ProjectName: "Hollow Crown", NumEras: 1, NumFactions: 1,
		NumCharacters: 1, NumConflicts: 1, ChaptersPerRoute: 5,
		Profiles: models.DefaultProfiles(),
	}

	m := loreScript()
	c := NewController(m, statePath)
	c.Rand = rand.New(rand.NewSource(7))

	res := c.RunLore(context.Background(), p, nil, state.PhaseFactions)
	require.Equal(t, StatusPaused, res.Status)
	require.Equal(t, state.PhaseFactions, res.PausedAfter)
	require.Equal(t, 2, m.calls)
	require.False(t, res.State.VarietySeeds.Empty())
	seeds := res.State.VarietySeeds

	saved, err := state.LoadLore(statePath)
	require.NoError(t, err)

	m2 := loreScript()
	final := NewController(m2, statePath).RunLore(context.Background(), p, saved, "")
	require.Equal(t, StatusComplete, final.Status)
	require.Equal(t, 3, m2.calls)
	require.Equal(t, seeds, final.State.VarietySeeds)
	require.Equal(t, state.PhaseComplete, final.State.CurrentPhase)

	require.Contains(t, final.CompiledText, "# Hollow Crown - Game Lore Bible")
	require.Contains(t, final.CompiledText, "### The Shattering ⚠️")
	require.Contains(t, final.CompiledText, "### The Dawn Road")
}
