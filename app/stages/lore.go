package stages

import (
	"context"
	"fmt"
	"strings"

	"GoScribeAI/app/models"
	"GoScribeAI/app/state"
)

// LoreParams carries the caller-supplied knobs for a game-lore run.
type LoreParams struct {
	ProjectName      string
	NumEras          int
	NumFactions      int
	NumCharacters    int
	NumConflicts     int
	ChaptersPerRoute int
	Profiles         models.Profiles
}

// LoreResult mirrors Result for the lore document.
type LoreResult struct {
	Update   func(l *state.Lore)
	Degraded bool
	Detail   string
}

// LoreStage is one entry of the fixed lore pipeline table.
type LoreStage struct {
	Name  string
	Needs []string
	Run   func(ctx context.Context, m models.Interface, l *state.Lore, p LoreParams) (LoreResult, error)
}

func (s LoreStage) Done(l *state.Lore) bool {
	return l.HasPhase(s.Name)
}

// LoreStages returns the fixed phase order for the lore pipeline.
func LoreStages() []LoreStage {
	return []LoreStage{
		{
			Name: state.PhaseEras,
			Run:  runEras,
		},
		{
			Name:  state.PhaseFactions,
			Needs: []string{state.PhaseEras},
			Run:   runFactions,
		},
		{
			Name:  state.PhaseSouls,
			Needs: []string{state.PhaseEras, state.PhaseFactions},
			Run:   runSouls,
		},
		{
			Name:  state.PhaseConflicts,
			Needs: []string{state.PhaseFactions, state.PhaseSouls},
			Run:   runConflicts,
		},
		{
			Name:  state.PhaseRoutes,
			Needs: []string{state.PhaseSouls, state.PhaseConflicts},
			Run:   runRoutes,
		},
	}
}

// seedPreamble renders the shared variety constraints for every lore prompt.
func seedPreamble(l *state.Lore) string {
	s := l.VarietySeeds
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("PROJECT: %s (tone: %s)\n", l.ProjectName, l.Tone))
	sb.WriteString(fmt.Sprintf("NAME CULTURES: %s\n", strings.Join(s.NameCultures, ", ")))
	sb.WriteString(fmt.Sprintf("EMOTIONAL CORE: %s\n", s.EmotionSeed))
	sb.WriteString(fmt.Sprintf("AESTHETIC: %s\n", s.AestheticSeed))
	sb.WriteString(fmt.Sprintf("CENTRAL TENSION: %s\n", s.ConflictSeed))
	if len(s.BannedWords) > 0 {
		sb.WriteString(fmt.Sprintf("AVOID THESE OVERUSED WORDS: %s\n", strings.Join(s.BannedWords, ", ")))
	}
	return sb.String()
}
