package stages

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"GoScribeAI/app/models"
	"GoScribeAI/app/parse"
	"GoScribeAI/app/state"
)

// runConcept interprets the caller's free-form inquiry answers (or, without
// an inquiry, the raw title and themes) into a high-level story concept.
func runConcept(ctx context.Context, m models.Interface, b *state.Book, p BookParams) (Result, error) {
	var sb strings.Builder
	sb.WriteString("You are a Dark Fantasy Concept Architect. Interpret abstract, symbolic input and synthesize a concrete, compelling story concept.\n\n")
	if len(p.Inquiry) > 0 {
		sb.WriteString("THE INQUIRY RESPONSES:\n")
		questions := make([]string, 0, len(p.Inquiry))
		for q := range p.Inquiry {
			questions = append(questions, q)
		}
		sort.Strings(questions)
		for _, q := range questions {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", q, p.Inquiry[q]))
		}
	} else {
		sb.WriteString(fmt.Sprintf("WORKING TITLE: %q\nTHEME KEYWORDS: %s\n", b.Title, strings.Join(b.ThemeKeywords, ", ")))
	}
	sb.WriteString(`
TASK:
Look for underlying themes, emotional textures and contradictions, then generate a high-level concept for a Dark Fantasy novel.

OUTPUT FORMAT (JSON ONLY):
{
    "title": "A suggestive, atmospheric title",
    "logline": "A single sentence hook capturing protagonist, conflict, and stakes.",
    "synopsis": "A brief paragraph (3-4 sentences) outlining the core narrative arc.",
    "themes": ["Theme 1", "Theme 2", "Theme 3"],
    "tone": ["Tone 1", "Tone 2", "Tone 3"]
}`)

	var concept state.Concept
	err := generateObject(ctx, m, sb.String(), p.Profiles.Creative.Options(CallerConcept), &concept)
	if err != nil {
		if !parse.IsExhausted(err) {
			return Result{}, err
		}
		// documented default: carry the caller's raw inputs forward
		fallback := state.Concept{Title: b.Title, Themes: b.ThemeKeywords}
		return Result{
			Update:   func(b *state.Book) { b.SetConcept(fallback) },
			Degraded: true,
			Detail:   "concept defaulted to caller inputs",
		}, nil
	}

	return Result{
		Update: func(b *state.Book) { b.SetConcept(concept) },
		Detail: "logline: " + concept.Logline,
	}, nil
}
