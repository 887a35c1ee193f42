package stages

import (
	"context"
	"fmt"
	"log"
	"strings"

	"GoScribeAI/app/models"
	"GoScribeAI/app/state"
	"GoScribeAI/app/utils"
)

// closingTailChars bounds how much of the previous chapter's ending is fed
// into the next draft prompt for continuity.
const closingTailChars = 600

const reviseMarker = "TEXT TO REVISE:\n"

// DraftChapter writes the prose for outline entry index (0-based). The prompt
// carries the outline entry, the closing paragraphs of the previous chapter
// and world/character context, retrieved semantically when a Retriever is
// configured and summarized inline otherwise.
func DraftChapter(ctx context.Context, m models.Interface, b *state.Book, p BookParams, index int) (string, error) {
	if index < 0 || index >= len(b.Outline) {
		return "", fmt.Errorf("chapter index %d out of range (outline has %d entries)", index, len(b.Outline))
	}
	entry := b.Outline[index]

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Write Chapter %d (%q) of the dark fantasy novel %q.\n\n", entry.Number, entry.Title, b.Title))
	sb.WriteString("CHAPTER SUMMARY:\n" + entry.Summary + "\n\n")

	if index > 0 {
		if prev := b.ChapterText(index - 1); prev != "" {
			sb.WriteString("CLOSING OF PREVIOUS CHAPTER:\n" + utils.Tail(prev, closingTailChars) + "\n\n")
		}
	}

	sb.WriteString("CONTEXT:\n" + contextExcerpts(ctx, b, p, entry) + "\n\n")

	sb.WriteString(`GUIDELINES:
- Write immersive, atmospheric prose in third person limited.
- Show internal conflict through action and sensory detail.
- End on a note that pulls the reader into the next chapter.
- Output ONLY the chapter prose. No headings, no meta commentary.`)

	text, err := m.Generate(ctx, sb.String(), p.Profiles.Creative.Options(CallerDraft))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// contextExcerpts assembles world and character context for a draft prompt.
// With a Retriever configured, the outline entry drives a semantic lookup over
// the indexed world bible; otherwise a truncated dump stands in.
func contextExcerpts(ctx context.Context, b *state.Book, p BookParams, entry state.ChapterOutline) string {
	if p.Retriever != nil {
		excerpts, err := p.Retriever.Search(ctx, entry.Title+": "+entry.Summary, 4)
		if err != nil {
			log.Printf("⚠️ context retrieval failed, falling back to inline summary: %v", err)
		} else if len(excerpts) > 0 {
			return strings.Join(excerpts, "\n")
		}
	}
	return "World: " + utils.DumpJSON(b.WorldBible, 500) +
		"\nCharacters: " + utils.DumpJSON(b.Characters, 1000)
}

type editPass struct {
	caller      string
	instruction string
}

func editPasses(restricted []string) []editPass {
	return []editPass{
		{CallerEditTone, "Deepen the dark, introspective tone. Heighten atmosphere and dread without purple prose."},
		{CallerEditShow, "Convert exposition into scene. Replace told emotions with action, dialogue and sensory detail."},
		{CallerEditVocabulary, fmt.Sprintf("Eliminate weak and restricted words: [%s]. Replace them with precise, vivid alternatives.", strings.Join(restricted, ", "))},
		{CallerEditGeneral, "Final polish: fix pacing, tighten sentences, ensure continuity of names and places."},
	}
}

// EditChapter refines a draft through sequential passes (tone, show-don't-tell,
// vocabulary, general polish). Each pass rewrites the full text; an empty
// rewrite keeps the previous version, a transport error aborts the run.
func EditChapter(ctx context.Context, m models.Interface, b *state.Book, p BookParams, index int, draft string) (string, error) {
	text := draft
	for _, pass := range editPasses(p.RestrictedWords) {
		prompt := fmt.Sprintf(`You are a meticulous line editor for dark fantasy fiction.

TASK: %s

Rewrite the ENTIRE text. Output ONLY the revised prose.

%s%s`, pass.instruction, reviseMarker, text)

		revised, err := m.Generate(ctx, prompt, p.Profiles.Review.Options(pass.caller))
		if err != nil {
			return "", err
		}
		revised = strings.TrimSpace(revised)
		if revised == "" {
			log.Printf("⚠️ %s: empty revision for chapter %d, keeping previous text", pass.caller, index+1)
			continue
		}
		text = revised
	}
	return text, nil
}
