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

// runOutline produces exactly NumChapters ordered entries. Entries that fail
// to reference a known character are regenerated once, then accepted as-is.
func runOutline(ctx context.Context, m models.Interface, b *state.Book, p BookParams) (Result, error) {
	entries, err := requestOutline(ctx, m, b, p)
	if err != nil {
		if !parse.IsExhausted(err) {
			return Result{}, err
		}
		fallback := defaultOutline(p.NumChapters)
		return Result{
			Update:   func(b *state.Book) { b.SetOutline(fallback) },
			Degraded: true,
			Detail:   "outline defaulted to generic chapters",
		}, nil
	}

	entries = normalizeOutline(entries, p.NumChapters)

	if bad := entriesWithoutCharacters(entries, b.CharacterNames()); len(bad) > 0 {
		entries, err = regenerateEntries(ctx, m, b, p, entries, bad)
		if err != nil && !parse.IsExhausted(err) {
			return Result{}, err
		}
	}

	return Result{
		Update: func(b *state.Book) { b.SetOutline(entries) },
		Detail: fmt.Sprintf("%d chapters outlined", len(entries)),
	}, nil
}

func requestOutline(ctx context.Context, m models.Interface, b *state.Book, p BookParams) ([]state.ChapterOutline, error) {
	prompt := fmt.Sprintf(`Create a chapter outline for %q with exactly %d chapters.
Themes: %s
World: %s
Characters: %s

Every chapter summary MUST name at least one of the listed characters.

Output JSON:
{
    "chapters": [
        {
            "chapter_number": 1,
            "title": "Chapter Title",
            "summary": "Plot summary..."
        }
    ]
}`, b.Title, p.NumChapters, strings.Join(b.ThemeKeywords, ", "),
		utils.DumpJSON(b.WorldBible, 500), utils.DumpJSON(b.Characters, 1000))

	var out struct {
		Chapters []state.ChapterOutline `json:"chapters"`
	}
	if err := generateObject(ctx, m, prompt, p.Profiles.Creative.Options(CallerOutline), &out); err != nil {
		return nil, err
	}
	return out.Chapters, nil
}

// normalizeOutline enforces the exact chapter count: surplus entries are
// dropped, missing ones padded with generic descriptors.
func normalizeOutline(entries []state.ChapterOutline, want int) []state.ChapterOutline {
	if len(entries) > want {
		entries = entries[:want]
	}
	for i := len(entries); i < want; i++ {
		entries = append(entries, state.ChapterOutline{Number: i + 1, Title: fmt.Sprintf("Chapter %d", i+1)})
	}
	for i := range entries {
		entries[i].Number = i + 1
	}
	return entries
}

func defaultOutline(n int) []state.ChapterOutline {
	return normalizeOutline(nil, n)
}

func entriesWithoutCharacters(entries []state.ChapterOutline, names []string) []int {
	var bad []int
	for i, e := range entries {
		text := strings.ToLower(e.Title + " " + e.Summary)
		found := false
		for _, name := range names {
			if name != "" && strings.Contains(text, strings.ToLower(name)) {
				found = true
				break
			}
		}
		if !found {
			bad = append(bad, i)
		}
	}
	return bad
}

func regenerateEntries(ctx context.Context, m models.Interface, b *state.Book, p BookParams, entries []state.ChapterOutline, bad []int) ([]state.ChapterOutline, error) {
	var list strings.Builder
	for _, i := range bad {
		list.WriteString(fmt.Sprintf("- chapter_number %d, title %q\n", entries[i].Number, entries[i].Title))
	}
	prompt := fmt.Sprintf(`The following outline entries for %q fail to mention any of the book's characters (%s):
%s
REWRITE exactly these entries so each summary names at least one character. Keep the same chapter numbers.

Output JSON:
{"chapters": [{"chapter_number": 1, "title": "...", "summary": "..."}]}`,
		b.Title, strings.Join(b.CharacterNames(), ", "), list.String())

	var out struct {
		Chapters []state.ChapterOutline `json:"chapters"`
	}
	if err := generateObject(ctx, m, prompt, p.Profiles.Creative.Options(CallerOutline), &out); err != nil {
		return entries, err
	}

	byNumber := make(map[int]state.ChapterOutline, len(out.Chapters))
	for _, e := range out.Chapters {
		byNumber[e.Number] = e
	}
	for _, i := range bad {
		if e, ok := byNumber[entries[i].Number]; ok {
			e.Number = entries[i].Number
			entries[i] = e
		}
	}
	return entries, nil
}
