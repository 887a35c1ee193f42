// Package state holds the cumulative generation document ("the Bible") threaded
// through every pipeline stage, plus its serialized form on disk.
package state

import "strconv"

// Progress markers, in pipeline order. A marker only ever advances.
const (
	ProgressNone       = ""
	ProgressConcept    = "concept"
	ProgressWorld      = "world_building"
	ProgressCharacters = "character_creation"
	ProgressOutline    = "outlining"
	ProgressDrafting   = "drafting"
	ProgressComplete   = "complete"
)

var progressRank = map[string]int{
	ProgressNone:       0,
	ProgressConcept:    1,
	ProgressWorld:      2,
	ProgressCharacters: 3,
	ProgressOutline:    4,
	ProgressDrafting:   5,
	ProgressComplete:   6,
}

type Concept struct {
	Title    string   `json:"title"`
	Logline  string   `json:"logline"`
	Synopsis string   `json:"synopsis"`
	Themes   []string `json:"themes"`
	Tone     []string `json:"tone"`
}

type Location struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Significance string `json:"significance,omitempty"`
}

type LoreEntry struct {
	Topic   string `json:"topic"`
	Details string `json:"details"`
}

type WorldBible struct {
	Locations   []Location  `json:"locations"`
	Lore        []LoreEntry `json:"lore"`
	MagicSystem string      `json:"magic_system"`
}

type Character struct {
	Name        string `json:"name"`
	Archetype   string `json:"archetype"`
	Motivation  string `json:"motivation"`
	Flaw        string `json:"flaw,omitempty"`
	Description string `json:"description"`
	Backstory   string `json:"backstory,omitempty"`
}

type ChapterOutline struct {
	Number  int    `json:"chapter_number"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Book is the mutable document for the novel pipeline. Sections are populated
// strictly in pipeline order; absent sections are nil/empty, and the progress
// marker names the last completed stage.
type Book struct {
	Title            string           `json:"book_title"`
	ThemeKeywords    []string         `json:"theme_keywords"`
	Concept          *Concept         `json:"concept,omitempty"`
	WorldBible       *WorldBible      `json:"world_bible,omitempty"`
	Characters       []Character      `json:"characters,omitempty"`
	Outline          []ChapterOutline `json:"outline,omitempty"`
	Chapters         map[int]string   `json:"chapters,omitempty"`
	Progress         string           `json:"progress_marker"`
	DegradedSections []string         `json:"degraded_sections,omitempty"`
}

func NewBook(title string, themes []string) *Book {
	return &Book{Title: title, ThemeKeywords: themes}
}

// SetConcept stores the concept and syncs the top-level title/themes with it,
// so later prompts pick up the synthesized values.
func (b *Book) SetConcept(c Concept) {
	b.Concept = &c
	if c.Title != "" {
		b.Title = c.Title
	}
	if len(c.Themes) > 0 {
		b.ThemeKeywords = c.Themes
	}
}

func (b *Book) SetWorldBible(w WorldBible) {
	b.WorldBible = &w
}

func (b *Book) AddCharacters(chars []Character) {
	b.Characters = append(b.Characters, chars...)
}

func (b *Book) CharacterNames() []string {
	names := make([]string, 0, len(b.Characters))
	for _, c := range b.Characters {
		names = append(names, c.Name)
	}
	return names
}

func (b *Book) SetOutline(entries []ChapterOutline) {
	b.Outline = entries
}

func (b *Book) SetChapter(index int, text string) {
	if b.Chapters == nil {
		b.Chapters = make(map[int]string)
	}
	b.Chapters[index] = text
}

func (b *Book) ChapterText(index int) string {
	return b.Chapters[index]
}

// MarkProgress advances the progress marker; it never moves backwards.
func (b *Book) MarkProgress(stage string) {
	if progressRank[stage] > progressRank[b.Progress] {
		b.Progress = stage
	}
}

// MarkDegraded records that a section was filled with its documented default
// because its stage exhausted parse retries.
func (b *Book) MarkDegraded(section string) {
	for _, s := range b.DegradedSections {
		if s == section {
			return
		}
	}
	b.DegradedSections = append(b.DegradedSections, section)
}

// HasSection reports whether a stage's output is present, degraded defaults
// included. This is the resume-point test: the controller trusts the furthest
// populated section and never repairs earlier gaps.
func (b *Book) HasSection(stage string) bool {
	switch stage {
	case ProgressConcept:
		return b.Concept != nil
	case ProgressWorld:
		return b.WorldBible != nil
	case ProgressCharacters:
		return len(b.Characters) > 0
	case ProgressOutline:
		return len(b.Outline) > 0
	case ProgressDrafting:
		return len(b.Chapters) == len(b.Outline) && len(b.Outline) > 0
	default:
		return false
	}
}

// ChapterKey renders a chapter index the way history records name it.
func ChapterKey(index int) string {
	return "chapter_" + strconv.Itoa(index+1)
}
