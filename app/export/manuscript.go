// Package export renders the finished generation documents as markdown and
// HTML, plus terminal progress trees.
package export

import (
	"fmt"
	"strings"

	"GoScribeAI/app/state"
)

// Manuscript compiles the drafted chapters into a single markdown document.
// Chapters follow outline order; a missing chapter leaves a gap marker so a
// partially drafted book still compiles.
func Manuscript(b *state.Book) string {
	var sb strings.Builder
	sb.WriteString("# " + b.Title + "\n\n")
	for i, entry := range b.Outline {
		sb.WriteString(fmt.Sprintf("## Chapter %d: %s\n\n", i+1, entry.Title))
		if text := b.ChapterText(i); text != "" {
			sb.WriteString(text + "\n\n")
		} else {
			sb.WriteString("*Not yet drafted.*\n\n")
		}
	}
	return sb.String()
}
