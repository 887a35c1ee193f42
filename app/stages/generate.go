package stages

import (
	"context"
	"log"

	"GoScribeAI/app/models"
	"GoScribeAI/app/parse"
)

const (
	parseAttempts = 3

	jsonOnlyInstruction = "\n\nIMPORTANT: Respond with ONLY the JSON object. No commentary, no markdown fences, no text before or after it."
)

// generateObject asks the backend for a structured record and decodes it into
// out. A failed parse re-issues the same request with a stricter instruction
// appended, up to parseAttempts times; exhaustion returns parse.ExhaustedError
// so the caller can substitute its default. Transport errors are returned
// untouched; those are fatal to the run, not to the section.
func generateObject(ctx context.Context, m models.Interface, prompt string, opts models.Options, out any) error {
	var raw string
	for attempt := 0; attempt < parseAttempts; attempt++ {
		p := prompt
		if attempt > 0 {
			p += jsonOnlyInstruction
		}
		text, err := m.Generate(ctx, p, opts)
		if err != nil {
			return err
		}
		raw = text
		if err = parse.Into(raw, out); err != nil {
			log.Printf("⚠️ %s: attempt %d/%d returned no usable payload: %v", opts.Caller, attempt+1, parseAttempts, err)
			continue
		}
		return nil
	}
	return &parse.ExhaustedError{Attempts: parseAttempts, Raw: raw}
}
