package pipeline

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"GoScribeAI/app/export"
	"GoScribeAI/app/models"
	"GoScribeAI/app/stages"
	"GoScribeAI/app/state"
	"GoScribeAI/app/storage"
)

// Controller executes a pipeline against a single state document. It is the
// only writer of that document: stages return updates, the controller applies
// them, persists after every stage, and decides pause/resume.
type Controller struct {
	Model     models.Interface
	History   storage.Interface
	Notifiers []Notifier
	Indexer   Indexer
	StatePath string
	Rand      *rand.Rand
}

func NewController(model models.Interface, statePath string) *Controller {
	return &Controller{Model: model, StatePath: statePath}
}

// RunBook executes the novel pipeline. With existing state it resumes from the
// furthest populated section; with stopAfter set it pauses once that stage's
// output is present, whether generated now or on an earlier run.
func (c *Controller) RunBook(ctx context.Context, p stages.BookParams, existing *state.Book, stopAfter string) BookResult {
	runID := uuid.NewString()
	b := state.NewBook(p.Title, p.Themes)
	if existing != nil {
		b = existing.Clone()
		log.Printf("🔄 Resuming book run %s from %q", runID, b.Progress)
	} else {
		log.Printf("🚀 Starting book run %s: %q", runID, p.Title)
	}

	for _, st := range stages.BookStages() {
		if st.Done(b) {
			b.MarkProgress(st.Name)
			log.Printf("⏭️ Stage %s already present, skipping", st.Name)
			if st.Name == stopAfter {
				return c.pauseBook(ctx, b, runID, st.Name)
			}
			continue
		}

		for _, need := range st.Needs {
			if !b.HasSection(need) {
				err := fmt.Errorf("stage %s requires missing section %s", st.Name, need)
				return c.failBook(ctx, b, runID, st.Name, err)
			}
		}

		res, err := st.Run(ctx, c.Model, b, p)
		if err != nil {
			return c.failBook(ctx, b, runID, st.Name, err)
		}
		res.Update(b)
		if res.Degraded {
			b.MarkDegraded(st.Name)
			log.Printf("⚠️ Stage %s degraded to its default: %s", st.Name, res.Detail)
		} else {
			log.Printf("✅ Stage %s done: %s", st.Name, res.Detail)
		}
		b.MarkProgress(st.Name)

		if err = c.persistBook(b); err != nil {
			return c.failBook(ctx, b, runID, st.Name, err)
		}
		c.record(ctx, runID, "book", st.Name, res.Degraded, res.Detail)

		if st.Name == stopAfter {
			return c.pauseBook(ctx, b, runID, st.Name)
		}
	}

	if c.Indexer != nil {
		if err := c.Indexer.IndexBook(ctx, b); err != nil {
			log.Printf("⚠️ World indexing failed, drafting will use inline context: %v", err)
		}
	}

	for i := range b.Outline {
		if b.ChapterText(i) != "" {
			log.Printf("⏭️ Chapter %d already drafted, skipping", i+1)
			continue
		}
		draft, err := stages.DraftChapter(ctx, c.Model, b, p, i)
		if err != nil {
			return c.failBook(ctx, b, runID, state.ChapterKey(i), err)
		}
		edited, err := stages.EditChapter(ctx, c.Model, b, p, i, draft)
		if err != nil {
			return c.failBook(ctx, b, runID, state.ChapterKey(i), err)
		}
		b.SetChapter(i, edited)
		b.MarkProgress(state.ProgressDrafting)

		if err = c.persistBook(b); err != nil {
			return c.failBook(ctx, b, runID, state.ChapterKey(i), err)
		}
		c.record(ctx, runID, "book", state.ChapterKey(i), false, "drafted and edited")
		log.Printf("✅ Chapter %d/%d written", i+1, len(b.Outline))
	}

	b.MarkProgress(state.ProgressComplete)
	if err := c.persistBook(b); err != nil {
		return c.failBook(ctx, b, runID, state.ProgressComplete, err)
	}

	compiled := export.Manuscript(b)
	c.notify(ctx, Notice{Pipeline: "book", RunID: runID, Status: StatusComplete, Detail: b.Title})
	log.Printf("🏁 Book run %s complete: %d chapters", runID, len(b.Outline))
	return BookResult{Status: StatusComplete, State: b, CompiledText: compiled}
}

// RunLore executes the lore pipeline. Variety seeds are drawn once on the
// first run and reused verbatim on resume.
func (c *Controller) RunLore(ctx context.Context, p stages.LoreParams, existing *state.Lore, stopAfter string) LoreResult {
	runID := uuid.NewString()
	l := state.NewLore(p.ProjectName)
	if existing != nil {
		l = existing.Clone()
		log.Printf("🔄 Resuming lore run %s from %q", runID, l.CurrentPhase)
	} else {
		log.Printf("🚀 Starting lore run %s: %q", runID, p.ProjectName)
	}

	if l.VarietySeeds.Empty() {
		r := c.Rand
		if r == nil {
			r = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		l.VarietySeeds = stages.NewVarietySeeds(r)
		log.Printf("🎲 Variety seeds: emotion=%s aesthetic=%s conflict=%s",
			l.VarietySeeds.EmotionSeed, l.VarietySeeds.AestheticSeed, l.VarietySeeds.ConflictSeed)
	}

	for _, st := range stages.LoreStages() {
		if st.Done(l) {
			l.CompletePhase(st.Name)
			log.Printf("⏭️ Phase %s already present, skipping", st.Name)
			if st.Name == stopAfter {
				return c.pauseLore(ctx, l, runID, st.Name)
			}
			continue
		}

		for _, need := range st.Needs {
			if !l.HasPhase(need) {
				err := fmt.Errorf("phase %s requires missing phase %s", st.Name, need)
				return c.failLore(ctx, l, runID, st.Name, err)
			}
		}

		res, err := st.Run(ctx, c.Model, l, p)
		if err != nil {
			return c.failLore(ctx, l, runID, st.Name, err)
		}
		res.Update(l)
		if res.Degraded {
			l.MarkDegraded(st.Name)
			log.Printf("⚠️ Phase %s degraded to its default: %s", st.Name, res.Detail)
		} else {
			log.Printf("✅ Phase %s done: %s", st.Name, res.Detail)
		}
		l.CompletePhase(st.Name)

		if err = c.persistLore(l); err != nil {
			return c.failLore(ctx, l, runID, st.Name, err)
		}
		c.record(ctx, runID, "lore", st.Name, res.Degraded, res.Detail)

		if st.Name == stopAfter {
			return c.pauseLore(ctx, l, runID, st.Name)
		}
	}

	l.CompletePhase(state.PhaseComplete)
	if err := c.persistLore(l); err != nil {
		return c.failLore(ctx, l, runID, state.PhaseComplete, err)
	}

	compiled := export.LoreBible(l)
	c.notify(ctx, Notice{Pipeline: "lore", RunID: runID, Status: StatusComplete, Detail: l.ProjectName})
	log.Printf("🏁 Lore run %s complete", runID)
	return LoreResult{Status: StatusComplete, State: l, CompiledText: compiled}
}

func (c *Controller) persistBook(b *state.Book) error {
	if c.StatePath == "" {
		return nil
	}
	return b.Save(c.StatePath)
}

func (c *Controller) persistLore(l *state.Lore) error {
	if c.StatePath == "" {
		return nil
	}
	return l.Save(c.StatePath)
}

func (c *Controller) record(ctx context.Context, runID, pipeline, stage string, degraded bool, detail string) {
	if c.History == nil {
		return
	}
	err := c.History.SaveStageRun(ctx, storage.StageRun{
		RunID:    runID,
		Pipeline: pipeline,
		Stage:    stage,
		Degraded: degraded,
		Detail:   detail,
	})
	if err != nil {
		log.Printf("⚠️ History row for %s/%s not saved: %v", runID, stage, err)
	}
}

func (c *Controller) notify(ctx context.Context, n Notice) {
	for _, notifier := range c.Notifiers {
		notifier.Notify(ctx, n)
	}
}

func (c *Controller) pauseBook(ctx context.Context, b *state.Book, runID, stage string) BookResult {
	if err := c.persistBook(b); err != nil {
		return c.failBook(ctx, b, runID, stage, err)
	}
	c.notify(ctx, Notice{Pipeline: "book", RunID: runID, Status: StatusPaused, Stage: stage})
	log.Printf("🛑 Book run %s paused after %s", runID, stage)
	return BookResult{Status: StatusPaused, State: b, PausedAfter: stage}
}

func (c *Controller) pauseLore(ctx context.Context, l *state.Lore, runID, stage string) LoreResult {
	if err := c.persistLore(l); err != nil {
		return c.failLore(ctx, l, runID, stage, err)
	}
	c.notify(ctx, Notice{Pipeline: "lore", RunID: runID, Status: StatusPaused, Stage: stage})
	log.Printf("🛑 Lore run %s paused after %s", runID, stage)
	return LoreResult{Status: StatusPaused, State: l, PausedAfter: stage}
}

func (c *Controller) failBook(ctx context.Context, b *state.Book, runID, stage string, err error) BookResult {
	c.notify(ctx, Notice{Pipeline: "book", RunID: runID, Status: StatusError, Stage: stage, Detail: err.Error()})
	log.Printf("🚨 Book run %s failed at %s: %v", runID, stage, err)
	return BookResult{Status: StatusError, State: b, Err: fmt.Errorf("stage %s: %w", stage, err)}
}

func (c *Controller) failLore(ctx context.Context, l *state.Lore, runID, stage string, err error) LoreResult {
	c.notify(ctx, Notice{Pipeline: "lore", RunID: runID, Status: StatusError, Stage: stage, Detail: err.Error()})
	log.Printf("🚨 Lore run %s failed at %s: %v", runID, stage, err)
	return LoreResult{Status: StatusError, State: l, Err: fmt.Errorf("phase %s: %w", stage, err)}
}
