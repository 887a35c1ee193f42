package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"GoScribeAI/app/configs"
	"GoScribeAI/app/export"
	"GoScribeAI/app/models"
	"GoScribeAI/app/pipeline"
	"GoScribeAI/app/rag"
	"GoScribeAI/app/stages"
	"GoScribeAI/app/state"
	"GoScribeAI/app/utils"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to the YAML configuration")
		mode       = flag.String("mode", "book", "pipeline to run: book | lore")
		title      = flag.String("title", "", "book title or lore project name")
		themes     = flag.String("themes", "", "comma-separated theme keywords (book mode)")
		chapters   = flag.Int("chapters", 0, "override configured chapter count (book mode)")
		stopAfter  = flag.String("stop-after", "", "pause once this stage's output is present")
		resume     = flag.Bool("resume", false, "resume from the existing state file")
	)
	flag.Parse()

	if *title == "" {
		log.Fatal("❌ -title is required")
	}

	cfg, err := configs.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("❌ Error loading configuration: %v", err)
	}
	ensureOutputDir(cfg)

	model, err := getModel(cfg)
	if err != nil {
		log.Fatalf("❌ Error building backend: %v", err)
	}

	registry := getClients(cfg)
	defer registry.CloseAll()

	ctx := context.Background()
	switch *mode {
	case "book":
		runBookMode(ctx, cfg, model, registry, *title, *themes, *chapters, *stopAfter, *resume)
	case "lore":
		runLoreMode(ctx, cfg, model, registry, *title, *stopAfter, *resume)
	default:
		log.Fatalf("❌ Unknown mode %q, expected book or lore", *mode)
	}
}

func runBookMode(ctx context.Context, cfg *configs.Config, model models.Interface,
	registry pipeline.Notifier, title, themes string, chapters int, stopAfter string, resume bool) {

	params := stages.BookParams{
		Title:           title,
		Themes:          splitCommaList(themes),
		NumChapters:     cfg.Book.NumChapters,
		NumCharacters:   cfg.Book.NumCharacters,
		RestrictedWords: getRestrictedWords(cfg),
		Profiles:        cfg.ModelProfiles,
	}
	if chapters > 0 {
		params.NumChapters = chapters
	}

	retriever := getRetriever(cfg, model)
	params.Retriever = retriever

	slug := utils.Slugify(title)
	statePath := filepath.Join(cfg.OutputDir, slug+"_state.json")

	var existing *state.Book
	if resume {
		var err error
		if existing, err = state.LoadBook(statePath); err != nil {
			log.Fatalf("❌ Error loading state for resume: %v", err)
		}
	}

	c := pipeline.NewController(model, statePath)
	c.History = getHistory(cfg)
	c.Notifiers = []pipeline.Notifier{registry}
	if indexer, ok := retriever.(*rag.Client); ok {
		c.Indexer = indexer
	}

	res := c.RunBook(ctx, params, existing, stopAfter)
	fmt.Print(export.BookTree(res.State))

	switch res.Status {
	case pipeline.StatusPaused:
		log.Printf("🛑 Paused after %s. Edit %s and rerun with -resume.", res.PausedAfter, statePath)
	case pipeline.StatusError:
		log.Printf("🚨 Run failed: %v", res.Err)
		os.Exit(1)
	case pipeline.StatusComplete:
		writeCompiled(cfg.OutputDir, slug+"_complete", res.State.Title, res.CompiledText)
	}
}

func runLoreMode(ctx context.Context, cfg *configs.Config, model models.Interface,
	registry pipeline.Notifier, project, stopAfter string, resume bool) {

	params := stages.LoreParams{
		ProjectName:      project,
		NumEras:          cfg.Lore.NumEras,
		NumFactions:      cfg.Lore.NumFactions,
		NumCharacters:    cfg.Lore.NumCharacters,
		NumConflicts:     cfg.Lore.NumConflicts,
		ChaptersPerRoute: cfg.Lore.ChaptersPerRoute,
		Profiles:         cfg.ModelProfiles,
	}

	slug := utils.Slugify(project)
	statePath := filepath.Join(cfg.OutputDir, slug+"_lore_state.json")

	var existing *state.Lore
	if resume {
		var err error
		if existing, err = state.LoadLore(statePath); err != nil {
			log.Fatalf("❌ Error loading state for resume: %v", err)
		}
	}

	c := pipeline.NewController(model, statePath)
	c.History = getHistory(cfg)
	c.Notifiers = []pipeline.Notifier{registry}

	res := c.RunLore(ctx, params, existing, stopAfter)
	fmt.Print(export.LoreTree(res.State))

	switch res.Status {
	case pipeline.StatusPaused:
		log.Printf("🛑 Paused after %s. Edit %s and rerun with -resume.", res.PausedAfter, statePath)
	case pipeline.StatusError:
		log.Printf("🚨 Run failed: %v", res.Err)
		os.Exit(1)
	case pipeline.StatusComplete:
		writeCompiled(cfg.OutputDir, slug+"_lore_bible", res.State.ProjectName, res.CompiledText)
	}
}

func writeCompiled(outputDir, base, title, markdown string) {
	mdPath := filepath.Join(outputDir, base+".md")
	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		log.Fatalf("❌ Error writing %s: %v", mdPath, err)
	}
	log.Printf("📕 Markdown saved to %s", mdPath)

	page, err := export.HTML(title, markdown)
	if err != nil {
		log.Printf("⚠️ HTML rendering failed: %v", err)
		return
	}
	htmlPath := filepath.Join(outputDir, base+".html")
	if err = os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
		log.Fatalf("❌ Error writing %s: %v", htmlPath, err)
	}
	log.Printf("📘 HTML saved to %s", htmlPath)
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
