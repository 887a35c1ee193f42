package main

import (
	"fmt"
	"log"
	"os"

	"GoScribeAI/app/clients"
	"GoScribeAI/app/configs"
	"GoScribeAI/app/models"
	"GoScribeAI/app/rag"
	"GoScribeAI/app/stages"
	"GoScribeAI/app/storage"
)

const (
	defaultModel          = "openai/gpt-oss-20b"
	defaultEmbeddingModel = "text-embedding-nomic-embed-text-v1.5@q8_0"
)

func getModel(cfg *configs.Config) (models.Interface, error) {
	backend := cfg.Backend
	model := backend.Model
	if model == "" {
		model = defaultModel
	}
	embModel := backend.EmbeddingModel
	if embModel == "" {
		embModel = defaultEmbeddingModel
	}

	switch backend.Type {
	case "llm":
		return models.NewLLMClient(backend.BaseURL, model, embModel), nil
	case "openai":
		return models.NewOpenAIClient(backend.APIKey, backend.BaseURL, model)
	default:
		return nil, fmt.Errorf("unknown backend type %q", backend.Type)
	}
}

func getHistory(cfg *configs.Config) storage.Interface {
	dbPath := cfg.HistoryDB
	if dbPath == "" {
		dbPath = storage.DefaultDBPath()
	}
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		log.Printf("⚠️ Run history disabled, sqlite unavailable at %s: %v", dbPath, err)
		return nil
	}
	return store
}

func getClients(cfg *configs.Config) *clients.Registry {
	registry := clients.NewRegistry()
	for _, clientCfg := range cfg.Clients {
		if !clientCfg.Enabled {
			log.Printf("⏭️ Client %s is disabled, skipping", clientCfg.Type)
			continue
		}
		client, err := clients.CreateClient(clientCfg)
		if err != nil {
			log.Printf("⚠️ Client %s not started: %v", clientCfg.Type, err)
			continue
		}
		registry.Register(client)
		log.Printf("🔌 %s client initialized", clientCfg.Type)
	}
	return registry
}

// getRetriever wires the vector store when retrieval is enabled and the
// backend can embed text.
func getRetriever(cfg *configs.Config, model models.Interface) stages.Retriever {
	if !cfg.Retrieval.Enabled {
		return nil
	}
	embedder, ok := model.(models.Embedder)
	if !ok {
		log.Printf("⚠️ Retrieval enabled but backend %q has no embeddings, using inline context", cfg.Backend.Type)
		return nil
	}
	client, err := rag.NewClient(embedder)
	if err != nil {
		log.Printf("⚠️ Retrieval disabled, qdrant unavailable: %v", err)
		return nil
	}
	return client
}

func getRestrictedWords(cfg *configs.Config) []string {
	words, err := configs.LoadRestrictedWords(cfg.RestrictedWordsFile)
	if err != nil {
		log.Printf("⚠️ Restricted words file unreadable, using defaults: %v", err)
		words, _ = configs.LoadRestrictedWords("")
	}
	return words
}

func ensureOutputDir(cfg *configs.Config) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatalf("❌ Error creating output directory %s: %v", cfg.OutputDir, err)
	}
}
