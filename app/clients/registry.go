package clients

import (
	"context"
	"fmt"
	"log"
	"sync"

	"GoScribeAI/app/pipeline"
)

// Registry fans pipeline notices out to every registered client.
type Registry struct {
	mu      sync.RWMutex
	clients []Interface
}

var _ pipeline.Notifier = &Registry{}

func NewRegistry() *Registry {
	return &Registry{
		clients: make([]Interface, 0),
	}
}

func (r *Registry) Register(client Interface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients = append(r.clients, client)
}

func (r *Registry) Notify(ctx context.Context, n pipeline.Notice) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, client := range r.clients {
		client.Notify(ctx, n)
	}
}

func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, client := range r.clients {
		if closer, ok := client.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				log.Printf("⚠️ Error closing client: %v\n", err)
			}
		}
	}
	r.clients = make([]Interface, 0)
}

func CreateClient(cfg Config) (Interface, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("client %s is disabled", cfg.Type)
	}

	switch cfg.Type {
	case "discord":
		return NewDiscordClientFromConfig(cfg.Config)
	// Add more client types here in the future:
	// case "slack":
	//     return NewSlackClient(cfg.Config)
	// case "telegram":
	//     return NewTelegramClient(cfg.Config)
	default:
		return nil, fmt.Errorf("unknown client type: %s", cfg.Type)
	}
}
