package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"time"

	"GoScribeAI/app/utils/restclient"
)

const (
	endpoint          = "/v1/chat/completions"
	embeddingEndpoint = "/v1/embeddings"

	maxRetries = 3
)

var _ Interface = &LLMClient{}
var _ Embedder = &LLMClient{}

// LLMClient talks to any OpenAI-compatible chat-completions server
// (LM Studio, llama.cpp, vLLM, a gateway). Transient HTTP failures are retried
// with exponential backoff before the error is surfaced.
type LLMClient struct {
	restClient      *restclient.RestClient
	cache           sync.Map
	model           string
	embeddingsModel string
}

func NewLLMClient(baseURL, model, embModel string) *LLMClient {
	if baseURL == "" {
		baseURL = os.Getenv("LLM_BASE_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:1234"
	}
	var headers map[string]string
	if key := os.Getenv("LLM_API_KEY"); key != "" {
		headers = map[string]string{"Authorization": "Bearer " + key}
	}
	return &LLMClient{
		restClient:      restclient.NewRestClient(baseURL, headers),
		model:           model,
		embeddingsModel: embModel,
	}
}

func (mc *LLMClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	payload := requestPayload{
		Model:       mc.model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		MaxTokens:   maxTokensOrUnlimited(opts.MaxOutputTokens),
	}

	response, err := mc.sendRequestAndParse(ctx, payload, maxRetries)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%s: empty LLM response", opts.Caller)
	}
	return response.Choices[0].Message.Content, nil
}

func maxTokensOrUnlimited(n int) int {
	if n <= 0 {
		return -1
	}
	return n
}

func (mc *LLMClient) sendRequestAndParse(ctx context.Context, payload requestPayload, retries int) (*ResponseLLM, error) {
	var err error
	var response []byte
	var status int
	var generatedResponse ResponseLLM

	for i := 0; i < retries; i++ {
		select {
		case <-ctx.Done():
			log.Println("🚨 Request canceled before execution")
			return nil, ctx.Err()
		default:
			if err != nil {
				time.Sleep(time.Duration(math.Pow(2, float64(i))) * 100 * time.Millisecond)
			}
			response, status, err = mc.restClient.Post(ctx, endpoint, payload, nil)
			if err != nil || status != 200 {
				if err == nil {
					err = fmt.Errorf("http status %d: %s", status, string(response))
				}
				log.Printf("⚠️ Attempt %d failed: HTTP %d | Error: %v", i+1, status, err)
				continue
			}

			if err = json.Unmarshal(response, &generatedResponse); err != nil {
				log.Printf("⚠️ Error parsing completion envelope: %v", err)
				continue
			}

			return &generatedResponse, nil
		}
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", retries, err)
}

func (mc *LLMClient) EmbedText(ctx context.Context, input string) ([]float32, error) {
	if v, ok := mc.cache.Load(input); ok {
		if emb, ok2 := v.([]float32); ok2 {
			return emb, nil
		}
	}

	if mc.embeddingsModel == "" {
		return nil, errors.New("embeddings model is empty; configure LLMClient embeddings model")
	}

	req := embeddingRequestPayload{
		Model: mc.embeddingsModel,
		Input: input,
	}
	resp, err := mc.sendEmbeddings(ctx, req, maxRetries)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding data returned")
	}
	emb := resp.Data[0].Embedding
	mc.cache.Store(input, emb)
	return emb, nil
}

func (mc *LLMClient) sendEmbeddings(ctx context.Context, payload embeddingRequestPayload, retries int) (*embeddingResponse, error) {
	var (
		lastErr error
		body    []byte
		status  int
		out     embeddingResponse
	)

	for i := 0; i < retries; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if i > 0 {
			time.Sleep(time.Duration(100*(1<<uint(i))) * time.Millisecond)
		}

		b, s, err := mc.restClient.Post(ctx, embeddingEndpoint, payload, nil)
		body, status, lastErr = b, s, err
		if err != nil || status != 200 {
			if lastErr == nil {
				lastErr = fmt.Errorf("http status %d: %s", status, string(body))
			}
			log.Printf("⚠️ embed attempt %d failed: http=%d err=%v", i+1, status, lastErr)
			continue
		}
		if err := json.Unmarshal(body, &out); err != nil {
			lastErr = fmt.Errorf("parse embeddings json: %w", err)
			log.Printf("⚠️ %v", lastErr)
			continue
		}

		return &out, nil
	}
	return nil, fmt.Errorf("embeddings request failed after %d retries: %w", retries, lastErr)
}
