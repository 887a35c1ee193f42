package models

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLLMClientGenerate(t *testing.T) {
	var gotPayload requestPayload
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		resp := ResponseLLM{}
		resp.Choices = append(resp.Choices, struct {
			Index        int     `json:"index"`
			Logprobs     *string `json:"logprobs,omitempty"`
			FinishReason string  `json:"finish_reason"`
			Message      Message `json:"message"`
		}{Message: Message{Role: "assistant", Content: "a pale light over the marshes"}})
		json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	client := NewLLMClient(ts.URL, "test-model", "")
	out, err := client.Generate(context.Background(), "describe the marshes",
		Options{Temperature: 0.9, TopP: 0.95, MaxOutputTokens: 256, Caller: "world_builder"})
	require.NoError(t, err)
	require.Equal(t, "a pale light over the marshes", out)
	require.Equal(t, "test-model", gotPayload.Model)
	require.Equal(t, 256, gotPayload.MaxTokens)
	require.Len(t, gotPayload.Messages, 1)
}

func TestLLMClientGenerateExhaustsRetries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewLLMClient(ts.URL, "test-model", "")
	_, err := client.Generate(context.Background(), "anything", Options{Caller: "concept"})
	require.Error(t, err)
}
