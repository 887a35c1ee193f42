package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntoFencedPayload(t *testing.T) {
	raw := "Here is the world bible you asked for:\n```json\n{\"magic_system\": \"blood-bound\"}\n```\nLet me know if you need changes."
	var out struct {
		MagicSystem string `json:"magic_system"`
	}
	require.NoError(t, Into(raw, &out))
	require.Equal(t, "blood-bound", out.MagicSystem)
}

func TestIntoTrailingCommasAndSmartQuotes(t *testing.T) {
	raw := "{“title”: “The Hollow Crown”, \"themes\": [\"decay\", \"sacrifice\",],}"
	var out struct {
		Title  string   `json:"title"`
		Themes []string `json:"themes"`
	}
	require.NoError(t, Into(raw, &out))
	require.Equal(t, "The Hollow Crown", out.Title)
	require.Equal(t, []string{"decay", "sacrifice"}, out.Themes)
}

func TestIntoNoPayload(t *testing.T) {
	var out map[string]any
	require.Error(t, Into("the model rambled and returned no record at all", &out))
}

func TestObjectExpectedKeys(t *testing.T) {
	obj, err := Object(`{"chapters": [], "extra": 1}`, "chapters")
	require.NoError(t, err)
	require.Contains(t, obj, "chapters")

	_, err = Object(`{"chapters": []}`, "characters")
	require.Error(t, err)
}

func TestIsExhausted(t *testing.T) {
	err := error(&ExhaustedError{Attempts: 3, Raw: "noise"})
	require.True(t, IsExhausted(err))
	require.False(t, IsExhausted(errors.New("transport down")))
}
