package clients

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"GoScribeAI/app/pipeline"
)

type fakeClient struct {
	notices []pipeline.Notice
	closed  bool
}

func (f *fakeClient) Notify(_ context.Context, n pipeline.Notice) { f.notices = append(f.notices, n) }
func (f *fakeClient) Close() error                                { f.closed = true; return nil }

func TestRegistryFansOutAndCloses(t *testing.T) {
	a, b := &fakeClient{}, &fakeClient{}
	r := NewRegistry()
	r.Register(a)
	r.Register(b)

	notice := pipeline.Notice{Pipeline: "book", Status: pipeline.StatusPaused, Stage: "world_building"}
	r.Notify(context.Background(), notice)
	require.Equal(t, []pipeline.Notice{notice}, a.notices)
	require.Equal(t, []pipeline.Notice{notice}, b.notices)

	r.CloseAll()
	require.True(t, a.closed)
	require.True(t, b.closed)

	r.Notify(context.Background(), notice)
	require.Len(t, a.notices, 1)
}

func TestCreateClientValidation(t *testing.T) {
	_, err := CreateClient(Config{Type: "discord", Enabled: false})
	require.Error(t, err)

	_, err = CreateClient(Config{Type: "carrier_pigeon", Enabled: true})
	require.ErrorContains(t, err, "unknown client type")

	t.Setenv("DISCORD_TOKEN", "")
	_, err = CreateClient(Config{Type: "discord", Enabled: true, Config: map[string]string{}})
	require.ErrorContains(t, err, "token")
}
