package clients

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/bwmarrin/discordgo"

	"GoScribeAI/app/pipeline"
)

var _ Interface = &DiscordClient{}

// DiscordClient posts pipeline notices to a single channel, so a long
// generation run can be watched (and resumed) without tailing logs.
type DiscordClient struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordClientFromConfig(cfg map[string]string) (*DiscordClient, error) {
	token := os.ExpandEnv(cfg["token"])
	if token == "" {
		token = os.Getenv("DISCORD_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("discord token not configured")
	}

	channelID := os.ExpandEnv(cfg["channel_id"])
	if channelID == "" {
		channelID = os.Getenv("DISCORD_CHANNEL_ID")
	}
	if channelID == "" {
		return nil, fmt.Errorf("discord channel_id not configured")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}

	return &DiscordClient{session: session, channelID: channelID}, nil
}

func (c *DiscordClient) Notify(_ context.Context, n pipeline.Notice) {
	var msg string
	switch n.Status {
	case pipeline.StatusPaused:
		msg = fmt.Sprintf("🛑 %s run `%s` paused after **%s**. Edit the state file and resume when ready.", n.Pipeline, n.RunID, n.Stage)
	case pipeline.StatusComplete:
		msg = fmt.Sprintf("🏁 %s run `%s` complete: %s", n.Pipeline, n.RunID, n.Detail)
	case pipeline.StatusError:
		msg = fmt.Sprintf("🚨 %s run `%s` failed at **%s**: %s", n.Pipeline, n.RunID, n.Stage, n.Detail)
	default:
		return
	}
	if err := c.sendMessage(msg); err != nil {
		log.Printf("⚠️ Discord notice not delivered: %v", err)
	}
}

func (c *DiscordClient) Close() error {
	return c.session.Close()
}

func (c *DiscordClient) sendMessage(content string) error {
	if c.channelID == "" {
		return fmt.Errorf("channelID is empty")
	}
	if _, err := c.session.ChannelMessageSend(c.channelID, content); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
