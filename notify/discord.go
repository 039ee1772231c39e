package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	rv "github.com/hanksha/amenity-booking-backend/reservation"
)

type Message struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds"`
}

type Embed struct {
	Type        string       `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

const DefaultDiscordURL = "https://discord.com/api/v10"

type DiscordClient interface {
	SendMessage(ctx context.Context, channelID string, message Message) error
}

type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

func NewDiscordClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultDiscordURL
	}

	return &Client{
		token:   token,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) SendMessage(ctx context.Context, channelID string, message Message) error {
	if len(strings.TrimSpace(channelID)) == 0 {
		return errors.New("channelID cannot be empty")
	}

	msgURL, err := url.JoinPath(c.baseURL, "channels", channelID, "messages")

	if err != nil {
		return fmt.Errorf("failed to create URL: %w", err)
	}

	body, err := json.Marshal(message)

	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, msgURL, bytes.NewReader(body))

	if err != nil {
		return fmt.Errorf("failed create new request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bot "+c.token)

	res, err := c.client.Do(req)

	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		bodyBytes, readErr := io.ReadAll(res.Body)
		if readErr != nil {
			return fmt.Errorf("request failed with status %d; also failed reading body: %w", res.StatusCode, readErr)
		}
		return fmt.Errorf("request failed with status '%v' and body:\n%v", res.StatusCode, string(bodyBytes))
	}

	return nil
}

// DiscordNotifier posts every notice as a rich embed to one channel.
type DiscordNotifier struct {
	client    DiscordClient
	channelID string
}

func NewDiscordNotifier(client DiscordClient, channelID string) *DiscordNotifier {
	return &DiscordNotifier{client: client, channelID: channelID}
}

func (n *DiscordNotifier) Notify(ctx context.Context, notice rv.Notice) error {
	return n.client.SendMessage(ctx, n.channelID, Message{
		Embeds: []Embed{{
			Type:        "rich",
			Title:       notice.Title,
			Description: notice.Description,
		}},
	})
}
