package mediator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client talks to a Server's HTTP endpoints on behalf of a single party.
type Client struct {
	baseURL string
	room    string
	http    *http.Client
}

// NewClient builds a client addressing roomID on the mediator reachable at
// baseURL (e.g. "http://localhost:8080").
func NewClient(baseURL, roomID string) *Client {
	return &Client{baseURL: baseURL, room: roomID, http: http.DefaultClient}
}

// Join registers this party with the room and returns its assigned 1-based
// party index.
func (c *Client) Join(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/rooms/%s/join", c.baseURL, c.room), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("mediator: join request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("mediator: join returned status %d", resp.StatusCode)
	}
	var out joinResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("mediator: failed to decode join response: %w", err)
	}
	return out.PartyIndex, nil
}

// Send appends payload to the room's message log.
func (c *Client) Send(ctx context.Context, payload []byte) error {
	body, err := json.Marshal(struct {
		Payload []byte `json:"payload"`
	}{Payload: payload})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/rooms/%s/messages", c.baseURL, c.room), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mediator: send request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mediator: send returned status %d", resp.StatusCode)
	}
	return nil
}

// Poll long-polls for every message appended at or after after, returning
// them along with the cursor to pass as after on the next call.
func (c *Client) Poll(ctx context.Context, after int) ([][]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/rooms/%s/messages?after=%d", c.baseURL, c.room, after), nil)
	if err != nil {
		return nil, after, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, after, fmt.Errorf("mediator: poll request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, after, fmt.Errorf("mediator: poll returned status %d", resp.StatusCode)
	}
	var out struct {
		Messages [][]byte `json:"messages"`
		Next     int      `json:"next"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, after, fmt.Errorf("mediator: failed to decode poll response: %w", err)
	}
	return out.Messages, out.Next, nil
}
