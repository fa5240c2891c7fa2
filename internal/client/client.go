package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/maxdcmn/gpuhud/internal/model"
	"github.com/maxdcmn/gpuhud/internal/utils"
)

type Client struct {
	baseURL  string
	endpoint string
	http     *http.Client
}

func New(baseURL, endpoint string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		endpoint: endpoint,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name describes the remote source for status lines.
func (c *Client) Name() string {
	return c.baseURL + c.endpoint
}

// Timeout bounds a single snapshot request.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

func (c *Client) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var snap model.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, err
	}

	return &snap, nil
}

// Stream follows the exporter's SSE stream and calls fn for every snapshot
// until ctx is done, the stream ends, or fn returns an error.
func (c *Client) Stream(ctx context.Context, fn func(model.Snapshot) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.endpoint+"/stream", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	// The stream is long lived, so the per-request timeout does not apply.
	streamClient := &http.Client{Transport: c.http.Transport}
	resp, err := streamClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data:")
		if !ok {
			continue
		}
		var snap model.Snapshot
		if err := json.Unmarshal([]byte(strings.TrimSpace(data)), &snap); err != nil {
			utils.Warn("skipping malformed stream event", "error", err)
			continue
		}
		if err := fn(snap); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}

// StreamWebSocket follows the exporter's websocket feed with the same
// contract as Stream.
func (c *Client) StreamWebSocket(ctx context.Context, fn func(model.Snapshot) error) error {
	url := c.baseURL + c.endpoint + "/ws"
	if rest, ok := strings.CutPrefix(url, "https://"); ok {
		url = "wss://" + rest
	} else if rest, ok := strings.CutPrefix(url, "http://"); ok {
		url = "ws://" + rest
	}

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("dial failed: %w", err)
	}
	defer ws.Close()
	stop := context.AfterFunc(ctx, func() { ws.Close() })
	defer stop()

	for {
		var snap model.Snapshot
		if err := ws.ReadJSON(&snap); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}
		if err := fn(snap); err != nil {
			return err
		}
	}
}
