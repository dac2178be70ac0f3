package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// RevalidateClient asks the frontend to re-render cached pages after a write.
// Calls are synchronous but best-effort: a failed revalidation is logged and
// the mutation that triggered it still succeeds.
type RevalidateClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewRevalidateClient(baseURL, token string, log zerolog.Logger) *RevalidateClient {
	return &RevalidateClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// Revalidate requests a re-render of the given paths. A nil client or empty
// base URL disables revalidation entirely.
func (c *RevalidateClient) Revalidate(ctx context.Context, paths ...string) {
	if c == nil || c.baseURL == "" || len(paths) == 0 {
		return
	}

	payload, err := json.Marshal(map[string]any{"paths": paths})
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to encode revalidate payload")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to build revalidate request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Strs("paths", paths).Msg("revalidate request failed")
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		c.log.Warn().Int("status", resp.StatusCode).Strs("paths", paths).Msg("revalidate rejected")
	}
}
