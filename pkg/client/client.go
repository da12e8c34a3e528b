package client

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

	"github.com/warden-ai/warden/pkg/models"
)

// ErrUnavailable is returned when the backend cannot be reached or
// answers with a server error. Callers render an "unavailable" state;
// malformed or partial data never reaches the classifiers.
var ErrUnavailable = errors.New("governance backend unavailable")

const defaultTimeout = 10 * time.Second

// Client talks to the governance REST backend.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client for the given backend base URL. The token, if
// non-empty, is sent as a bearer token on every request.
func New(baseURL, token string) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}, nil
}

// GovernanceStatus fetches the governance snapshot for an agent.
// A 404 means the agent has no governance configuration and returns
// (nil, nil), which is not an error.
func (c *Client) GovernanceStatus(ctx context.Context, agentID string) (*models.GovernanceStatus, error) {
	var status models.GovernanceStatus
	found, err := c.getJSON(ctx, "/api/agents/"+url.PathEscape(agentID)+"/governance", &status)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &status, nil
}

// Lineage fetches the lineage graph payload for an agent. A 404 means
// no lineage data exists yet and returns (nil, nil).
func (c *Client) Lineage(ctx context.Context, agentID string) (*models.LineageData, error) {
	var data models.LineageData
	found, err := c.getJSON(ctx, "/api/agents/"+url.PathEscape(agentID)+"/lineage", &data)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &data, nil
}

// ListAgents returns all external agents known to the backend.
func (c *Client) ListAgents(ctx context.Context) ([]models.ExternalAgent, error) {
	var agents []models.ExternalAgent
	found, err := c.getJSON(ctx, "/api/agents", &agents)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return agents, nil
}

// InvokeAgent triggers a manual invocation. This is a governed action:
// on success the caller must invalidate any cached snapshots for the
// agent, since the backend's usage counters have moved.
func (c *Client) InvokeAgent(ctx context.Context, agentID string, payload []byte) (*models.InvocationResult, error) {
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/agents/"+url.PathEscape(agentID)+"/invoke", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read invoke response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("invoke agent %s: status %d: %s", agentID, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result models.InvocationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode invoke response: %w", err)
	}
	return &result, nil
}

// getJSON performs a GET and decodes the response into out. It returns
// found=false on 404 and ErrUnavailable on transport or 5xx failures.
func (c *Client) getJSON(ctx context.Context, path string, out any) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return false, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return false, fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
