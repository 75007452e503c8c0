// Package hrapi is the client for the HR platform API, the authoritative
// store for timesheets, attendance punches, shift assignments, holiday
// calendars and employee records. This service never writes those
// directly; everything goes through the endpoints here.
package hrapi

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

	"golang.org/x/oauth2/clientcredentials"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/config"
)

// ErrNotFound is returned for 404 responses. For some resources absence is
// normal, e.g. a week that has never been saved has no timesheet yet.
var ErrNotFound = errors.New("not found")

// APIError is any non-2xx upstream response other than 404.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hr api error %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client authenticated via the OAuth2 client
// credentials flow against the platform token endpoint.
func NewClient(cfg *config.Config) *Client {
	cc := &clientcredentials.Config{
		ClientID:     cfg.HRAPI.ClientID,
		ClientSecret: cfg.HRAPI.ClientSecret,
		TokenURL:     cfg.HRAPI.TokenURL,
	}

	httpClient := cc.Client(context.Background())
	httpClient.Timeout = time.Duration(cfg.HRAPI.RequestTimeout) * time.Second

	return &Client{
		baseURL:    strings.TrimRight(cfg.HRAPI.BaseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, dst)
}

func (c *Client) post(ctx context.Context, path string, payload any, dst any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, dst)
}

func (c *Client) do(req *http.Request, dst any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hr api request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decoding hr api response: %w", err)
	}
	return nil
}
