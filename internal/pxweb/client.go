// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package pxweb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kosovotools/kasfetch/internal/logger"
)

const (
	logName = "kasfetch:pxweb"

	// rateLimitPause is how long to wait before trying the next base after
	// the API answered with 429.
	rateLimitPause = time.Second
)

// QueryItem selects the wanted value codes for one table dimension.
type QueryItem struct {
	Code      string    `json:"code"`
	Selection Selection `json:"selection"`
}

// Selection is the PxWeb selection clause of a query item.
type Selection struct {
	Filter string   `json:"filter"`
	Values []string `json:"values"`
}

// ItemSelection builds a query item that picks the given value codes.
func ItemSelection(code string, values ...string) QueryItem {
	return QueryItem{
		Code: code,
		Selection: Selection{
			Filter: "item",
			Values: values,
		},
	}
}

// DataRequest is the body of a PxWeb data POST.
type DataRequest struct {
	Query    []QueryItem    `json:"query"`
	Response ResponseFormat `json:"response"`
}

// ResponseFormat selects the wire format of the data response.
type ResponseFormat struct {
	Format string `json:"format"`
}

// Client issues metadata and data requests against a PxWeb instance, trying
// every configured API base in order. The underlying http.Client is shared
// across calls for connection reuse.
type Client struct {
	config

	client *http.Client
}

// NewClient creates a PxWeb client reading the needed configuration from the
// env variables.
func NewClient() (*Client, error) {
	config, err := loadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return &Client{
		config: *config,
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: logger.NewTransport(nil),
		},
	}, nil
}

// Bases returns the API base URLs the client will try, in order.
func (c *Client) Bases() []string {
	return c.APIBases
}

// GetMeta fetches the table metadata for the given folder path segments.
func (c *Client) GetMeta(ctx context.Context, parts []string, lang string) (*Meta, error) {
	raw, err := c.GetMetaRaw(ctx, parts, lang)
	if err != nil {
		return nil, err
	}

	meta := new(Meta)
	if err := json.Unmarshal(raw, meta); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedFormat, err.Error())
	}

	return meta, nil
}

// GetMetaRaw fetches the table metadata and returns the undecoded body. It is
// used by the inspect command to dump the API payloads as received.
func (c *Client) GetMetaRaw(ctx context.Context, parts []string, lang string) (json.RawMessage, error) {
	log := logger.FromContext(ctx).WithName(logName)

	var lastErr error
	for _, base := range c.APIBases {
		url := apiJoin(base, parts, lang)
		body, status, err := c.doRequest(ctx, http.MethodGet, url, nil)
		if err != nil {
			lastErr = err
			continue
		}
		if isSuccess(status) {
			return body, nil
		}

		lastErr = fmt.Errorf("%w: GET %s -> %d", ErrRequestFailed, url, status)
		log.Debug("metadata fetch failed, trying next base", "url", url, "status", status)
	}

	return nil, lastErr
}

// PostData posts a data query for the given table and decodes the returned cube.
func (c *Client) PostData(ctx context.Context, parts []string, query []QueryItem, lang string) (*Cube, error) {
	raw, err := c.PostDataRaw(ctx, parts, query, lang)
	if err != nil {
		return nil, err
	}

	cube := new(Cube)
	if err := json.Unmarshal(raw, cube); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedFormat, err.Error())
	}

	return cube, nil
}

// PostDataRaw posts a data query and returns the undecoded body. The JSON
// response format is always requested.
func (c *Client) PostDataRaw(ctx context.Context, parts []string, query []QueryItem, lang string) (json.RawMessage, error) {
	log := logger.FromContext(ctx).WithName(logName)

	payload, err := json.Marshal(DataRequest{
		Query:    query,
		Response: ResponseFormat{Format: "JSON"},
	})
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, base := range c.APIBases {
		url := apiJoin(base, parts, lang)
		body, status, err := c.doRequest(ctx, http.MethodPost, url, payload)
		if err != nil {
			lastErr = err
			continue
		}
		if isSuccess(status) {
			return body, nil
		}

		lastErr = fmt.Errorf("%w: POST %s -> %d %s", ErrRequestFailed, url, status, truncate(string(body), 200))
		log.Debug("data fetch failed, trying next base", "url", url, "status", status)

		// be gentle with possible rate limits
		if status == http.StatusTooManyRequests {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(rateLimitPause):
			}
		}
	}

	return nil, lastErr
}

// doRequest performs one HTTP call and drains the response body.
func (c *Client) doRequest(ctx context.Context, method, url string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrRequestFailed, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %s", ErrRequestFailed, err.Error())
	}

	return body, resp.StatusCode, nil
}

// apiJoin builds the request URL as <base>/<lang>/<escaped segment>...
func apiJoin(base string, parts []string, lang string) string {
	segments := make([]string, 0, len(parts)+2)
	segments = append(segments, strings.TrimRight(base, "/"), lang)
	for _, part := range parts {
		segments = append(segments, url.PathEscape(part))
	}

	return strings.Join(segments, "/")
}

// isSuccess reports whether status is in the 2xx range.
func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// truncate shortens s to at most max characters without splitting a rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
