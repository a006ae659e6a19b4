package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Client is a thin PostgREST client over the Supabase REST endpoint.
// One instance per process, safe for concurrent use.
type Client struct {
	baseURL    string
	serviceKey string
	http       *retryablehttp.Client
	log        *zap.Logger
}

func NewClient(baseURL, serviceKey string, log *zap.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil

	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		http:       rc,
		log:        log.With(zap.String("client", "supabase")),
	}
}

// Select runs GET /rest/v1/{table}?{filters} and decodes the row array into out.
func (c *Client) Select(ctx context.Context, table string, filters url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, table, filters, nil, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s rows: %w", table, err)
	}
	return nil
}

// Insert runs POST /rest/v1/{table}. When out is non-nil the inserted
// representation is requested and decoded into it.
func (c *Client) Insert(ctx context.Context, table string, rows any, out any) error {
	headers := map[string]string{}
	if out != nil {
		headers["Prefer"] = "return=representation"
	}

	body, err := c.do(ctx, http.MethodPost, table, nil, rows, headers)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode inserted %s rows: %w", table, err)
	}
	return nil
}

// Update runs PATCH /rest/v1/{table}?{filters} with a partial row.
// The updated representation is decoded into out when non-nil, which lets
// callers use filter predicates as a conditional update and inspect how
// many rows actually matched.
func (c *Client) Update(ctx context.Context, table string, filters url.Values, patch any, out any) error {
	headers := map[string]string{}
	if out != nil {
		headers["Prefer"] = "return=representation"
	}

	body, err := c.do(ctx, http.MethodPatch, table, filters, patch, headers)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode updated %s rows: %w", table, err)
	}
	return nil
}

// Upsert runs POST /rest/v1/{table}?on_conflict={key} with merge-duplicates
// resolution, the PostgREST insert-or-update.
func (c *Client) Upsert(ctx context.Context, table string, rows any, onConflict string) error {
	filters := url.Values{}
	if onConflict != "" {
		filters.Set("on_conflict", onConflict)
	}
	headers := map[string]string{
		"Prefer": "resolution=merge-duplicates",
	}

	_, err := c.do(ctx, http.MethodPost, table, filters, rows, headers)
	return err
}

// Delete runs DELETE /rest/v1/{table}?{filters}.
func (c *Client) Delete(ctx context.Context, table string, filters url.Values) error {
	_, err := c.do(ctx, http.MethodDelete, table, filters, nil, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, table string, filters url.Values, payload any, headers map[string]string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if len(filters) > 0 {
		endpoint += "?" + filters.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", table, err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", table, err)
	}

	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", table, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("Supabase request failed",
			zap.String("method", method),
			zap.String("table", table),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return nil, &Error{Status: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
