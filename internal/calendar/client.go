package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://www.googleapis.com/calendar/v3"

// Event is the wire shape of a Google Calendar event, limited to the
// fields the sync touches.
type Event struct {
	ID                 string              `json:"id,omitempty"`
	Status             string              `json:"status,omitempty"`
	Summary            string              `json:"summary,omitempty"`
	Description        string              `json:"description,omitempty"`
	Start              *EventDateTime      `json:"start,omitempty"`
	End                *EventDateTime      `json:"end,omitempty"`
	ExtendedProperties *ExtendedProperties `json:"extendedProperties,omitempty"`
}

type EventDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type ExtendedProperties struct {
	Private map[string]string `json:"private,omitempty"`
}

// APIError is a non-2xx Calendar API response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("google calendar: status %d: %s", e.Status, e.Body)
}

// IsNotFound reports whether err is a calendar 404/410 (event gone).
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound || apiErr.Status == http.StatusGone
	}
	return false
}

// Client talks to the Google Calendar v3 REST API for one configured
// calendar.
type Client struct {
	baseURL    string
	calendarID string
	tokens     *TokenSource
	http       *retryablehttp.Client
	log        *zap.Logger
}

func NewClient(calendarID string, tokens *TokenSource, log *zap.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil

	return &Client{
		baseURL:    defaultBaseURL,
		calendarID: calendarID,
		tokens:     tokens,
		http:       rc,
		log:        log.With(zap.String("client", "google_calendar")),
	}
}

// ListEvents returns all events between timeMin and timeMax, cancelled
// ones included so the pull phase can see deletions.
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*Event, error) {
	params := url.Values{}
	params.Set("timeMin", timeMin.UTC().Format(time.RFC3339))
	params.Set("timeMax", timeMax.UTC().Format(time.RFC3339))
	params.Set("showDeleted", "true")
	params.Set("maxResults", "2500")
	params.Set("singleEvents", "true")

	var all []*Event
	pageToken := ""
	for {
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		body, err := c.do(ctx, http.MethodGet, c.eventsPath("")+"?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}

		var page struct {
			Items         []*Event `json:"items"`
			NextPageToken string   `json:"nextPageToken"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode events list: %w", err)
		}

		all = append(all, page.Items...)
		if page.NextPageToken == "" {
			return all, nil
		}
		pageToken = page.NextPageToken
	}
}

// InsertEvent creates an event and returns it with its assigned id.
func (c *Client) InsertEvent(ctx context.Context, event *Event) (*Event, error) {
	body, err := c.do(ctx, http.MethodPost, c.eventsPath(""), event)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	var created Event
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode inserted event: %w", err)
	}
	return &created, nil
}

// PatchEvent partially updates an event.
func (c *Client) PatchEvent(ctx context.Context, eventID string, event *Event) (*Event, error) {
	body, err := c.do(ctx, http.MethodPatch, c.eventsPath(eventID), event)
	if err != nil {
		return nil, fmt.Errorf("patch event %s: %w", eventID, err)
	}

	var updated Event
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("decode patched event: %w", err)
	}
	return &updated, nil
}

// DeleteEvent removes an event. Already-gone events are not an error.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	_, err := c.do(ctx, http.MethodDelete, c.eventsPath(eventID), nil)
	if err != nil && !IsNotFound(err) {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return nil
}

func (c *Client) eventsPath(eventID string) string {
	path := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))
	if eventID != "" {
		path += "/" + url.PathEscape(eventID)
	}
	return path
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode event payload: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build calendar request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s calendar: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read calendar response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("Calendar request failed",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return nil, &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
