package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const openAIEndpoint = "https://api.openai.com/v1/responses"

// openAIClient asks the Responses API for a structured effort estimate.
// Transient failures (429, 5xx) are retried with exponential backoff,
// anything else is permanent.
type openAIClient struct {
	apiKey string
	model  string
	http   *http.Client
	log    *zap.Logger
}

func newOpenAIClient(cfg utils.OpenAIConfig, log *zap.Logger) *openAIClient {
	return &openAIClient{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		http:   &http.Client{Timeout: 20 * time.Second},
		log:    log.With(zap.String("client", "openai")),
	}
}

type effortResult struct {
	EffortHours float64  `json:"effortHours"`
	Items       []string `json:"items"`
}

type responsesOutput struct {
	Output []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

func (c *openAIClient) estimateEffort(ctx context.Context, text, service, propertyType string) (float64, []string, error) {
	payload := map[string]any{
		"model": c.model,
		"input": fmt.Sprintf(
			"Estimate the cleaning effort in hours for this extra request on a %s clean of a %s. Request: %q",
			service, propertyType, text,
		),
		"text": map[string]any{
			"format": map[string]any{
				"type": "json_schema",
				"name": "effort_estimate",
				"schema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"effortHours": map[string]any{"type": "number"},
						"items":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
					"required":             []string{"effortHours", "items"},
					"additionalProperties": false,
				},
			},
		},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode openai payload: %w", err)
	}

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, bytes.NewReader(raw))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("openai status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("openai status %d: %s", resp.StatusCode, respBody))
		}

		body = respBody
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return 0, nil, err
	}

	var parsed responsesOutput
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, nil, fmt.Errorf("decode openai response: %w", err)
	}

	for _, out := range parsed.Output {
		for _, content := range out.Content {
			if content.Text == "" {
				continue
			}
			var result effortResult
			if err := json.Unmarshal([]byte(content.Text), &result); err != nil {
				continue
			}
			if result.EffortHours < 0 {
				result.EffortHours = 0
			}
			return result.EffortHours, result.Items, nil
		}
	}

	return 0, nil, fmt.Errorf("openai response contained no structured output")
}
