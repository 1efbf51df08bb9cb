package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	betaHeader     = "structured-outputs-2025-11-13"
	defaultModel   = "claude-haiku-4-5-20251001"
)

// APIKeyEnv holds the Anthropic API key.
const APIKeyEnv = "ANTHROPIC_API_KEY"

var (
	ErrNoAPIKey        = errors.New("ANTHROPIC_API_KEY environment variable not set")
	ErrAPIRequest      = errors.New("API request failed")
	ErrInvalidResponse = errors.New("invalid API response")
)

// ClientConfig configures a Client.
type ClientConfig struct {
	APIKey  string
	Model   string // defaults to Haiku
	BaseURL string // defaults to the Anthropic API
	Timeout time.Duration
}

// Client handles communication with the Anthropic API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client from ANTHROPIC_API_KEY.
// Returns ErrNoAPIKey if it is not set.
func NewClient(model string) (*Client, error) {
	return NewClientWithConfig(ClientConfig{
		APIKey: os.Getenv(APIKeyEnv),
		Model:  model,
	})
}

// NewClientWithConfig creates a client from an explicit configuration.
func NewClientWithConfig(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// SuggestTitle asks for a short display title for a link.
func (c *Client) SuggestTitle(ctx context.Context, url string) (*TitleResponse, error) {
	schema := jsonSchema{
		Type: "object",
		Properties: map[string]schemaProp{
			"title": {Type: "string"},
		},
		Required:             []string{"title"},
		AdditionalProperties: false,
	}

	var result TitleResponse
	if err := c.complete(ctx, buildTitlePrompt(url), schema, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SuggestCategory asks for a group name that fits the given link titles.
// groups describes the existing groups, see BuildContext.
func (c *Client) SuggestCategory(ctx context.Context, titles []string, groups string) (*CategoryResponse, error) {
	schema := jsonSchema{
		Type: "object",
		Properties: map[string]schemaProp{
			"category": {Type: "string"},
		},
		Required:             []string{"category"},
		AdditionalProperties: false,
	}

	var result CategoryResponse
	if err := c.complete(ctx, buildCategoryPrompt(titles, groups), schema, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// complete sends a single-turn request with structured output and decodes
// the JSON answer into out.
func (c *Client) complete(ctx context.Context, prompt string, schema jsonSchema, out any) error {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: 128,
		Messages: []apiMessage{
			{Role: "user", Content: prompt},
		},
		OutputFormat: &outputFormat{
			Type:   "json_schema",
			Schema: schema,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("anthropic-beta", betaHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAPIRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", ErrAPIRequest, resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if len(apiResp.Content) == 0 || apiResp.Content[0].Type != "text" {
		return ErrInvalidResponse
	}

	if err := json.Unmarshal([]byte(apiResp.Content[0].Text), out); err != nil {
		return fmt.Errorf("unmarshal AI response: %w", err)
	}

	return nil
}

func buildTitlePrompt(url string) string {
	return fmt.Sprintf(`Suggest a display title for this link on a start page.

URL: %s

Instructions:
- Use the name of the site or product, not a sentence
- At most three words
- Keep the original capitalisation of brand names`, url)
}

func buildCategoryPrompt(titles []string, groups string) string {
	links := "(none yet)"
	if len(titles) > 0 {
		links = "- " + strings.Join(titles, "\n- ")
	}
	return fmt.Sprintf(`Suggest a name for a group of links on a start page.

Links in the group:
%s

%s

Instructions:
- One or two words
- Describe what the links have in common
- Do not reuse the name of an existing group`, links, groups)
}
