package ai

// TitleResponse is the suggested title for a link.
type TitleResponse struct {
	Title string `json:"title"`
}

// CategoryResponse is the suggested name for a group.
type CategoryResponse struct {
	Category string `json:"category"`
}

// apiRequest represents the Anthropic API request body.
type apiRequest struct {
	Model        string        `json:"model"`
	MaxTokens    int           `json:"max_tokens"`
	Messages     []apiMessage  `json:"messages"`
	OutputFormat *outputFormat `json:"output_format,omitempty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type outputFormat struct {
	Type   string     `json:"type"`
	Schema jsonSchema `json:"schema"`
}

type jsonSchema struct {
	Type                 string                `json:"type"`
	Properties           map[string]schemaProp `json:"properties"`
	Required             []string              `json:"required"`
	AdditionalProperties bool                  `json:"additionalProperties"`
}

type schemaProp struct {
	Type  string      `json:"type"`
	Items *schemaProp `json:"items,omitempty"`
}

// apiResponse represents the Anthropic API response body.
type apiResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
