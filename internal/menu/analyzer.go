package menu

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"MenuImage_API/internal/models"
)

// extractionPrompt instructs the vision model to return menu items as a
// bare JSON array so the response can be unmarshaled directly.
const extractionPrompt = `Extract menu items, descriptions and prices from this menu photo. Return only valid JSON in the following form:
[{
    "name": "Grilled Chicken Caesar Salad",
    "keyword": "chicken caesar salad",
    "description": "null",
    "price": "$12.99"
}]
Keyword is the normalized keyword used to search for an image of the dish.
Do not return anything else than valid JSON. Your response must start and end with brackets. Do not include duplicates.
Ignore any text that is not a menu item, description or price. If you cannot extract any items, return an empty array.`

// VisionAnalyzer implements Analyzer against an OpenAI-compatible
// chat-completions endpoint with vision support.
type VisionAnalyzer struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatContent struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewVisionAnalyzer creates a new vision-LLM menu analyzer
func NewVisionAnalyzer(baseURL, apiKey, model string, timeout time.Duration) Analyzer {
	return newVisionAnalyzer(baseURL, apiKey, model, timeout)
}

// newVisionAnalyzer creates the concrete implementation
func newVisionAnalyzer(baseURL, apiKey, model string, timeout time.Duration) *VisionAnalyzer {
	return &VisionAnalyzer{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

// AnalyzeImage sends the menu photo to the vision model and parses the
// extracted items from its response
func (a *VisionAnalyzer) AnalyzeImage(ctx context.Context, image []byte, mimeType string) ([]models.MenuItem, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", models.ErrMenuAnalysisFailed)
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	payload := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []chatContent{
					{Type: "text", Text: extractionPrompt},
					{Type: "image_url", ImageURL: &chatImageURL{URL: dataURL}},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMenuAnalysisFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", models.ErrMenuAnalysisFailed, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: response contains no choices", models.ErrMenuAnalysisFailed)
	}

	items, err := parseMenuItems(chat.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMenuAnalysisFailed, err)
	}

	return ValidateMenuItems(items), nil
}

// parseMenuItems unmarshals the model output. Models occasionally wrap
// the array in prose or a code fence, so the outermost JSON array is
// sliced out before unmarshaling.
func parseMenuItems(content string) ([]models.MenuItem, error) {
	raw := extractJSONArray(content)
	if raw == "" {
		return nil, fmt.Errorf("no JSON array in model output")
	}

	var items []models.MenuItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("invalid JSON array in model output: %w", err)
	}

	return items, nil
}

// extractJSONArray returns the substring from the first '[' to the last
// ']' of the input, or "" when no array is present
func extractJSONArray(content string) string {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return content[start : end+1]
}
