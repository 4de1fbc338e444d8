package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/document-metadata-api/internal/utils"
)

const (
	DefaultBaseURL = "https://api.mistral.ai/v1"
	DefaultModel   = "mistral-large-latest"

	summarySampleLength  = 3000
	classifySampleLength = 1000
	summaryWords         = 200
)

// InsightGenerator produces LLM-derived fields for a document.
type InsightGenerator interface {
	Summarize(ctx context.Context, text string) (string, error)
	KeyPoints(ctx context.Context, text string, n int) ([]string, error)
	Classify(ctx context.Context, text string) (string, error)
}

type ChatConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}

// ChatClient talks to an OpenAI-compatible chat completions endpoint.
type ChatClient struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	logger      *utils.Logger
	client      *http.Client
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Choices []Choice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

type Choice struct {
	Message Message `json:"message"`
}

func NewChatClient(cfg ChatConfig, logger *utils.Logger) *ChatClient {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &ChatClient{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		temperature: cfg.Temperature,
		logger:      logger,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *ChatClient) Summarize(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(`Please provide a concise summary of the following document in approximately %d words.
Focus on the main points, key findings, and important information.

Document text:
%s

Summary:`, summaryWords, sample(text, summarySampleLength))

	content, err := c.complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (c *ChatClient) KeyPoints(ctx context.Context, text string, n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}

	prompt := fmt.Sprintf(`Extract the %d most important key points from this document.
Present them as a numbered list, each point should be concise and informative.

Document text:
%s

Key Points:`, n, sample(text, summarySampleLength))

	content, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	points := make([]string, 0, n)
	for _, line := range strings.Split(content, "\n") {
		if len(points) == n {
			break
		}
		if line = strings.TrimSpace(line); line != "" {
			points = append(points, line)
		}
	}
	return points, nil
}

func (c *ChatClient) Classify(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(`Classify this document type in one or two words (e.g., Report, Research Paper, Manual, Letter, Article, etc.):

%s

Document Type:`, sample(text, classifySampleLength))

	content, err := c.complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (c *ChatClient) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model: c.model,
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature: c.temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("LLM API error", "status", resp.StatusCode, "body", string(body))
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("LLM API error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// sample returns at most n leading characters of text.
func sample(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
