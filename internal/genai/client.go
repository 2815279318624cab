package genai

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

	"github.com/Santhosh-Billionaire/quizplatform/internal/apierr"
	"github.com/Santhosh-Billionaire/quizplatform/internal/logger"
)

// Client talks to a Gemini-style generateContent endpoint and returns the
// model's raw text. Parsing that text into questions is the normalizer's
// job, not the client's.
type Client struct {
	log        *logger.Logger
	baseURL    string
	model      string
	apiKey     string
	charBudget int
	httpClient *http.Client
}

type Config struct {
	BaseURL    string
	Model      string
	APIKey     string
	CharBudget int // max book characters embedded in the prompt
}

func NewClient(log *logger.Logger, cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("genai base url required")
	}
	if cfg.Model == "" {
		return nil, errors.New("genai model required")
	}
	if cfg.CharBudget <= 0 {
		cfg.CharBudget = 12000
	}
	return &Client{
		log:        log.With("service", "genai.Client"),
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		charBudget: cfg.CharBudget,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateQuestions asks the model for n multiple-choice questions over the
// book text and returns the raw response text.
func (c *Client) GenerateQuestions(ctx context.Context, bookText string, n int) (string, error) {
	prompt := BuildPrompt(bookText, n, c.charBudget)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", apierr.Upstream("AI_GENERATION_ERROR", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apierr.Upstream("AI_GENERATION_ERROR", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Info("requesting question generation", "model", c.model, "count", n, "prompt_chars", len(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierr.Upstream("AI_GENERATION_ERROR", fmt.Errorf("generative service request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", apierr.Upstream("AI_GENERATION_ERROR", fmt.Errorf("read generative service response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apierr.Upstream("AI_GENERATION_ERROR",
			fmt.Errorf("generative service returned status %d: %s", resp.StatusCode, truncate(string(raw), 512)))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", apierr.Upstream("AI_GENERATION_ERROR", fmt.Errorf("decode generative service response: %w", err))
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", apierr.Upstream("AI_GENERATION_ERROR", errors.New("generative service returned no candidates"))
	}

	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	c.log.Info("generation response received", "chars", len(text))
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
