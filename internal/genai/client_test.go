package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Santhosh-Billionaire/quizplatform/internal/apierr"
	"github.com/Santhosh-Billionaire/quizplatform/internal/logger"
)

func candidateResponse(text string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(logger.NewNop(), Config{
		BaseURL:    baseURL,
		Model:      "test-model",
		APIKey:     "k",
		CharBudget: 100,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestGenerateQuestionsExtractsText(t *testing.T) {
	var gotPath string
	var gotBody generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(candidateResponse(" [{\"question\":\"Q\"}] ")))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	text, err := c.GenerateQuestions(context.Background(), "book text", 5)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if text != `[{"question":"Q"}]` {
		t.Errorf("text = %q", text)
	}
	if gotPath != "/models/test-model:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 {
		t.Fatalf("request body = %+v", gotBody)
	}
	prompt := gotBody.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "generate 5 multiple choice questions") {
		t.Errorf("count not in prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "book text") {
		t.Errorf("book text not in prompt")
	}
}

func TestGenerateQuestionsUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GenerateQuestions(context.Background(), "text", 1)
	if err == nil {
		t.Fatal("want error")
	}
	if apierr.CodeOf(err) != "AI_GENERATION_ERROR" {
		t.Errorf("code = %q", apierr.CodeOf(err))
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("status missing from error: %v", err)
	}
}

func TestGenerateQuestionsNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GenerateQuestions(context.Background(), "text", 1)
	if apierr.CodeOf(err) != "AI_GENERATION_ERROR" {
		t.Errorf("code = %q (err: %v)", apierr.CodeOf(err), err)
	}
}

func TestBuildPromptTruncates(t *testing.T) {
	long := strings.Repeat("x", 500)
	p := BuildPrompt(long, 3, 100)
	if strings.Count(p, "x") != 100 {
		t.Errorf("book text not truncated to budget: %d", strings.Count(p, "x"))
	}
}
