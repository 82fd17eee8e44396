// Package llm 프롬프트를 받아 텍스트를 생성하는 LLM 클라이언트를 제공합니다.
// 모든 클라이언트는 temperature 0으로 호출하며 재시도하지 않습니다.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultGroqBaseURL Groq의 OpenAI 호환 API 주소
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// Groq OpenAI 호환 chat completions API를 호출하는 텍스트 생성기
type Groq struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewGroq 새로운 Groq 클라이언트를 생성합니다
func NewGroq(baseURL, apiKey, model string) *Groq {
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	return &Groq{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate 프롬프트를 단일 user 메시지로 보내고 응답 텍스트를 반환합니다
func (g *Groq) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("groq chat: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("groq chat: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq chat: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("groq chat: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("groq chat: status %d: %s", resp.StatusCode, snippet(raw, 512))
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("groq chat decode: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("groq chat: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("groq chat: no choices in response")
	}
	return out.Choices[0].Message.Content, nil
}

func snippet(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
