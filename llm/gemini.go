package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini Gemini API로 답변을 생성하는 텍스트 생성기
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini 새로운 Gemini 텍스트 생성기를 생성합니다
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(0)

	return &Gemini{client: client, model: m}, nil
}

// Generate 프롬프트에 대한 답변 텍스트를 반환합니다
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	var parts []string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				parts = append(parts, string(text))
			}
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("gemini generate: empty response")
	}
	return strings.Join(parts, "\n"), nil
}

// Close 클라이언트를 닫습니다
func (g *Gemini) Close() error {
	return g.client.Close()
}
