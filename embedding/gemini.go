package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini Gemini API를 사용하여 텍스트를 임베딩으로 변환하는 구조체
type Gemini struct {
	client   *genai.Client
	document *genai.EmbeddingModel
	query    *genai.EmbeddingModel
}

// NewGemini 새로운 Gemini 임베딩 생성기를 생성합니다
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = "text-embedding-004"
	}

	// 인덱싱과 검색은 task type이 다릅니다
	document := client.EmbeddingModel(model)
	document.TaskType = genai.TaskTypeRetrievalDocument
	query := client.EmbeddingModel(model)
	query.TaskType = genai.TaskTypeRetrievalQuery

	return &Gemini{
		client:   client,
		document: document,
		query:    query,
	}, nil
}

func (g *Gemini) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return embedWith(ctx, g.document, text)
}

func (g *Gemini) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return embedWith(ctx, g.query, text)
}

func embedWith(ctx context.Context, model *genai.EmbeddingModel, text string) ([]float32, error) {
	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini embed: empty embedding")
	}

	values := resp.Embedding.Values
	result := make([]float32, len(values))
	for i, v := range values {
		result[i] = float32(v)
	}
	return result, nil
}

// Close 클라이언트를 닫습니다
func (g *Gemini) Close() error {
	return g.client.Close()
}
