// Package embedding 텍스트를 임베딩 벡터로 변환하는 제공자들을 정의합니다.
package embedding

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"
)

// Embedder 문서와 쿼리를 임베딩 벡터로 변환하는 인터페이스
type Embedder interface {
	// EmbedDocument 인덱싱할 문서 텍스트를 임베딩합니다
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	// EmbedQuery 검색 쿼리를 임베딩합니다
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Close() error
}

// Options 제공자 선택과 자격 증명
type Options struct {
	Provider         string // huggingface, gemini, ollama, openai
	Model            string
	HuggingFaceToken string
	HFInferenceURL   string
	GeminiAPIKey     string
	OpenAIAPIKey     string
	OllamaURL        string
}

// New 설정된 제공자의 임베딩 생성기를 생성합니다
func New(ctx context.Context, opts Options) (Embedder, error) {
	switch opts.Provider {
	case "", "huggingface":
		return NewHuggingFace(opts.HFInferenceURL, opts.HuggingFaceToken, opts.Model), nil
	case "gemini":
		return NewGemini(ctx, opts.GeminiAPIKey, opts.Model)
	case "ollama":
		return NewFunc(chromem.NewEmbeddingFuncOllama(opts.Model, opts.OllamaURL)), nil
	case "openai":
		return NewFunc(chromem.NewEmbeddingFuncOpenAI(opts.OpenAIAPIKey, chromem.EmbeddingModelOpenAI(opts.Model))), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", opts.Provider)
	}
}

// Func chromem-go 임베딩 함수를 Embedder로 감싼 구조체 (문서/쿼리 구분 없음)
type Func struct {
	fn chromem.EmbeddingFunc
}

// NewFunc chromem.EmbeddingFunc로 Embedder를 생성합니다
func NewFunc(fn chromem.EmbeddingFunc) *Func {
	return &Func{fn: fn}
}

func (f *Func) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return f.fn(ctx, text)
}

func (f *Func) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return f.fn(ctx, text)
}

func (f *Func) Close() error { return nil }
