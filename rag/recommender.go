// Package rag 검색된 애니메이션 문서를 근거로 LLM 추천 답변을 생성합니다.
package rag

import (
	"context"
	"strings"

	"anime-recommender/models"

	"github.com/rs/zerolog"
)

// Retriever 쿼리와 관련된 문서를 찾는 인터페이스
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]models.Document, error)
}

// TextGenerator 프롬프트로 텍스트를 생성하는 인터페이스
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Recommender RAG 추천을 수행하는 구조체
type Recommender struct {
	retriever Retriever
	llm       TextGenerator
	prompt    PromptTemplate
	log       zerolog.Logger
}

// Option Recommender 옵션
type Option func(*Recommender)

// WithPrompt 기본 프롬프트 템플릿을 바꿉니다
func WithPrompt(p PromptTemplate) Option {
	return func(r *Recommender) { r.prompt = p }
}

// WithLogger 로거를 설정합니다
func WithLogger(log zerolog.Logger) Option {
	return func(r *Recommender) { r.log = log }
}

// NewRecommender 새로운 추천기를 생성합니다
func NewRecommender(retriever Retriever, llm TextGenerator, opts ...Option) *Recommender {
	r := &Recommender{
		retriever: retriever,
		llm:       llm,
		prompt:    AnimePrompt,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetRecommendations 쿼리에 대한 추천 답변을 반환합니다
func (r *Recommender) GetRecommendations(ctx context.Context, query string) (string, error) {
	const op = "rag.GetRecommendations"

	// 1. 관련 문서 검색
	documents, err := r.retriever.Retrieve(ctx, query)
	if err != nil {
		return "", models.NewError(models.KindExternal, op, "retrieve documents", err)
	}

	// 2. 컨텍스트와 프롬프트 구성
	prompt := r.BuildPrompt(BuildContext(documents), query)

	r.log.Debug().
		Str("query", query).
		Int("documents", len(documents)).
		Int("prompt_len", len(prompt)).
		Msg("generating recommendations")

	// 3. LLM 호출
	answer, err := r.llm.Generate(ctx, prompt)
	if err != nil {
		return "", models.NewError(models.KindExternal, op, "generate answer", err)
	}
	return answer, nil
}

// BuildPrompt 컨텍스트와 질문으로 프롬프트를 구성합니다
func (r *Recommender) BuildPrompt(contextText, question string) string {
	return r.prompt.Format(contextText, question)
}

// BuildContext 검색된 문서 본문을 줄바꿈으로 이어 붙입니다
func BuildContext(documents []models.Document) string {
	parts := make([]string, len(documents))
	for i, doc := range documents {
		parts[i] = doc.Content
	}
	return strings.Join(parts, "\n")
}
