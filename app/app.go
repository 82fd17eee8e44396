// Package app 설정으로부터 파이프라인과 추천기를 조립합니다.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"anime-recommender/config"
	"anime-recommender/db"
	"anime-recommender/embedding"
	"anime-recommender/llm"
	"anime-recommender/loader"
	"anime-recommender/logger"
	"anime-recommender/metrics"
	"anime-recommender/models"
	"anime-recommender/pipeline"
	"anime-recommender/rag"
	"anime-recommender/vectorstore"
)

// NewLogger 설정에 맞는 실행별 로거를 생성합니다
func NewLogger(cfg *config.Config) (*logger.Logger, error) {
	var console io.Writer
	if cfg.LogConsole {
		console = os.Stderr
	}
	return logger.New(logger.Config{
		Dir:     cfg.LogsDir,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Console: console,
	})
}

// NewEmbedder 설정된 제공자의 임베딩 생성기를 생성합니다
func NewEmbedder(ctx context.Context, cfg *config.Config) (embedding.Embedder, error) {
	return embedding.New(ctx, embedding.Options{
		Provider:         cfg.EmbeddingProvider,
		Model:            cfg.EmbeddingModel,
		HuggingFaceToken: cfg.HuggingFaceToken,
		HFInferenceURL:   cfg.HFInferenceURL,
		GeminiAPIKey:     cfg.GeminiAPIKey,
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OllamaURL:        cfg.OllamaURL,
	})
}

// Closer 리소스 정리 함수
type Closer func() error

// NewPipeline 로더, 벡터 저장소 빌더, 지표를 연결한 파이프라인을 생성합니다.
// 임베딩 생성기와 벡터 저장소는 로딩이 끝난 뒤 파이프라인 안에서 열립니다.
func NewPipeline(cfg *config.Config, lg *logger.Logger) *pipeline.Pipeline {
	return pipeline.New(
		loader.New(cfg.SourceCSV, cfg.ProcessedCSV, lg.Named("loader")),
		builderFactory(cfg, lg),
		lg.Named("pipeline"),
		pipeline.WithMetrics(metrics.NewPipeline(), cfg.MetricsTextfile),
	)
}

func builderFactory(cfg *config.Config, lg *logger.Logger) pipeline.BuilderFactory {
	return func(ctx context.Context) (pipeline.VectorBuilder, func() error, error) {
		const op = "app.openBuilder"

		embedder, err := NewEmbedder(ctx, cfg)
		if err != nil {
			return nil, nil, models.NewError(models.KindExternal, op, "create embedder", err)
		}

		store, err := db.NewStore(cfg.VectorStorePath)
		if err != nil {
			embedder.Close()
			return nil, nil, models.NewError(models.KindIO, op, "open vector store", err)
		}

		return vectorstore.NewBuilder(store, embedder, lg.Named("vectorstore")), embedder.Close, nil
	}
}

// NeedsBuild 벡터 저장소가 없거나 비어 있으면 true를 반환합니다
func NeedsBuild(cfg *config.Config) (bool, error) {
	ok, err := db.HasDocuments(cfg.VectorStorePath)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// NewTextGenerator 설정된 LLM 제공자의 텍스트 생성기를 생성합니다
func NewTextGenerator(ctx context.Context, cfg *config.Config) (rag.TextGenerator, Closer, error) {
	switch cfg.LLMProvider {
	case "gemini":
		g, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.ModelName)
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	default:
		return llm.NewGroq(cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.ModelName), func() error { return nil }, nil
	}
}

// NewRecommender 영속 벡터 저장소와 LLM을 연결한 추천기를 생성합니다
func NewRecommender(ctx context.Context, cfg *config.Config, lg *logger.Logger) (*rag.Recommender, Closer, error) {
	if !db.Exists(cfg.VectorStorePath) {
		return nil, nil, fmt.Errorf("vector store %s not found, run the pipeline first", cfg.VectorStorePath)
	}

	store, err := db.NewStore(cfg.VectorStorePath)
	if err != nil {
		return nil, nil, err
	}

	embedder, err := NewEmbedder(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create embedder: %w", err)
	}

	generator, closeGen, err := NewTextGenerator(ctx, cfg)
	if err != nil {
		embedder.Close()
		return nil, nil, fmt.Errorf("create text generator: %w", err)
	}

	r := rag.NewRecommender(
		vectorstore.NewRetriever(store, embedder, cfg.TopK, cfg.MinSimilarity),
		generator,
		rag.WithLogger(lg.Named("recommender")),
	)

	closer := func() error {
		var errs []error
		if err := closeGen(); err != nil {
			errs = append(errs, err)
		}
		if err := embedder.Close(); err != nil {
			errs = append(errs, err)
		}
		if len(errs) > 0 {
			return fmt.Errorf("close resources: %v", errs)
		}
		return nil
	}
	return r, closer, nil
}
