// Package config 환경 변수에서 애플리케이션 설정을 로드합니다.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config 애플리케이션 설정 구조체
type Config struct {
	// LLM
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"groq" validate:"oneof=groq gemini"`
	ModelName   string `env:"MODEL_NAME" envDefault:"llama-3.1-8b-instant" validate:"required"`
	GroqAPIKey  string `env:"GROQ_API_KEY"`
	GroqBaseURL string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1" validate:"url"`

	// 임베딩
	EmbeddingProvider string `env:"EMBEDDING_PROVIDER" envDefault:"huggingface" validate:"oneof=huggingface gemini ollama openai"`
	EmbeddingModel    string `env:"EMBEDDING_MODEL"`
	HuggingFaceToken  string `env:"HUGGINGFACEHUB_API_TOKEN"`
	HFInferenceURL    string `env:"HF_INFERENCE_URL" envDefault:"https://router.huggingface.co/hf-inference/models" validate:"url"`
	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	OllamaURL         string `env:"OLLAMA_URL" envDefault:"http://localhost:11434/api" validate:"url"`

	// 검색
	TopK          int     `env:"TOP_K" envDefault:"4" validate:"min=1"`
	MinSimilarity float32 `env:"MIN_SIMILARITY" envDefault:"0" validate:"min=0,max=1"`

	// 경로
	SourceCSV       string `env:"SOURCE_CSV" envDefault:"data/anime_with_synopsis.csv" validate:"required"`
	ProcessedCSV    string `env:"PROCESSED_CSV" envDefault:"data/anime_updated.csv" validate:"required"`
	VectorStorePath string `env:"VECTOR_STORE_PATH" envDefault:"chroma_db" validate:"required"`
	MetricsTextfile string `env:"METRICS_TEXTFILE"`

	// 로깅
	LogsDir    string `env:"LOGS_DIR" envDefault:"logs" validate:"required"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogConsole bool   `env:"LOG_CONSOLE" envDefault:"false"`
}

// defaultEmbeddingModels 제공자별 기본 임베딩 모델
var defaultEmbeddingModels = map[string]string{
	"huggingface": "sentence-transformers/all-MiniLM-L6-v2",
	"gemini":      "text-embedding-004",
	"ollama":      "nomic-embed-text",
	"openai":      "text-embedding-3-small",
}

// Load .env 파일(있는 경우)과 환경 변수에서 설정을 로드합니다.
// API 키는 여기서 검증하지 않습니다. 키가 없으면 해당 서비스 호출 시점에 실패합니다.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = defaultEmbeddingModels[cfg.EmbeddingProvider]
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// LLMAPIKey 선택된 LLM 제공자의 API 키를 반환합니다
func (c *Config) LLMAPIKey() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiAPIKey
	}
	return c.GroqAPIKey
}
