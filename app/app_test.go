package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"anime-recommender/config"
	"anime-recommender/db"
	"anime-recommender/llm"
	"anime-recommender/logger"
	"anime-recommender/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		LLMProvider:       "groq",
		ModelName:         "llama-3.1-8b-instant",
		GroqBaseURL:       llm.DefaultGroqBaseURL,
		EmbeddingProvider: "huggingface",
		TopK:              4,
		SourceCSV:         filepath.Join(dir, "anime.csv"),
		ProcessedCSV:      filepath.Join(dir, "processed.csv"),
		VectorStorePath:   filepath.Join(dir, "chroma_db"),
		LogsDir:           filepath.Join(dir, "logs"),
		LogFormat:         "text",
	}
}

func TestNewLogger_UsesConfiguredDir(t *testing.T) {
	cfg := testConfig(t)

	lg, err := NewLogger(cfg)
	require.NoError(t, err)
	defer lg.Close()

	assert.Equal(t, cfg.LogsDir, filepath.Dir(lg.Path()))
}

func TestNewTextGenerator_DefaultsToGroq(t *testing.T) {
	gen, closer, err := NewTextGenerator(context.Background(), testConfig(t))
	require.NoError(t, err)
	assert.IsType(t, &llm.Groq{}, gen)
	assert.NoError(t, closer())
}

func TestNewRecommender_RequiresBuiltStore(t *testing.T) {
	cfg := testConfig(t)
	lg, err := logger.New(logger.Config{Dir: cfg.LogsDir})
	require.NoError(t, err)
	defer lg.Close()

	_, _, err = NewRecommender(context.Background(), cfg, lg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run the pipeline first")
}

func TestNewPipeline_MissingSourceFails(t *testing.T) {
	cfg := testConfig(t)
	lg, err := logger.New(logger.Config{Dir: cfg.LogsDir})
	require.NoError(t, err)
	defer lg.Close()

	_, err = NewPipeline(cfg, lg).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// 실패한 실행 뒤에도 다음 실행에서 다시 빌드해야 합니다
	need, err := NeedsBuild(cfg)
	require.NoError(t, err)
	assert.True(t, need)
}

func TestNewPipeline_StoreSetupFailureIsLogged(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SourceCSV, []byte("Name,Genres,sypnopsis\nA,Action,Plot\n"), 0o600))
	// 디렉터리 자리에 일반 파일이 있으면 저장소를 열 수 없습니다
	require.NoError(t, os.WriteFile(cfg.VectorStorePath, []byte("not a dir"), 0o600))

	lg, err := logger.New(logger.Config{Dir: cfg.LogsDir})
	require.NoError(t, err)

	_, err = NewPipeline(cfg, lg).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, models.KindPipeline, models.KindOf(err))
	assert.True(t, models.IsKind(err, models.KindIO))
	require.NoError(t, lg.Close())

	data, err := os.ReadFile(lg.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "failed to execute pipeline")
}

func TestNeedsBuild(t *testing.T) {
	cfg := testConfig(t)

	need, err := NeedsBuild(cfg)
	require.NoError(t, err)
	assert.True(t, need, "missing store")

	store, err := db.NewStore(cfg.VectorStorePath)
	require.NoError(t, err)
	need, err = NeedsBuild(cfg)
	require.NoError(t, err)
	assert.True(t, need, "empty store")

	require.NoError(t, store.Add(context.Background(), db.Entry{Position: 0, Content: "x", Vector: []float32{1, 0}}))
	need, err = NeedsBuild(cfg)
	require.NoError(t, err)
	assert.False(t, need, "populated store")
}
