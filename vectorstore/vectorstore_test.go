package vectorstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"anime-recommender/db"
	"anime-recommender/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywordEmbedder 키워드 포함 여부로 3차원 벡터를 만드는 테스트용 임베딩 생성기
type keywordEmbedder struct {
	failOn  string
	queries []string
}

func (k *keywordEmbedder) vector(text string) []float32 {
	v := []float32{0.01, 0.01, 0.01}
	if strings.Contains(strings.ToLower(text), "action") {
		v[0] = 1
	}
	if strings.Contains(strings.ToLower(text), "romance") {
		v[1] = 1
	}
	if strings.Contains(strings.ToLower(text), "horror") {
		v[2] = 1
	}
	return v
}

func (k *keywordEmbedder) EmbedDocument(_ context.Context, text string) ([]float32, error) {
	if k.failOn != "" && strings.Contains(text, k.failOn) {
		return nil, errors.New("embedding service unavailable")
	}
	return k.vector(text), nil
}

func (k *keywordEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	k.queries = append(k.queries, text)
	return k.vector(text), nil
}

func (k *keywordEmbedder) Close() error { return nil }

func writeProcessed(t *testing.T, dir string, rows ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("combined_info\n")
	for _, r := range rows {
		b.WriteString(`"` + r + `"` + "\n")
	}
	path := filepath.Join(dir, "processed.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func TestBuildAndSave_ThenRetrieve(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeProcessed(t, dir,
		"Title: Naruto..Overview: Ninjas.Genres : Action, Adventure",
		"Title: Clannad..Overview: School life.Genres : Romance, Drama",
		"Title: Another..Overview: A cursed class.Genres : Horror, Mystery",
	)
	store, err := db.NewStore(filepath.Join(dir, "chroma_db"))
	require.NoError(t, err)
	emb := &keywordEmbedder{}

	n, err := NewBuilder(store, emb, zerolog.Nop()).BuildAndSave(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, store.Count())

	docs, err := NewRetriever(store, emb, 1, 0).Retrieve(context.Background(), "romance please")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, docs[0].Content, "Clannad")
	assert.Equal(t, []string{"romance please"}, emb.queries)
}

func TestBuildAndSave_RebuildReplacesDocuments(t *testing.T) {
	dir := t.TempDir()
	store, err := db.NewStore(filepath.Join(dir, "chroma_db"))
	require.NoError(t, err)
	b := NewBuilder(store, &keywordEmbedder{}, zerolog.Nop())

	_, err = b.BuildAndSave(context.Background(), writeProcessed(t, dir, "a action", "b romance"))
	require.NoError(t, err)
	_, err = b.BuildAndSave(context.Background(), writeProcessed(t, dir, "c horror"))
	require.NoError(t, err)

	assert.Equal(t, 1, store.Count())
}

func TestBuildAndSave_EmbeddingFailure(t *testing.T) {
	dir := t.TempDir()
	store, err := db.NewStore(filepath.Join(dir, "chroma_db"))
	require.NoError(t, err)

	_, err = NewBuilder(store, &keywordEmbedder{failOn: "boom"}, zerolog.Nop()).
		BuildAndSave(context.Background(), writeProcessed(t, dir, "ok action", "boom"))
	require.Error(t, err)
	assert.Equal(t, models.KindExternal, models.KindOf(err))
	assert.Contains(t, err.Error(), "embedding service unavailable")
}

func TestBuildAndSave_MissingProcessedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := db.NewStore(filepath.Join(dir, "chroma_db"))
	require.NoError(t, err)

	_, err = NewBuilder(store, &keywordEmbedder{}, zerolog.Nop()).
		BuildAndSave(context.Background(), filepath.Join(dir, "missing.csv"))
	assert.Equal(t, models.KindIO, models.KindOf(err))
}

func TestRetrieve_EmptyStore(t *testing.T) {
	store, err := db.NewStore(filepath.Join(t.TempDir(), "chroma_db"))
	require.NoError(t, err)

	_, err = NewRetriever(store, &keywordEmbedder{}, 0, 0).Retrieve(context.Background(), "anything")
	require.Error(t, err)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
	assert.Contains(t, err.Error(), "run the pipeline first")
}
