package vectorstore

import (
	"context"
	"fmt"

	"anime-recommender/db"
	"anime-recommender/embedding"
	"anime-recommender/models"
)

// DefaultTopK 쿼리당 가져오는 기본 문서 수
const DefaultTopK = 4

// Retriever 쿼리를 임베딩하여 벡터 저장소에서 유사 문서를 찾는 구조체
type Retriever struct {
	store         *db.Store
	embedder      embedding.Embedder
	topK          int
	minSimilarity float32
}

// NewRetriever 새로운 리트리버를 생성합니다
func NewRetriever(store *db.Store, embedder embedding.Embedder, topK int, minSimilarity float32) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		store:         store,
		embedder:      embedder,
		topK:          topK,
		minSimilarity: minSimilarity,
	}
}

// Retrieve 쿼리와 관련된 문서를 유사도 순으로 반환합니다
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]models.Document, error) {
	const op = "vectorstore.Retrieve"

	if r.store.Count() == 0 {
		return nil, models.NewError(models.KindValidation, op,
			fmt.Sprintf("vector store %s is empty, run the pipeline first", r.store.Path()), nil)
	}

	queryVector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, models.NewError(models.KindExternal, op, "embed query", err)
	}

	documents, err := r.store.Search(ctx, queryVector, r.topK, r.minSimilarity)
	if err != nil {
		return nil, models.NewError(models.KindExternal, op, "search vector store", err)
	}
	return documents, nil
}
