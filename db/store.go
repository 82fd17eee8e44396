package db

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"anime-recommender/models"

	"github.com/philippgille/chromem-go"
)

// CollectionName 애니메이션 문서를 담는 컬렉션 이름
const CollectionName = "anime"

// collectionMetadata cosine 거리 계산 방식 설정
var collectionMetadata = map[string]string{
	"hnsw:space": "cosine",
}

// Entry 임베딩이 계산된 저장 대상 문서
type Entry struct {
	Position int // 처리 CSV 내 위치 (ID로 사용)
	Content  string
	Vector   []float32
}

// Store chromem-go 기반 영속 벡터 저장소
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	path       string
}

// NewStore 벡터 저장소를 엽니다 (기존 DB가 있으면 로드, 없으면 생성)
func NewStore(dbPath string) (*Store, error) {
	db, err := chromem.NewPersistentDB(dbPath, false)
	if err != nil {
		return nil, fmt.Errorf("open vector store %s: %w", dbPath, err)
	}

	collection, err := db.GetOrCreateCollection(CollectionName, collectionMetadata, nil)
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}

	return &Store{
		db:         db,
		collection: collection,
		path:       dbPath,
	}, nil
}

// Exists DB 디렉터리가 존재하는지 확인합니다
func Exists(dbPath string) bool {
	_, err := os.Stat(dbPath)
	return err == nil
}

// HasDocuments 저장소가 존재하고 문서가 하나 이상 있는지 확인합니다.
// 저장소가 없으면 만들지 않고 false를 반환합니다.
func HasDocuments(dbPath string) (bool, error) {
	if !Exists(dbPath) {
		return false, nil
	}
	s, err := NewStore(dbPath)
	if err != nil {
		return false, err
	}
	return s.Count() > 0, nil
}

// Path 저장소 경로를 반환합니다
func (s *Store) Path() string {
	return s.path
}

// Count 저장된 문서의 개수를 반환합니다
func (s *Store) Count() int {
	return s.collection.Count()
}

// Reset 컬렉션을 비웁니다 (재빌드 시 중복 방지)
func (s *Store) Reset() error {
	if err := s.db.DeleteCollection(CollectionName); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	collection, err := s.db.GetOrCreateCollection(CollectionName, collectionMetadata, nil)
	if err != nil {
		return fmt.Errorf("recreate collection: %w", err)
	}
	s.collection = collection
	return nil
}

// Add 임베딩이 계산된 문서를 저장합니다
func (s *Store) Add(ctx context.Context, e Entry) error {
	if len(e.Vector) == 0 {
		return fmt.Errorf("document %d has no embedding", e.Position)
	}

	doc := chromem.Document{
		ID:        strconv.Itoa(e.Position),
		Metadata:  map[string]string{"row": strconv.Itoa(e.Position)},
		Embedding: e.Vector,
		Content:   e.Content,
	}
	if err := s.collection.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document %d: %w", e.Position, err)
	}
	return nil
}

// Search 쿼리 벡터와 유사한 문서를 최대 topK개 반환합니다.
// minSimilarity보다 유사도가 낮은 결과는 제외합니다.
func (s *Store) Search(ctx context.Context, queryVector []float32, topK int, minSimilarity float32) ([]models.Document, error) {
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("empty query vector")
	}

	// chromem-go는 nResults가 문서 수보다 크면 에러를 반환합니다
	n := min(topK, s.collection.Count())
	if n <= 0 {
		return nil, nil
	}

	results, err := s.collection.QueryEmbedding(ctx, queryVector, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	documents := make([]models.Document, 0, len(results))
	for _, r := range results {
		if r.Similarity < minSimilarity {
			continue
		}
		documents = append(documents, models.Document{
			ID:         r.ID,
			Content:    r.Content,
			Metadata:   r.Metadata,
			Similarity: r.Similarity,
		})
	}
	return documents, nil
}

// GetByID ID로 특정 문서를 가져옵니다
func (s *Store) GetByID(ctx context.Context, id string) (models.Document, error) {
	r, err := s.collection.GetByID(ctx, id)
	if err != nil {
		return models.Document{}, fmt.Errorf("get document %s: %w", id, err)
	}
	return models.Document{ID: r.ID, Content: r.Content, Metadata: r.Metadata}, nil
}
