// Package vectorstore 처리된 CSV로 영속 벡터 인덱스를 구축하고 검색 시점의 리트리버를 제공합니다.
package vectorstore

import (
	"context"

	"anime-recommender/db"
	"anime-recommender/embedding"
	"anime-recommender/loader"
	"anime-recommender/models"

	"github.com/rs/zerolog"
)

// Builder 처리 CSV의 combined_info를 임베딩하여 벡터 저장소에 저장하는 구조체
type Builder struct {
	store    *db.Store
	embedder embedding.Embedder
	log      zerolog.Logger
}

// NewBuilder 새로운 벡터 저장소 빌더를 생성합니다
func NewBuilder(store *db.Store, embedder embedding.Embedder, log zerolog.Logger) *Builder {
	return &Builder{
		store:    store,
		embedder: embedder,
		log:      log,
	}
}

// BuildAndSave 처리 CSV를 읽어 기존 컬렉션을 비우고 모든 문서를 임베딩하여 저장합니다.
// 저장된 문서 수를 반환합니다.
func (b *Builder) BuildAndSave(ctx context.Context, processedCSV string) (int, error) {
	const op = "vectorstore.BuildAndSave"

	texts, err := loader.ReadProcessed(processedCSV)
	if err != nil {
		return 0, err
	}

	if err := b.store.Reset(); err != nil {
		return 0, models.NewError(models.KindExternal, op, "reset vector store", err)
	}

	for i, text := range texts {
		vector, err := b.embedder.EmbedDocument(ctx, text)
		if err != nil {
			return i, models.NewError(models.KindExternal, op, "embed document", err)
		}
		if err := b.store.Add(ctx, db.Entry{Position: i, Content: text, Vector: vector}); err != nil {
			return i, models.NewError(models.KindExternal, op, "store document", err)
		}

		if (i+1)%500 == 0 {
			b.log.Debug().Int("indexed", i+1).Int("total", len(texts)).Msg("embedding progress")
		}
	}

	b.log.Info().
		Str("path", b.store.Path()).
		Int("documents", len(texts)).
		Msg("vector store saved")

	return len(texts), nil
}
