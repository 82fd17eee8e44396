// Package pipeline 데이터 로딩과 벡터 저장소 구축을 하나의 배치 작업으로 실행합니다.
package pipeline

import (
	"context"
	"time"

	"anime-recommender/loader"
	"anime-recommender/metrics"
	"anime-recommender/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DataLoader 원본 CSV를 처리 CSV로 변환하는 단계
type DataLoader interface {
	LoadAndProcess(ctx context.Context) (*loader.Result, error)
}

// VectorBuilder 처리 CSV로 벡터 저장소를 구축하는 단계
type VectorBuilder interface {
	BuildAndSave(ctx context.Context, processedCSV string) (int, error)
}

// BuilderFactory 로딩이 끝난 뒤 벡터 저장소 빌더를 엽니다.
// 반환된 close 함수는 실행이 끝나면 호출됩니다.
type BuilderFactory func(ctx context.Context) (VectorBuilder, func() error, error)

// Static 이미 만들어진 빌더를 BuilderFactory로 감쌉니다
func Static(b VectorBuilder) BuilderFactory {
	return func(context.Context) (VectorBuilder, func() error, error) {
		return b, func() error { return nil }, nil
	}
}

// Report 성공한 실행의 요약
type Report struct {
	RunID     string
	Load      *loader.Result
	Documents int
	Elapsed   time.Duration
}

// Pipeline 배치 파이프라인 드라이버
type Pipeline struct {
	loader      DataLoader
	openBuilder BuilderFactory
	log         zerolog.Logger
	metrics     *metrics.Pipeline
	metricsPath string
	now         func() time.Time
}

// Option Pipeline 옵션
type Option func(*Pipeline)

// WithMetrics 실행마다 지표를 textfile로 기록합니다 (path가 비어 있으면 수집만 합니다)
func WithMetrics(m *metrics.Pipeline, path string) Option {
	return func(p *Pipeline) {
		p.metrics = m
		p.metricsPath = path
	}
}

// New 새로운 파이프라인을 생성합니다
func New(l DataLoader, open BuilderFactory, log zerolog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:      l,
		openBuilder: open,
		log:         log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run 데이터 로딩 후 벡터 저장소 구축을 실행합니다.
// 어느 단계든 실패하면 원인을 감싼 KindPipeline 에러를 반환하고 중단합니다.
func (p *Pipeline) Run(ctx context.Context) (report *Report, err error) {
	runID := uuid.NewString()
	log := p.log.With().Str("run_id", runID).Logger()
	start := p.now()

	defer func() {
		p.finish(log, err, p.now().Sub(start))
	}()

	log.Info().Msg("Starting to build pipeline")

	res, err := p.loader.LoadAndProcess(ctx)
	if err != nil {
		return nil, p.fail(log, err)
	}
	log.Info().Msg("Data loaded and processed successfully")
	p.observeLoad(res)

	builder, closeBuilder, err := p.openBuilder(ctx)
	if err != nil {
		return nil, p.fail(log, err)
	}
	defer func() {
		if cerr := closeBuilder(); cerr != nil {
			log.Warn().Err(cerr).Msg("could not close vector store builder")
		}
	}()

	n, err := builder.BuildAndSave(ctx, res.Path)
	if err != nil {
		return nil, p.fail(log, err)
	}
	log.Info().Int("documents", n).Msg("Vector store built successfully")
	if p.metrics != nil {
		p.metrics.Documents.Set(float64(n))
	}

	log.Info().Msg("Pipeline built successfully")

	return &Report{
		RunID:     runID,
		Load:      res,
		Documents: n,
		Elapsed:   p.now().Sub(start),
	}, nil
}

// fail 실패를 기록하고 원인을 파이프라인 에러로 감쌉니다
func (p *Pipeline) fail(log zerolog.Logger, cause error) error {
	log.Error().
		Err(cause).
		Str("kind", string(models.KindOf(cause))).
		Msg("failed to execute pipeline")
	return models.NewError(models.KindPipeline, "pipeline.Run", "error during pipeline initialization", cause)
}

func (p *Pipeline) observeLoad(res *loader.Result) {
	if p.metrics == nil || res == nil {
		return
	}
	p.metrics.RowsRead.Set(float64(res.RowsRead))
	p.metrics.RowsKept.Set(float64(res.RowsKept))
	p.metrics.RowsDropped.Set(float64(res.RowsDropped))
	p.metrics.LinesSkipped.Set(float64(res.LinesSkipped))
}

func (p *Pipeline) finish(log zerolog.Logger, err error, elapsed time.Duration) {
	if p.metrics == nil {
		return
	}
	p.metrics.ObserveRun(err, elapsed)
	if p.metricsPath == "" {
		return
	}
	if werr := p.metrics.WriteTextfile(p.metricsPath); werr != nil {
		log.Warn().Err(werr).Str("path", p.metricsPath).Msg("could not write metrics")
	}
}
