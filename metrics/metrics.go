// Package metrics 파이프라인 실행 지표를 수집하고 node-exporter textfile 형식으로 기록합니다.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline 한 번의 파이프라인 실행 지표
type Pipeline struct {
	registry *prometheus.Registry

	RowsRead     prometheus.Gauge
	RowsKept     prometheus.Gauge
	RowsDropped  prometheus.Gauge
	LinesSkipped prometheus.Gauge
	Documents    prometheus.Gauge
	Duration     prometheus.Gauge
	LastSuccess  prometheus.Gauge
	Runs         *prometheus.CounterVec
}

// NewPipeline 전용 레지스트리에 지표를 등록합니다
func NewPipeline() *Pipeline {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "anime_recommender",
			Subsystem: "pipeline",
			Name:      name,
			Help:      help,
		})
	}

	p := &Pipeline{
		registry:     prometheus.NewRegistry(),
		RowsRead:     gauge("rows_read", "Data rows parsed from the source CSV."),
		RowsKept:     gauge("rows_kept", "Rows written to the processed CSV."),
		RowsDropped:  gauge("rows_dropped", "Rows dropped because of missing values."),
		LinesSkipped: gauge("lines_skipped", "Malformed CSV lines skipped."),
		Documents:    gauge("documents_indexed", "Documents stored in the vector store."),
		Duration:     gauge("duration_seconds", "Wall time of the last run."),
		LastSuccess:  gauge("last_success", "1 if the last run succeeded, 0 otherwise."),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "anime_recommender",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Pipeline runs by result.",
		}, []string{"result"}),
	}

	p.registry.MustRegister(
		p.RowsRead, p.RowsKept, p.RowsDropped, p.LinesSkipped,
		p.Documents, p.Duration, p.LastSuccess, p.Runs,
	)
	return p
}

// ObserveRun 실행 결과와 소요 시간을 기록합니다
func (p *Pipeline) ObserveRun(err error, elapsed time.Duration) {
	p.Duration.Set(elapsed.Seconds())
	if err != nil {
		p.LastSuccess.Set(0)
		p.Runs.WithLabelValues("failure").Inc()
		return
	}
	p.LastSuccess.Set(1)
	p.Runs.WithLabelValues("success").Inc()
}

// WriteTextfile 지표를 textfile collector 형식으로 원자적으로 기록합니다
func (p *Pipeline) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
