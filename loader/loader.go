// Package loader 원본 애니메이션 CSV를 검증하고 combined_info 컬럼만 담은 CSV로 변환합니다.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"anime-recommender/models"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CombinedColumn 처리된 CSV의 유일한 컬럼 이름
const CombinedColumn = "combined_info"

// 필수 컬럼 이름 (원본 데이터셋의 철자 그대로)
const (
	ColumnName     = "Name"
	ColumnGenres   = "Genres"
	ColumnSynopsis = "sypnopsis"
)

var requiredColumns = []string{ColumnName, ColumnGenres, ColumnSynopsis}

// naValues 결측값으로 취급하는 셀 값 (빈 문자열 포함)
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// Result 로드 결과와 버려진 행 통계
type Result struct {
	Path         string // 생성된 처리 CSV 경로
	RowsRead     int    // 파싱에 성공한 데이터 행 수
	RowsKept     int    // 출력된 행 수
	RowsDropped  int    // 결측값 때문에 제외된 행 수
	LinesSkipped int    // 파싱할 수 없어 건너뛴 줄 수
}

// Loader 원본 CSV를 처리 CSV로 변환하는 구조체
type Loader struct {
	sourcePath    string
	processedPath string
	log           zerolog.Logger
}

// New 새로운 데이터 로더를 생성합니다
func New(sourcePath, processedPath string, log zerolog.Logger) *Loader {
	return &Loader{
		sourcePath:    sourcePath,
		processedPath: processedPath,
		log:           log,
	}
}

// LoadAndProcess 원본 CSV를 읽어 검증하고 combined_info CSV를 기록합니다
func (l *Loader) LoadAndProcess(ctx context.Context) (*Result, error) {
	f, err := os.Open(l.sourcePath)
	if err != nil {
		return nil, models.NewError(models.KindIO, "loader.LoadAndProcess", "open source csv", err)
	}
	defer f.Close()

	records, res, err := Parse(ctx, f)
	if err != nil {
		return nil, err
	}

	if err := writeCombined(l.processedPath, records); err != nil {
		return nil, err
	}
	res.Path = l.processedPath

	l.log.Info().
		Str("source", l.sourcePath).
		Str("processed", l.processedPath).
		Int("rows_read", res.RowsRead).
		Int("rows_kept", res.RowsKept).
		Int("rows_dropped", res.RowsDropped).
		Int("lines_skipped", res.LinesSkipped).
		Msg("processed anime csv")

	return res, nil
}

// Parse CSV를 읽어 결측값이 없는 레코드만 반환합니다.
// 파싱할 수 없는 줄과 헤더보다 필드가 많은 줄은 건너뜁니다.
func Parse(ctx context.Context, r io.Reader) ([]models.Record, *Result, error) {
	const op = "loader.Parse"

	// UTF-8로 읽되 선행 BOM은 제거합니다
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			missing := append([]string(nil), requiredColumns...)
			sort.Strings(missing)
			return nil, nil, models.MissingColumnsError(op, missing)
		}
		return nil, nil, models.NewError(models.KindIO, op, "read csv header", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, nil, models.MissingColumnsError(op, missing)
	}

	res := &Result{}
	var records []models.Record
	row := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.LinesSkipped++
				continue
			}
			return nil, nil, models.NewError(models.KindIO, op, "read csv", err)
		}
		if len(fields) > len(header) {
			res.LinesSkipped++
			continue
		}

		row++
		res.RowsRead++
		if hasMissing(fields, len(header)) {
			res.RowsDropped++
			continue
		}

		records = append(records, models.Record{
			Name:      fields[index[ColumnName]],
			Genres:    fields[index[ColumnGenres]],
			Synopsis:  fields[index[ColumnSynopsis]],
			RowNumber: row,
		})
	}
	res.RowsKept = len(records)

	return records, res, nil
}

// hasMissing 행에 결측값이 하나라도 있는지 확인합니다 (짧은 행은 결측으로 봅니다)
func hasMissing(fields []string, width int) bool {
	if len(fields) < width {
		return true
	}
	for _, v := range fields {
		if _, ok := naValues[v]; ok {
			return true
		}
	}
	return false
}

// writeCombined combined_info 컬럼 하나만 담은 CSV를 기록합니다
func writeCombined(path string, records []models.Record) error {
	const op = "loader.writeCombined"

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return models.NewError(models.KindIO, op, "create output dir", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return models.NewError(models.KindIO, op, "create processed csv", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{CombinedColumn}); err != nil {
		f.Close()
		return models.NewError(models.KindIO, op, "write header", err)
	}
	for _, rec := range records {
		if err := w.Write([]string{rec.CombinedInfo()}); err != nil {
			f.Close()
			return models.NewError(models.KindIO, op, "write row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return models.NewError(models.KindIO, op, "flush processed csv", err)
	}

	if err := f.Close(); err != nil {
		return models.NewError(models.KindIO, op, "close processed csv", err)
	}
	return nil
}

// ReadProcessed 처리된 CSV에서 combined_info 값을 순서대로 읽습니다
func ReadProcessed(path string) ([]string, error) {
	const op = "loader.ReadProcessed"

	f, err := os.Open(path)
	if err != nil {
		return nil, models.NewError(models.KindIO, op, "open processed csv", err)
	}
	defer f.Close()

	cr := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, models.MissingColumnsError(op, []string{CombinedColumn})
		}
		return nil, models.NewError(models.KindIO, op, "read header", err)
	}

	col := -1
	for i, h := range header {
		if strings.TrimSpace(h) == CombinedColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, models.MissingColumnsError(op, []string{CombinedColumn})
	}

	var texts []string
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// csv.ParseError가 실제 줄 번호를 담고 있습니다
			return nil, models.NewError(models.KindIO, op, "read row", err)
		}
		if col < len(fields) && fields[col] != "" {
			texts = append(texts, fields[col])
		}
	}
	return texts, nil
}
