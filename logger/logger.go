// Package logger 실행마다 하나의 타임스탬프 로그 파일에 기록하는 zerolog 로거를 생성합니다.
//
// 프로세스 시작 시 New로 한 번 생성하고 각 컴포넌트에는 Named로 만든 자식 로거를 전달합니다.
//
//	lg, err := logger.New(logger.Config{Dir: "logs"})
//	if err != nil { ... }
//	defer lg.Close()
//	log := lg.Named("pipeline")
//	log.Info().Msg("Starting to build pipeline")
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// fileTimeLayout 로그 파일 이름에 쓰는 타임스탬프 형식
const fileTimeLayout = "2006-01-02_15-04-05"

// Config 로거 설정
type Config struct {
	Dir     string    // 로그 디렉터리 (기본값: logs)
	Level   string    // trace, debug, info, warn, error (기본값: info)
	Format  string    // text 또는 json (기본값: text)
	Console io.Writer // nil이 아니면 파일과 함께 이 writer에도 기록합니다
	Now     func() time.Time
}

// Logger 로그 파일과 루트 zerolog 로거를 소유하는 구조체
type Logger struct {
	root zerolog.Logger
	file *os.File
	path string
}

// New 로그 디렉터리를 만들고 log_<timestamp>.log 파일을 열어 로거를 생성합니다
func New(cfg Config) (*Logger, error) {
	if cfg.Dir == "" {
		cfg.Dir = "logs"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}

	path := filepath.Join(cfg.Dir, fmt.Sprintf("log_%s.log", cfg.Now().Format(fileTimeLayout)))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	var out io.Writer = formatWriter(file, cfg.Format)
	if cfg.Console != nil {
		out = zerolog.MultiLevelWriter(out, formatWriter(cfg.Console, cfg.Format))
	}

	root := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()

	return &Logger{root: root, file: file, path: path}, nil
}

// formatWriter text 형식이면 "time - LEVEL - message" 형태의 콘솔 writer로 감쌉니다
func formatWriter(w io.Writer, format string) io.Writer {
	if strings.EqualFold(format, "json") {
		return w
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: "2006-01-02 15:04:05",
		PartsOrder: []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i interface{}) string {
			return fmt.Sprintf("- %s -", strings.ToUpper(fmt.Sprint(i)))
		},
	}
}

// ParseLevel 문자열 로그 레벨을 zerolog 레벨로 변환합니다 (알 수 없는 값은 info)
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Named 이름 필드가 붙은 자식 로거를 반환합니다
func (l *Logger) Named(name string) zerolog.Logger {
	return l.root.With().Str("logger", name).Logger()
}

// Path 현재 실행의 로그 파일 경로를 반환합니다
func (l *Logger) Path() string {
	return l.path
}

// Close 로그 파일을 닫습니다
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
