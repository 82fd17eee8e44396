package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind 에러 분류
type ErrorKind string

const (
	KindValidation ErrorKind = "validation" // 데이터 검증 실패 (필수 컬럼 누락 등)
	KindIO         ErrorKind = "io"         // 파일 읽기/쓰기 실패
	KindExternal   ErrorKind = "external"   // 임베딩, 벡터 스토어, LLM 호출 실패
	KindPipeline   ErrorKind = "pipeline"   // 파이프라인 실행 실패 (원인 포함)
)

// Error 분류와 원인을 함께 담는 에러 타입
type Error struct {
	Kind           ErrorKind
	Op             string
	Msg            string
	MissingColumns []string
	Err            error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		if e.Msg != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// NewError 새로운 분류 에러를 생성합니다
func NewError(kind ErrorKind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

// MissingColumnsError 누락된 필수 컬럼을 나열하는 검증 에러를 생성합니다
func MissingColumnsError(op string, missing []string) *Error {
	return &Error{
		Kind:           KindValidation,
		Op:             op,
		Msg:            fmt.Sprintf("missing columns [%s] in CSV file", strings.Join(missing, ", ")),
		MissingColumns: missing,
	}
}

// KindOf 에러 체인에서 가장 바깥쪽 분류를 반환합니다
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind 에러 체인 어딘가에 해당 분류가 있는지 확인합니다
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}
