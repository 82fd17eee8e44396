package models

// Document 리트리버가 반환하는 검색 단위 문서
type Document struct {
	ID         string            // 벡터 스토어 내 위치 기반 ID
	Content    string            // combined_info 텍스트
	Metadata   map[string]string // 메타데이터 (원본 행 번호 등)
	Similarity float32           // 쿼리와의 코사인 유사도 (검색 결과인 경우)
}

// Record 원본 CSV의 애니메이션 한 행
type Record struct {
	Name      string
	Genres    string
	Synopsis  string
	RowNumber int // 헤더 다음 줄을 1로 하는 원본 행 번호
}

// CombinedInfo 임베딩 대상 텍스트를 고정 포맷으로 구성합니다
func (r Record) CombinedInfo() string {
	return "Title: " + r.Name + "..Overview: " + r.Synopsis + "Genres : " + r.Genres
}
