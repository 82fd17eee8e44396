package embedding

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultHFModel 기본 sentence-transformers 모델
const DefaultHFModel = "sentence-transformers/all-MiniLM-L6-v2"

// HuggingFace Hugging Face Inference feature-extraction 엔드포인트를 사용하는 임베딩 생성기
type HuggingFace struct {
	baseURL string
	token   string
	model   string
	http    *http.Client
}

// NewHuggingFace 새로운 Hugging Face 임베딩 생성기를 생성합니다
func NewHuggingFace(baseURL, token, model string) *HuggingFace {
	if baseURL == "" {
		baseURL = "https://router.huggingface.co/hf-inference/models"
	}
	if model == "" {
		model = DefaultHFModel
	}
	return &HuggingFace{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		model:   model,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (h *HuggingFace) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return h.embed(ctx, text)
}

func (h *HuggingFace) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return h.embed(ctx, text)
}

func (h *HuggingFace) embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(map[string]any{"inputs": text})
	if err != nil {
		return nil, fmt.Errorf("huggingface embed: %w", err)
	}

	url := fmt.Sprintf("%s/%s/pipeline/feature-extraction", h.baseURL, h.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("huggingface embed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("huggingface embed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("huggingface embed: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface embed: status %d: %s", resp.StatusCode, snippet(raw, 256))
	}

	return decodeFeatures(raw)
}

// decodeFeatures 문장 벡터([]float) 또는 토큰 벡터([][]float) 응답을 하나의 벡터로 변환합니다.
// 토큰 벡터는 평균 풀링합니다.
func decodeFeatures(raw []byte) ([]float32, error) {
	var vec []float32
	if err := json.Unmarshal(raw, &vec); err == nil {
		if len(vec) == 0 {
			return nil, fmt.Errorf("huggingface embed: empty embedding")
		}
		return vec, nil
	}

	var tokens [][]float32
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil, fmt.Errorf("huggingface embed: decode: %w", err)
	}
	return meanPool(tokens)
}

func meanPool(tokens [][]float32) ([]float32, error) {
	if len(tokens) == 0 || len(tokens[0]) == 0 {
		return nil, fmt.Errorf("huggingface embed: empty embedding")
	}
	dim := len(tokens[0])
	out := make([]float32, dim)
	for _, t := range tokens {
		if len(t) != dim {
			return nil, fmt.Errorf("huggingface embed: ragged token embeddings")
		}
		for i, v := range t {
			out[i] += v
		}
	}
	n := float32(len(tokens))
	for i := range out {
		out[i] /= n
	}
	return out, nil
}

func snippet(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

func (h *HuggingFace) Close() error { return nil }
