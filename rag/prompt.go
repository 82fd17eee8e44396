package rag

import "strings"

// PromptTemplate {context}와 {question} 자리표시자를 가진 고정 프롬프트
type PromptTemplate struct {
	text string
}

// NewPromptTemplate 새로운 프롬프트 템플릿을 생성합니다
func NewPromptTemplate(text string) PromptTemplate {
	return PromptTemplate{text: text}
}

// Format 자리표시자를 한 번만 치환합니다. 치환된 값 안의 자리표시자는 다시 확장되지 않습니다.
func (p PromptTemplate) Format(context, question string) string {
	return strings.NewReplacer("{context}", context, "{question}", question).Replace(p.text)
}

// AnimePrompt 애니메이션 추천용 기본 프롬프트
var AnimePrompt = NewPromptTemplate(`You are an expert anime recommender. Your job is to help users find the perfect anime based on their preferences.

Using the following context, provide a detailed and engaging response to the user's question.

For each question, suggest exactly three anime titles. For each recommendation, include:
1. The anime title.
2. A concise plot summary (2-3 sentences).
3. A clear explanation of why this anime matches the user's preferences.

Present your recommendations in a numbered list format for easy reading.

If you don't know the answer, respond honestly by saying you don't know. Do not fabricate any information.

Context:
{context}

User's question:
{question}

Your well-structured response:
`)
