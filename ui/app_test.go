package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecommender struct {
	answer  string
	err     error
	queries []string
}

func (s *stubRecommender) GetRecommendations(_ context.Context, query string) (string, error) {
	s.queries = append(s.queries, query)
	return s.answer, s.err
}

func typeText(m *Model, text string) {
	for _, r := range text {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModel_AskAndShowAnswer(t *testing.T) {
	rec := &stubRecommender{answer: "1. Naruto\n2. Bleach"}
	m := NewModel(context.Background(), rec)

	typeText(m, "action anime")
	assert.Equal(t, "action anime", m.question)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Contains(t, m.View(), "Finding anime for you")

	// 로딩 중 입력은 무시됩니다
	typeText(m, "x")
	assert.Equal(t, "action anime", m.question)

	m.Update(cmd())
	assert.False(t, m.loading)
	assert.Equal(t, []string{"action anime"}, rec.queries)
	assert.Empty(t, m.question)

	view := m.View()
	assert.Contains(t, view, "Naruto")
	assert.Contains(t, view, "Bleach")
	assert.Contains(t, view, "Recommendations for: action anime")
}

func TestModel_ShowsError(t *testing.T) {
	m := NewModel(context.Background(), &stubRecommender{err: errors.New("groq unavailable")})

	typeText(m, "romance")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())

	assert.Contains(t, m.View(), "groq unavailable")
}

func TestModel_Editing(t *testing.T) {
	m := NewModel(context.Background(), &stubRecommender{})

	typeText(m, "mecha")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "mech", m.question)

	// 빈 질문은 보내지 않습니다
	m2 := NewModel(context.Background(), &stubRecommender{})
	_, cmd := m2.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m2.loading)
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name  string
		input func(m *Model) tea.Cmd
	}{
		{"ctrl+c", func(m *Model) tea.Cmd {
			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
			return cmd
		}},
		{"exit", func(m *Model) tea.Cmd {
			typeText(m, "exit")
			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			return cmd
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(context.Background(), &stubRecommender{})
			cmd := tt.input(m)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.True(t, m.quitting)
			assert.Contains(t, m.View(), "Bye")
		})
	}
}
