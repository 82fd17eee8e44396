// Package ui 추천기를 위한 bubbletea 기반 대화형 터미널 화면을 제공합니다.
package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1).
			PaddingLeft(2)

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			MarginTop(1).
			PaddingLeft(2).
			Width(80)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			MarginTop(1).
			PaddingLeft(2)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD93D")).
			MarginTop(1).
			PaddingLeft(2)
)

// Recommender 질문에 대한 추천 답변을 생성하는 인터페이스
type Recommender interface {
	GetRecommendations(ctx context.Context, query string) (string, error)
}

// Model TUI 애플리케이션 모델
type Model struct {
	ctx         context.Context
	recommender Recommender
	question    string
	asked       string
	answer      string
	err         error
	loading     bool
	quitting    bool
	width       int
	height      int
}

// NewModel 새로운 TUI 모델을 생성합니다
func NewModel(ctx context.Context, recommender Recommender) *Model {
	return &Model{
		ctx:         ctx,
		recommender: recommender,
	}
}

// Init bubbletea 초기화 함수
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update bubbletea 업데이트 함수
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEnter:
			q := strings.TrimSpace(m.question)
			if q == "" {
				return m, nil
			}
			if q == "exit" || q == "q" {
				m.quitting = true
				return m, tea.Quit
			}
			m.loading = true
			m.asked = q
			m.answer = ""
			m.err = nil
			return m, m.recommend(q)

		case tea.KeyBackspace:
			if r := []rune(m.question); len(r) > 0 {
				m.question = string(r[:len(r)-1])
			}
			return m, nil

		case tea.KeySpace:
			m.question += " "
			return m, nil

		case tea.KeyRunes:
			m.question += string(msg.Runes)
			return m, nil
		}
		return m, nil

	case recommendationMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.answer = msg.answer
		}
		m.question = ""
		return m, nil
	}

	return m, nil
}

// View bubbletea 뷰 함수
func (m *Model) View() string {
	if m.quitting {
		return "\nBye!\n\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Anime Recommender"))
	b.WriteString("\n\n")

	b.WriteString("Describe what you like (Enter: ask, type exit or ctrl+c: quit):\n")
	b.WriteString("> " + m.question)
	if !m.loading {
		b.WriteString("_")
	}
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(loadingStyle.Render("Finding anime for you..."))
		b.WriteString("\n")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
		return b.String()
	}

	if m.answer != "" {
		b.WriteString(questionStyle.Render("Recommendations for: " + m.asked))
		b.WriteString("\n")
		for _, line := range strings.Split(m.answer, "\n") {
			b.WriteString(answerStyle.Render(line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// recommendationMsg 추천 결과 메시지
type recommendationMsg struct {
	answer string
	err    error
}

// recommend 추천을 수행하는 커맨드
func (m *Model) recommend(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.recommender.GetRecommendations(m.ctx, question)
		return recommendationMsg{answer: answer, err: err}
	}
}

// Run TUI 애플리케이션을 실행합니다
func Run(ctx context.Context, recommender Recommender) error {
	p := tea.NewProgram(NewModel(ctx, recommender), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
