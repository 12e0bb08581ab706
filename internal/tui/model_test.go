package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfrag/internal/domain"
)

type fakeRAG struct {
	answer domain.Answer
	err    error
	calls  int
}

func (f *fakeRAG) Answer(query, collection string, topK int) (domain.Answer, error) {
	f.calls++
	return f.answer, f.err
}

func submit(m Model, question string) (Model, tea.Cmd) {
	m.input.SetValue(question)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestEnterIssuesAnswerAsCommand(t *testing.T) {
	rag := &fakeRAG{answer: domain.Answer{Text: "42"}}
	m := New(rag, "docs", "summary", 5)

	m, cmd := submit(m, "what is the answer?")
	require.NotNil(t, cmd)
	// The service must not run inside Update itself.
	assert.Zero(t, rag.calls)
	assert.True(t, m.waiting)
	assert.Equal(t, "Thinking...", m.status)

	msg := cmd()
	assert.Equal(t, 1, rag.calls)
	am, ok := msg.(answerMsg)
	require.True(t, ok)
	assert.Equal(t, "what is the answer?", am.question)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.False(t, m.waiting)
	require.Len(t, m.history, 1)
	assert.Equal(t, "42", m.history[0].answer.Text)
}

func TestEnterIgnoredWhilePending(t *testing.T) {
	rag := &fakeRAG{answer: domain.Answer{Text: "later"}}
	m := New(rag, "docs", "", 5)

	m, cmd := submit(m, "first")
	require.NotNil(t, cmd)
	m, second := submit(m, "second")
	assert.True(t, m.waiting)
	if second != nil {
		_, isAnswer := second().(answerMsg)
		assert.False(t, isAnswer)
	}
	assert.Zero(t, rag.calls)
}

func TestAnswerErrorShownInStatus(t *testing.T) {
	rag := &fakeRAG{err: errors.New("backend down")}
	m := New(rag, "docs", "", 5)

	m, cmd := submit(m, "anything")
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	m = updated.(Model)
	assert.False(t, m.waiting)
	assert.Empty(t, m.history)
	assert.Contains(t, m.status, "backend down")
}
