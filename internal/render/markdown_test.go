// File: internal/render/markdown_test.go
package render_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexsuite/chatorb/internal/domain"
	"github.com/nexsuite/chatorb/internal/render"
)

func TestMarkdownRendersBasicFormatting(t *testing.T) {
	out, err := render.Markdown("**bold** and a [link](https://example.com)")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, `<a href="https://example.com">link</a>`)
}

func TestMarkdownRendersGFMTables(t *testing.T) {
	out, err := render.Markdown("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}

func TestTranscriptEscapesUserContent(t *testing.T) {
	conversation := domain.Conversation{
		ID:        "c1",
		Title:     "Deals <review>",
		CreatedAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
	messages := []domain.Message{
		{ID: "m1", ConversationID: "c1", Role: domain.RoleUser, Content: "<script>alert(1)</script>"},
		{ID: "m2", ConversationID: "c1", Role: domain.RoleAssistant, Content: "Here is a list:\n\n- one\n- two"},
	}

	out, err := render.Transcript(conversation, messages)
	require.NoError(t, err)

	assert.Contains(t, out, "Deals &lt;review&gt;")
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "<li>one</li>")
	assert.Contains(t, out, `<div class="user">`)
	assert.Contains(t, out, `<div class="assistant">`)
}
