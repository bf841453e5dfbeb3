// File: internal/render/markdown.go
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/nexsuite/chatorb/internal/domain"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Markdown renders assistant-authored markdown to an HTML fragment.
func Markdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("markdown rendering failed: %w", err)
	}
	return buf.String(), nil
}

// Transcript renders a full conversation as a standalone HTML document, for
// exporting a thread out of the widget. User turns are escaped verbatim;
// assistant turns are rendered as markdown.
func Transcript(conversation domain.Conversation, messages []domain.Message) (string, error) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n</head>\n<body>\n", html.EscapeString(conversation.Title))
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(conversation.Title))
	if !conversation.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "<p>Started %s</p>\n", conversation.CreatedAt.Format(time.RFC1123))
	}

	for _, m := range messages {
		switch m.Role {
		case domain.RoleAssistant:
			rendered, err := Markdown(m.Content)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "<div class=\"assistant\">\n%s</div>\n", rendered)
		case domain.RoleUser:
			fmt.Fprintf(&b, "<div class=\"user\"><p>%s</p></div>\n", html.EscapeString(m.Content))
		}
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
