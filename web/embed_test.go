package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplates(t *testing.T) {
	tmpl, err := NewTemplates()
	require.NoError(t, err)

	for _, name := range []string{"login.html", "chat.html", "transcript", "style"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestTranscriptEscapesMessages(t *testing.T) {
	tmpl, err := NewTemplates()
	require.NoError(t, err)

	data := struct {
		Warning string
		Entries []struct{ Role, Message string }
	}{
		Entries: []struct{ Role, Message string }{
			{Role: "ai", Message: "answer"},
			{Role: "user", Message: "<script>alert(1)</script>"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "transcript", data))

	out := buf.String()
	assert.Contains(t, out, `<div class="ai-msg">AI: answer</div>`)
	assert.Contains(t, out, "You: &lt;script&gt;")
	assert.NotContains(t, out, "<script>alert")
}
