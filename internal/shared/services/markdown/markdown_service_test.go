package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	svc := NewService()

	out, err := svc.ToHTML("# Heading\n\nsome **bold** text")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestSanitizeStripsScripts(t *testing.T) {
	svc := NewService()

	out := svc.Sanitize(`<p>ok</p><script>alert("x")</script>`)
	assert.Contains(t, out, "<p>ok</p>")
	assert.NotContains(t, out, "script")
}

func TestToHTMLSanitized(t *testing.T) {
	svc := NewService()

	out, err := svc.ToHTMLSanitized("hello <script>alert(1)</script> world")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
	assert.NotContains(t, out, "<script>")
}
