package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	t.Run("script elements vanish with their contents", func(t *testing.T) {
		got := SanitizeHTML(`<script>alert("xss")</script><b>ok</b>`)
		assert.Equal(t, "<b>ok</b>", got)
	})

	t.Run("event handler attributes are stripped", func(t *testing.T) {
		got := SanitizeHTML(`<p onclick="steal()">hello</p>`)
		assert.Equal(t, "<p>hello</p>", got)
	})

	t.Run("allowed formatting survives", func(t *testing.T) {
		input := `<h2>Title</h2><p>Some <strong>bold</strong> and <em>emphasis</em>.</p><ul><li>one</li></ul>`
		assert.Equal(t, input, SanitizeHTML(input))
	})

	t.Run("links keep href and gain nofollow", func(t *testing.T) {
		got := SanitizeHTML(`<a href="https://example.com">link</a>`)
		assert.Contains(t, got, `href="https://example.com"`)
		assert.Contains(t, got, `rel="nofollow"`)
	})

	t.Run("javascript urls never pass", func(t *testing.T) {
		got := SanitizeHTML(`<a href="javascript:alert(1)">click</a>`)
		assert.NotContains(t, got, "javascript:")
	})

	t.Run("disallowed elements are removed but text kept", func(t *testing.T) {
		got := SanitizeHTML(`<div><span>text</span></div>`)
		assert.Equal(t, "text", got)
	})

	t.Run("idempotent on already clean content", func(t *testing.T) {
		once := SanitizeHTML(`<p>plain <b>text</b> with <i>markup</i></p><img src="x" onerror="boom()">`)
		twice := SanitizeHTML(once)
		require.Equal(t, once, twice)
	})

	t.Run("malformed markup degrades instead of failing", func(t *testing.T) {
		assert.NotPanics(t, func() {
			_ = SanitizeHTML(`<b><p>unclosed <script><div onmouse`)
		})
	})

	t.Run("plain text passes through", func(t *testing.T) {
		assert.Equal(t, "just words", SanitizeHTML("just words"))
	})
}
