package util

import "github.com/microcosm-cc/bluemonday"

// richTextPolicy allows basic formatting only. Script and style elements are
// dropped together with their contents; event handler attributes never pass.
var richTextPolicy = buildRichTextPolicy()

func buildRichTextPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"b", "i", "em", "strong", "u",
		"p", "br", "ul", "ol", "li",
		"h1", "h2", "h3", "h4", "blockquote",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(true)
	return p
}

// SanitizeHTML strips everything outside the allow-list. Malformed markup
// degrades to maximally stripped output instead of failing, and the function
// is idempotent: sanitizing already-clean content is a no-op.
func SanitizeHTML(html string) string {
	return richTextPolicy.Sanitize(html)
}
