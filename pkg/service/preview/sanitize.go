package preview

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy

	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// sanitizeHTML keeps basic inline formatting in merchant authored help and description text.
// The result is HTML and must only be rendered as markup.
func sanitizeHTML(raw string) string {
	textPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "br", "span", "small")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowElements("a")
		policy.RequireNoFollowOnLinks(true)
		textPolicy = policy
	})
	return strings.TrimSpace(textPolicy.Sanitize(raw))
}

// plainText strips every tag from raw and returns the remaining text unescaped
func plainText(raw string) string {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(raw)))
}

// richTextNode carries merchant text both as plain text and as sanitized markup under the "html" attribute
func richTextNode(kind NodeKind, raw string) *Node {
	text := plainText(raw)
	markup := sanitizeHTML(raw)
	if text == "" && markup == "" {
		return nil
	}
	return &Node{Kind: kind, Text: text, Attrs: map[string]any{"html": markup}}
}

// sanitizeIcon reduces icon markup to a safe SVG subset. Non SVG input such as an icon name is returned trimmed.
func sanitizeIcon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !strings.HasPrefix(trimmed, "<") {
		return trimmed
	}

	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("svg", "g", "path", "circle", "rect", "line", "polyline", "polygon", "ellipse", "title")
		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden", "role",
		).OnElements("svg")
		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
			).OnElements(el)
		}
		iconPolicy = policy
	})
	return strings.TrimSpace(iconPolicy.Sanitize(trimmed))
}
