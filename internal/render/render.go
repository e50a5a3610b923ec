package render

import "strings"

// Markdown renders markdown content for terminal display using a pooled renderer.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// Reply renders an assistant reply to fit width. When rendering fails the
// raw content is returned so a reply is never lost.
func Reply(content string, opts Options, width int) string {
	rendered, err := Markdown(content, opts.WithWidth(width))
	if err != nil {
		return content
	}
	// glamour pads output with blank lines
	return strings.Trim(rendered, "\n")
}
