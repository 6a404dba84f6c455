package cli

import (
	"bytes"
	"fmt"
	stdhtml "html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/eventorbit/eventorbit/internal/schedule"
)

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; color: #323232; }
table { border-collapse: collapse; width: 100%%; margin-bottom: 1.5rem; }
th, td { border-bottom: 1px solid #c8c8c8; padding: .4rem .6rem; text-align: left; }
</style>
</head>
<body>
%s</body>
</html>
`

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithXHTML(),
	),
)

// renderScheduleHTML renders the Markdown summary as a standalone page.
func renderScheduleHTML(title string, rules schedule.Set) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(renderScheduleMarkdown(title, rules)), &body); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	return []byte(fmt.Sprintf(htmlPage, stdhtml.EscapeString(title), body.String())), nil
}
