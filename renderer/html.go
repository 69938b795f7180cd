package renderer

import (
	"bytes"
	"fmt"
	"html"

	"github.com/etnz/betboard"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60em; margin: auto; }
table { border-collapse: collapse; margin-bottom: 1em; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.8em; }
td:nth-child(n+2) { text-align: right; }
</style>
</head>
<body>
%s</body>
</html>
`

// ReportHTML renders the markdown report as a standalone HTML page.
func ReportHTML(r *betboard.Report) ([]byte, error) {
	body, err := MarkdownToHTML(ReportMarkdown(r))
	if err != nil {
		return nil, err
	}
	title := "Portfolio Dashboard"
	if r.Ledger != "" {
		title += ": " + r.Ledger
	}
	return []byte(fmt.Sprintf(page, html.EscapeString(title), body)), nil
}

// MarkdownToHTML converts GitHub flavoured tables and text to an HTML fragment.
func MarkdownToHTML(src string) ([]byte, error) {
	var buf bytes.Buffer
	conv := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := conv.Convert([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("converting markdown to html: %w", err)
	}
	return buf.Bytes(), nil
}
