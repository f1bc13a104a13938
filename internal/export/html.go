package export

import (
	"fmt"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// stylesheet keeps exported documents on ATS-friendly fonts and sizes.
const stylesheet = `body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; line-height: 1.6; padding: 20px; }
h1, h2, h3 { margin-bottom: 0.5em; }
h1 { font-size: 24px; }
h2 { font-size: 20px; }
h3 { font-size: 16px; }
ul { padding-left: 20px; }
p { margin-bottom: 1em; }`

// RenderHTML converts resume markdown into a standalone styled HTML page.
func RenderHTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.ToHTML([]byte(md), p, r)
	return fmt.Sprintf("<html>\n<head>\n<meta charset=\"UTF-8\">\n<style>\n%s\n</style>\n</head>\n<body>%s</body>\n</html>\n", stylesheet, body)
}
