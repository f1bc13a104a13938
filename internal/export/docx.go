package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// Font sizes in half-points, mirroring the HTML stylesheet.
var headingSizes = map[int]string{1: "48", 2: "40", 3: "32"}

// ExportDOCX builds a minimal OOXML package from the resume markdown.
// Headings become bold sized paragraphs, list items become dashed paragraphs,
// everything else becomes plain paragraphs with inline emphasis stripped.
func ExportDOCX(md string) ([]byte, error) {
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimRight(line, " \t\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		switch {
		case strings.HasPrefix(trimmed, "### "):
			writeParagraph(&doc, stripInlineMarkdown(trimmed[4:]), true, headingSizes[3], false)
		case strings.HasPrefix(trimmed, "## "):
			writeParagraph(&doc, stripInlineMarkdown(trimmed[3:]), true, headingSizes[2], false)
		case strings.HasPrefix(trimmed, "# "):
			writeParagraph(&doc, stripInlineMarkdown(trimmed[2:]), true, headingSizes[1], false)
		case strings.HasPrefix(trimmed, "- "):
			writeParagraph(&doc, stripInlineMarkdown(trimmed[2:]), false, "", true)
		case strings.HasPrefix(trimmed, "* "):
			writeParagraph(&doc, stripInlineMarkdown(trimmed[2:]), false, "", true)
		default:
			writeParagraph(&doc, stripInlineMarkdown(trimmed), false, "", false)
		}
	}

	doc.WriteString(`</w:body></w:document>`)

	var out bytes.Buffer
	w := zip.NewWriter(&out)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", doc.String()},
	}
	for _, part := range parts {
		f, err := w.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeParagraph(doc *strings.Builder, text string, bold bool, size string, bullet bool) {
	if bullet {
		text = "– " + text
	}
	doc.WriteString("<w:p>")
	doc.WriteString("<w:r><w:rPr>")
	if bold {
		doc.WriteString("<w:b/>")
	}
	if size != "" {
		doc.WriteString(`<w:sz w:val="` + size + `"/>`)
	}
	doc.WriteString("</w:rPr><w:t xml:space=\"preserve\">")
	_ = xml.EscapeText(doc, []byte(text))
	doc.WriteString("</w:t></w:r></w:p>")
}

// stripInlineMarkdown removes bold/italic markers that would otherwise leak
// into the document text.
func stripInlineMarkdown(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "*", "")
	return s
}
