package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Supported declared file types.
const (
	TypePDF  = "pdf"
	TypeDOCX = "docx"
	TypeTXT  = "txt"
)

// ExtractionError marks bytes that could not be decoded for the declared
// type, or a decodable file whose text is empty after trimming (Empty=true).
type ExtractionError struct {
	FileType string
	Empty    bool
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Empty {
		return fmt.Sprintf("extract %s: empty document", e.FileType)
	}
	return fmt.Sprintf("extract %s: %v", e.FileType, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ExtractText pulls plain text from an uploaded resume file.
// Libraries used: github.com/ledongthuc/pdf (PDF); DOCX is unzipped and
// word/document.xml stripped of markup.
func ExtractText(data []byte, declaredType string) (string, error) {
	fileType := strings.ToLower(strings.TrimSpace(declaredType))

	var (
		text string
		err  error
	)
	switch fileType {
	case TypePDF:
		text, err = extractPDF(data)
	case TypeDOCX:
		text, err = extractDOCX(data)
	case TypeTXT:
		text, err = extractTXT(data)
	default:
		return "", &ExtractionError{FileType: fileType, Err: fmt.Errorf("unsupported file type: %s", declaredType)}
	}
	if err != nil {
		return "", &ExtractionError{FileType: fileType, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{FileType: fileType, Empty: true}
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	return stripDocxXML(string(raw)), nil
}

func extractTXT(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("not valid UTF-8 text")
	}
	return string(data), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if last := buf.Len(); last > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
