// Package textract turns uploaded documents into plain text for the
// extraction pipeline.
package textract

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Supported MIME types.
const (
	MIMEPDF      = "application/pdf"
	MIMEDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText     = "text/plain"
	MIMEMarkdown = "text/markdown"
)

// ErrUnsupportedFormat is returned for documents that are not PDF, DOCX or
// plain text.
var ErrUnsupportedFormat = errors.New("unsupported document format")

const docxBody = "word/document.xml"

var (
	xmlTags   = regexp.MustCompile(`<[^>]+>`)
	blankRuns = regexp.MustCompile(`\n{3,}`)
)

var extensions = map[string]string{
	".pdf":      MIMEPDF,
	".docx":     MIMEDOCX,
	".txt":      MIMEText,
	".text":     MIMEText,
	".md":       MIMEMarkdown,
	".markdown": MIMEMarkdown,
}

// MIMEFromPath guesses the MIME type from the file extension. Unknown
// extensions yield an empty string.
func MIMEFromPath(path string) string {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// FromFile reads path and extracts its text based on the file extension.
func FromFile(path string) (string, error) {
	mimeType := MIMEFromPath(path)
	if mimeType == "" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	text, err := Extract(data, mimeType)
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", filepath.Base(path), err)
	}
	return text, nil
}

// Extract decodes data according to mimeType. Parameters such as
// "; charset=utf-8" are ignored.
func Extract(data []byte, mimeType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, mimeType)
	}

	switch mediaType {
	case MIMEPDF:
		return extractPDF(data)
	case MIMEDOCX:
		return extractDOCX(data)
	case MIMEText, MIMEMarkdown:
		return extractPlain(data), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, mediaType)
	}
}

func extractPlain(data []byte) string {
	text := string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	return text
}

// extractPDF reads the pages one by one so page breaks become line breaks.
// The PDF reader panics on some malformed inputs; that is reported as an
// error.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reading pdf page %d: %w", i, err)
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx: %w", err)
	}

	var body []byte
	for _, f := range zr.File {
		if f.Name != docxBody {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", docxBody, err)
		}
		body, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", docxBody, err)
		}
		break
	}
	if len(body) == 0 {
		return "", fmt.Errorf("opening docx: no %s found", docxBody)
	}

	return docxText(string(body)), nil
}

// docxText keeps paragraph, line break and tab boundaries of WordprocessingML
// and drops every other tag.
func docxText(xml string) string {
	replacer := strings.NewReplacer(
		"</w:p>", "\n",
		"<w:br/>", "\n",
		"<w:cr/>", "\n",
		"<w:tab/>", "\t",
	)
	text := replacer.Replace(xml)
	text = xmlTags.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
