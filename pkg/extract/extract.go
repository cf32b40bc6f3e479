// Package extract turns uploaded files into resource text.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"ai-lecture-notes-be/internal/entity"

	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

const EmptyContentPlaceholder = "No text content could be extracted from this file."

// Result is an uploaded file ready to become a resource.
type Result struct {
	Title   string
	Type    entity.ResourceType
	Content string
}

// ConfigureLicense installs the UniDoc metered key used for PDF reading and
// export. An empty key leaves the library unlicensed.
func ConfigureLicense(key string) error {
	if key == "" {
		return nil
	}
	if err := license.SetMeteredKey(key); err != nil {
		return fmt.Errorf("set unidoc license: %w", err)
	}
	return nil
}

// File reads r according to the extension of fileName. The resource type is
// inferred from the extension alone.
func File(fileName string, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	var content string
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		content, err = PDFText(data)
		if err != nil {
			return nil, err
		}
	case ".srt", ".vtt":
		content = SubtitleText(string(data))
	default:
		// Plain text, markdown and anything else that happens to be UTF-8.
		if utf8.Valid(data) {
			content = string(data)
		}
	}

	if strings.TrimSpace(content) == "" {
		content = EmptyContentPlaceholder
	}

	return &Result{
		Title:   fileName,
		Type:    entity.InferResourceType(fileName),
		Content: content,
	}, nil
}

// PDFText extracts the text of every page, separated by blank lines.
func PDFText(data []byte) (string, error) {
	pdfReader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("count pdf pages: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}

		ex, err := extractor.New(page)
		if err != nil {
			return "", fmt.Errorf("extract pdf page %d: %w", i, err)
		}

		text, err := ex.ExtractText()
		if err != nil {
			return "", fmt.Errorf("extract pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	return strings.TrimSpace(sb.String()), nil
}
