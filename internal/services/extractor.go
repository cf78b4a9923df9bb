package services

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEncoding          = errors.New("text file encoding error, expected UTF-8")
	ErrInvalidPDF        = errors.New("invalid PDF file")
	ErrNoExtractableText = errors.New("no text could be extracted, PDF may be image-based")
)

// TextExtractor converts an uploaded file or downloaded byte stream into
// plain text. Dispatch is by filename suffix, case-insensitive.
type TextExtractor interface {
	Extract(data []byte, filename string) (string, error)
}

type textExtractor struct {
	logger *zap.Logger
}

func NewTextExtractor(logger *zap.Logger) TextExtractor {
	return &textExtractor{logger: logger}
}

func (e *textExtractor) Extract(data []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return e.extractPDF(data)
	case ".txt":
		if !utf8.Valid(data) {
			return "", ErrEncoding
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

func (e *textExtractor) extractPDF(data []byte) (text string, err error) {
	// The pdf library panics on some malformed documents; extraction must
	// never raise past this boundary.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf extraction error: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	totalPages := reader.NumPage()
	e.logger.Debug("parsing pdf", zap.Int("pages", totalPages))

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, pageErr := extractPage(page)
		if pageErr != nil {
			// A broken page contributes no text but does not fail the document.
			e.logger.Warn("skipping unreadable pdf page",
				zap.Int("page", pageIndex),
				zap.Error(pageErr),
			)
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	text = strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", ErrNoExtractableText
	}

	return text, nil
}

// extractPage reads one page's text. Pages with corrupt content streams can
// panic inside the pdf library instead of returning an error, so the panic is
// converted here, keeping the failure scoped to the page.
func extractPage(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("page content error: %v", r)
		}
	}()

	return page.GetPlainText(nil)
}
