package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type DownloadErrorKind string

const (
	DownloadInvalidURL DownloadErrorKind = "invalid_url"
	DownloadTimeout    DownloadErrorKind = "timeout"
	DownloadConnection DownloadErrorKind = "connection_error"
	DownloadHTTPError  DownloadErrorKind = "http_error"
	DownloadNotAPDF    DownloadErrorKind = "not_a_pdf"
	DownloadGeneric    DownloadErrorKind = "download_error"
)

// DownloadError classifies a failed PDF acquisition. Status is set only for
// the http_error kind.
type DownloadError struct {
	Kind    DownloadErrorKind
	Status  int
	Message string
}

func (e *DownloadError) Error() string {
	if e.Kind == DownloadHTTPError {
		return fmt.Sprintf("download failed: HTTP %d %s", e.Status, e.Message)
	}
	return e.Message
}

var pdfMagic = []byte("%PDF")

const fetchTimeout = 30 * time.Second

// PDFFetcher downloads a PDF document from a remote URL.
type PDFFetcher interface {
	FetchPDF(url string) ([]byte, error)
}

type pdfFetcher struct {
	client *http.Client
	logger *zap.Logger
}

func NewPDFFetcher(logger *zap.Logger) PDFFetcher {
	return &pdfFetcher{
		client: &http.Client{Timeout: fetchTimeout},
		logger: logger,
	}
}

func (f *pdfFetcher) FetchPDF(url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, &DownloadError{
			Kind:    DownloadInvalidURL,
			Message: "URL must start with http:// or https://",
		}
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, &DownloadError{Kind: DownloadInvalidURL, Message: fmt.Sprintf("invalid URL: %v", err)}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &DownloadError{
			Kind:    DownloadHTTPError,
			Status:  resp.StatusCode,
			Message: http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "pdf") &&
		!strings.HasSuffix(strings.ToLower(url), ".pdf") &&
		!bytes.HasPrefix(body, pdfMagic) {
		return nil, &DownloadError{
			Kind:    DownloadNotAPDF,
			Message: fmt.Sprintf("URL does not point to a PDF document (content-type: %s)", contentType),
		}
	}

	f.logger.Debug("pdf downloaded",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
		zap.String("content_type", contentType),
	)

	return body, nil
}

func classifyTransportError(err error) *DownloadError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &DownloadError{Kind: DownloadTimeout, Message: "PDF download timed out"}
	}

	msg := err.Error()
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "connection reset") {
		return &DownloadError{Kind: DownloadConnection, Message: fmt.Sprintf("failed to connect: %v", err)}
	}

	return &DownloadError{Kind: DownloadGeneric, Message: fmt.Sprintf("failed to download PDF: %v", err)}
}
