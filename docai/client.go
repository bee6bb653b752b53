// Package docai talks to the document-extraction and analysis service.
// The service accepts base64-encoded file bytes plus a MIME type and
// returns a header list and row matrix; a second endpoint summarizes an
// already-parsed table. Extraction failures are hard errors; analysis
// failures always degrade to a fixed fallback.
package docai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/gaurav-prasanna/sheetpress/core"
)

// PDFMimeType is the only media type the extraction endpoint accepts.
const PDFMimeType = "application/pdf"

const (
	extractPath    = "/v1/extract"
	analyzePath    = "/v1/analyze"
	requestTimeout = 120 * time.Second

	// analysisSampleRows bounds the row sample sent for analysis.
	analysisSampleRows = 10
)

// Fallback values returned when analysis fails for any reason.
const (
	FallbackSummary = "No summary could be generated for this table."
	FallbackTitle   = "Imported table"
)

// Client calls the extraction/analysis service.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// New creates a Client for the service at baseURL.
func New(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// extractRequest is the request body for the extraction endpoint.
type extractRequest struct {
	File string `json:"file"` // base64-encoded bytes
	MIME string `json:"mime"`
}

// extractResponse is the expected response shape.
type extractResponse struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ExtractTable sends the document to the extraction service and returns
// the header list and row matrix. The MIME type must be exactly the PDF
// media type or the call fails before being issued; the bytes are also
// validated locally as a well-formed PDF before upload.
func (c *Client) ExtractTable(ctx context.Context, data []byte, mime string) ([]string, [][]string, error) {
	if mime != PDFMimeType {
		return nil, nil, fmt.Errorf("extraction accepts only %q, got %q", PDFMimeType, mime)
	}

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, nil, &core.ExtractionError{Reason: "file is not a valid PDF", Err: err}
	}
	c.logger.Debug("extracting document", "pages", pdfCtx.PageCount, "bytes", len(data))

	body, err := json.Marshal(extractRequest{
		File: base64.StdEncoding.EncodeToString(data),
		MIME: mime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+extractPath, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, &core.ExtractionError{Reason: "extraction service unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, &core.ExtractionError{Reason: fmt.Sprintf("extraction service returned %d", resp.StatusCode)}
	}

	var out extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, nil, &core.ExtractionError{Reason: "malformed extraction payload", Err: err}
	}
	if len(out.Headers) == 0 {
		return nil, nil, &core.ExtractionError{Reason: "extraction payload has no headers"}
	}

	return out.Headers, out.Rows, nil
}
