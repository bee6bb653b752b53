// Package docai — table analysis call.
// Sends the column keys and a small row sample (internal ids stripped) and
// receives a summary plus a suggested title. This call never fails
// outward: every error path returns the fixed fallback pair.
package docai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/gaurav-prasanna/sheetpress/core"
)

// analyzeRequest is the request body for the analysis endpoint.
type analyzeRequest struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// analyzeResponse is the expected response shape.
type analyzeResponse struct {
	Summary        string `json:"summary"`
	SuggestedTitle string `json:"suggested_title"`
}

// Analyze returns a summary and suggested title for the table. The sample
// is capped at the first ten rows and carries only column values, never
// row ids.
func (c *Client) Analyze(ctx context.Context, table *core.Table) (summary, suggestedTitle string) {
	keys := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		keys[i] = col.Key
	}

	sample := table.Rows
	if len(sample) > analysisSampleRows {
		sample = sample[:analysisSampleRows]
	}
	rows := make([]map[string]string, len(sample))
	for i, row := range sample {
		values := make(map[string]string, len(keys))
		for _, k := range keys {
			values[k] = row.Values[k]
		}
		rows[i] = values
	}

	body, err := json.Marshal(analyzeRequest{Columns: keys, Rows: rows})
	if err != nil {
		return FallbackSummary, FallbackTitle
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(body))
	if err != nil {
		return FallbackSummary, FallbackTitle
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("analysis degraded", "error", err)
		return FallbackSummary, FallbackTitle
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("analysis degraded", "status", resp.StatusCode)
		return FallbackSummary, FallbackTitle
	}

	var out analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return FallbackSummary, FallbackTitle
	}
	if out.Summary == "" && out.SuggestedTitle == "" {
		return FallbackSummary, FallbackTitle
	}

	return out.Summary, out.SuggestedTitle
}
