package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"pin_share_backend/config"
	"pin_share_backend/logger"
)

// OCRClient asks a sidecar OCR API for the text content of an uploaded
// image. Strictly best-effort: an unset endpoint or any failure yields "".
type OCRClient struct {
	url    string
	apiKey string
	client *http.Client
}

func NewOCRClient(cfg *config.Config) *OCRClient {
	return &OCRClient{
		url:    cfg.Fetcher.OCRURL,
		apiKey: cfg.Fetcher.OCRAPIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.Fetcher.OCRTimeoutSec) * time.Second,
		},
	}
}

type ocrResp struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Text string `json:"text"`
	} `json:"data"`
}

func (c *OCRClient) Extract(ctx context.Context, filePath string) string {
	if c.url == "" || filePath == "" {
		return ""
	}

	payload := map[string]any{"file": filePath}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return ""
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Debug("OCR request failed", "file", filePath, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("OCR request rejected", "file", filePath, "status", resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	var out ocrResp
	if err := json.Unmarshal(body, &out); err != nil || out.Code != 0 {
		return ""
	}
	return strings.TrimSpace(out.Data.Text)
}
