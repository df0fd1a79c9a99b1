package ocr

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/joseph-ayodele/exam-ingest/internal/common"
	"github.com/joseph-ayodele/exam-ingest/internal/llm"
)

// Client talks to the external OCR service over HTTP. It satisfies the
// extractor's Recognizer interface.
type Client struct {
	cfg    common.OCRConfig
	client *http.Client
	logger *slog.Logger
}

func NewClient(cfg common.OCRConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Recognize submits one base64-encoded JPEG and returns the recognized
// text, one line per detected region.
func (c *Client) Recognize(ctx context.Context, imageBase64 string) (string, error) {
	body := map[string]any{
		"file":     imageBase64,
		"fileType": 1, // still image, not a document stream
	}
	headers := map[string]string{}
	if c.cfg.APIKey != "" {
		headers["Authorization"] = "token " + c.cfg.APIKey
	}

	raw, _, err := llm.SendJSON(ctx, c.client, c.cfg.BaseURL, body, headers, c.logger)
	if err != nil {
		return "", common.WrapError(err, "ocr request")
	}
	return DecodeText(raw)
}
