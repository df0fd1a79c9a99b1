package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joseph-ayodele/exam-ingest/internal/llm"
)

// FillAnswers implements llm.AnswerAnalyzer using text-only chat/completions
// with a structured-output constraint.
func (c *Client) FillAnswers(ctx context.Context, req llm.AnalyzeRequest) ([]llm.AnswerFill, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.answers.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"questions", len(req.Questions),
	)

	if len(req.Questions) == 0 {
		return nil, nil, nil
	}

	schema := llm.BuildAnswerJSONSchema()
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt(req)},
			{"role": "user", "content": llm.BuildUserPrompt(req.Questions) + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, _, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("llm.answers.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.answers.decode_error", "req_id", rid, "error", err, "raw_bytes", len(raw))
		return nil, raw, fmt.Errorf("decode chat response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.answers.no_choices", "req_id", rid, "raw", string(raw))
		return nil, raw, fmt.Errorf("no choices in chat response")
	}
	rawContent := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	// Validate strictly first.
	if err := llm.ValidateAnswerDoc(rawContent); err != nil {
		if !c.cfg.LenientSchema {
			c.log.Error("llm.answers.schema_validation_failed", "req_id", rid, "error", err)
			return nil, rawContent, fmt.Errorf("schema validation failed: %w", err)
		}
		cleaned, notes, sErr := llm.SanitizeAnswerDoc(rawContent)
		if sErr != nil {
			c.log.Error("llm.answers.sanitize_failed", "req_id", rid, "error", sErr)
			return nil, rawContent, fmt.Errorf("sanitize failed: %w", sErr)
		}
		if vErr := llm.ValidateAnswerDoc(cleaned); vErr != nil {
			c.log.Error("llm.answers.schema_validation_failed", "req_id", rid, "error", vErr, "content", string(rawContent))
			return nil, rawContent, fmt.Errorf("schema validation failed: %w", vErr)
		}
		c.log.Warn("llm.answers.lenient_sanitize_applied", "req_id", rid, "notes", notes)
		rawContent = cleaned
	}

	var out struct {
		Answers []llm.AnswerFill `json:"answers"`
	}
	if err := json.Unmarshal(rawContent, &out); err != nil {
		c.log.Error("llm.answers.unmarshal_failed", "req_id", rid, "error", err)
		return nil, rawContent, fmt.Errorf("unmarshal answers: %w", err)
	}

	c.log.Info("llm.answers.ok",
		"req_id", rid,
		"answers", len(out.Answers),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out.Answers, rawContent, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
