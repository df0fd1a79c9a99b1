package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SanitizeAnswerDoc repairs the common ways a model drifts from the answer
// schema without inventing content: numeric answers become strings, null or
// missing answers become empty strings, entries without an id are dropped,
// and unknown keys are removed so additionalProperties=false still holds.
func SanitizeAnswerDoc(doc []byte) ([]byte, []string, error) {
	var root any
	if err := json.Unmarshal(doc, &root); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	var notes []string
	var rawAnswers []any
	switch v := root.(type) {
	case map[string]any:
		arr, ok := v["answers"].([]any)
		if !ok {
			return nil, nil, fmt.Errorf("sanitize: no answers array")
		}
		rawAnswers = arr
	case []any:
		// Some responses put the array at the top level.
		rawAnswers = v
		notes = append(notes, "wrapped top-level array")
	default:
		return nil, nil, fmt.Errorf("sanitize: unexpected document shape")
	}

	cleaned := make([]any, 0, len(rawAnswers))
	for i, item := range rawAnswers {
		entry, ok := item.(map[string]any)
		if !ok {
			notes = append(notes, fmt.Sprintf("dropped non-object entry %d", i))
			continue
		}
		id, _ := entry["id"].(string)
		if strings.TrimSpace(id) == "" {
			notes = append(notes, fmt.Sprintf("dropped entry %d without id", i))
			continue
		}

		out := map[string]any{"id": strings.TrimSpace(id)}
		switch v := entry["answer"].(type) {
		case string:
			out["answer"] = strings.TrimSpace(v)
		case float64:
			out["answer"] = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
			notes = append(notes, "coerced numeric answer for "+id)
		default:
			out["answer"] = ""
			notes = append(notes, "defaulted missing answer for "+id)
		}
		if v, ok := entry["analysis"].(string); ok && strings.TrimSpace(v) != "" {
			out["analysis"] = strings.TrimSpace(v)
		}
		cleaned = append(cleaned, out)
	}

	b, err := json.Marshal(map[string]any{"answers": cleaned})
	if err != nil {
		return nil, nil, err
	}
	return b, notes, nil
}
