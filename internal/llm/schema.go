package llm

// BuildAnswerJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass it to the model as a structured output constraint
// and also use it locally to validate what came back.
func BuildAnswerJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"answers": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"id":       map[string]any{"type": "string", "minLength": 1},
						"answer":   map[string]any{"type": "string"},
						"analysis": map[string]any{"type": "string"},
					},
					"required": []string{"id", "answer"},
				},
			},
		},
		"required": []string{"answers"},
	}
}
