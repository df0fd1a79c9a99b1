package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	answerSchemaOnce sync.Once
	answerSchema     *jsonschema.Schema
	answerSchemaErr  error
)

func compiledAnswerSchema() (*jsonschema.Schema, error) {
	answerSchemaOnce.Do(func() {
		b, err := json.Marshal(BuildAnswerJSONSchema())
		if err != nil {
			answerSchemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("answers.json", bytes.NewReader(b)); err != nil {
			answerSchemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		answerSchema, answerSchemaErr = compiler.Compile("answers.json")
	})
	return answerSchema, answerSchemaErr
}

// ValidateAnswerDoc checks that data is a well-formed answer document:
// an object with an "answers" array whose entries carry at least a
// non-empty id and an answer string.
func ValidateAnswerDoc(data []byte) error {
	schema, err := compiledAnswerSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal answer document: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("answer document does not match schema: %w", err)
	}
	return nil
}
