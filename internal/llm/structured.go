package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/jobhunt/internal/schemas"
)

// OutputError reports a completion that could not be decoded into the
// expected JSON shape. Nothing from such a completion is used.
type OutputError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *OutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid model output: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid model output: %s", e.Message)
}

func (e *OutputError) Unwrap() error {
	return e.Cause
}

// DecodeObject strips code fences from text, takes the first top-level JSON
// object, validates it against the named schema (skipped when schema is
// empty) and unmarshals it into v. Every failure is an *OutputError.
func DecodeObject(text, schema string, v any) error {
	obj, ok := ExtractJSONObject(CleanJSONBlock(text))
	if !ok {
		return &OutputError{Message: "no JSON object in completion", Raw: text}
	}

	if schema != "" {
		if err := schemas.Validate(schema, []byte(obj)); err != nil {
			return &OutputError{Message: "completion does not match schema", Raw: text, Cause: err}
		}
	}

	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return &OutputError{Message: "failed to unmarshal completion", Raw: text, Cause: err}
	}
	return nil
}

// CompleteJSON runs one JSON completion and decodes it into v. A nil client
// yields ErrNotConfigured. There are no retries.
func CompleteJSON(ctx context.Context, client Client, req Request, schema string, v any) error {
	if client == nil {
		return ErrNotConfigured
	}

	req.JSON = true
	text, err := client.Complete(ctx, req)
	if err != nil {
		return err
	}
	return DecodeObject(text, schema, v)
}
