package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Gateway abstracts the hosted model provider. Generate submits a prompt and
// returns the model's JSON output; Complete returns plain text. Both perform
// exactly one logical model invocation — callers decide whether to retry.
type Gateway interface {
	Generate(ctx context.Context, req Request) (json.RawMessage, error)
	Complete(ctx context.Context, prompt string) (string, error)
}

// Request captures one structured generation call.
type Request struct {
	// System is the system-role instruction, may be empty.
	System string
	// Prompt is the fully rendered user prompt.
	Prompt string
	// Tools the model may invoke mid-generation. The gateway executes
	// requested calls synchronously and feeds results back before the
	// model finalizes its answer.
	Tools []Tool
	// MaxToolRounds bounds tool-call round trips. Zero means the
	// provider default.
	MaxToolRounds int
}

// Tool is a schema-typed callable the model may invoke during generation.
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]any
	Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error)
}

// GenerationError marks model output that cannot be parsed into the expected
// schema or is missing a mandatory field.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Err)
	}
	return "generation failed: " + e.Reason
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Generationf builds a GenerationError with a formatted reason.
func Generationf(format string, args ...any) *GenerationError {
	return &GenerationError{Reason: fmt.Sprintf(format, args...)}
}

// IsGenerationError reports whether err is (or wraps) a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
