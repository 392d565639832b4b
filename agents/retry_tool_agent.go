package agents

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/atomic"

	"github.com/bububa/dataframe-agents/components"
	"github.com/bububa/dataframe-agents/schema"
	"github.com/bububa/dataframe-agents/tools"
)

// DefaultMaxAttempts bounds the tool retry loop of a RetryToolAgent
const DefaultMaxAttempts = 10

// RetryExhaustedError is the terminal failure returned when a RetryToolAgent
// runs out of attempts without a successful tool run. It is not intercepted
// anywhere, the caller sees it as-is.
type RetryExhaustedError struct {
	// Attempts is the number of tool invocations made
	Attempts int
	// Last is the retryable failure of the final attempt
	Last *tools.RetryError
}

func (e RetryExhaustedError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("tool retries exhausted after %d attempts, last failure: %s", e.Attempts, e.Last.Error())
	}
	return fmt.Sprintf("tool retries exhausted after %d attempts", e.Attempts)
}

// RetryToolAgent answers a question by asking a planner agent for a tool
// input, running the tool, and feeding any retryable tool failure back to
// the planner as a corrective prompt, up to a fixed attempt ceiling. On
// success the tool result is posted to a responder agent which produces the
// final answer.
//
// The tool runs exactly once per attempt, so a question that never yields a
// valid tool input costs exactly maxAttempts tool invocations before the
// terminal RetryExhaustedError.
type RetryToolAgent[T schema.Schema, O schema.Schema] struct {
	planner     ChatAgent[schema.Input, T]
	responder   ChatAgent[schema.Input, O]
	tool        tools.AnonymousTool
	maxAttempts int
	attempts    *atomic.Int64
}

// NewRetryToolAgent returns a new RetryToolAgent instance
func NewRetryToolAgent[T schema.Schema, O schema.Schema](options ...Option) *RetryToolAgent[T, O] {
	var cfg Config
	for _, opt := range options {
		opt(&cfg)
	}
	maxAttempts := cfg.maxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &RetryToolAgent[T, O]{
		planner:     NewAgent[schema.Input, T](options...),
		responder:   NewAgent[schema.Input, O](options...),
		maxAttempts: maxAttempts,
		attempts:    atomic.NewInt64(0),
	}
}

func (t *RetryToolAgent[T, O]) SetTool(tool tools.AnonymousTool) *RetryToolAgent[T, O] {
	t.tool = tool
	return t
}

// SetPlanner replaces the planner agent
func (t *RetryToolAgent[T, O]) SetPlanner(planner ChatAgent[schema.Input, T]) *RetryToolAgent[T, O] {
	t.planner = planner
	return t
}

// SetResponder replaces the responder agent
func (t *RetryToolAgent[T, O]) SetResponder(responder ChatAgent[schema.Input, O]) *RetryToolAgent[T, O] {
	t.responder = responder
	return t
}

func (t *RetryToolAgent[T, O]) Name() string {
	return "RetryToolAgent"
}

// MaxAttempts returns the tool attempt ceiling
func (t *RetryToolAgent[T, O]) MaxAttempts() int {
	return t.maxAttempts
}

// Attempts returns the total number of tool invocations made so far
func (t *RetryToolAgent[T, O]) Attempts() int64 {
	return t.attempts.Load()
}

func (t *RetryToolAgent[T, O]) ResetMemory() {
	t.planner.ResetMemory()
	t.responder.ResetMemory()
}

// Run answers the user question, retrying the tool with corrected inputs
// until it succeeds or the attempt ceiling is reached.
func (t *RetryToolAgent[T, O]) Run(ctx context.Context, userInput *schema.Input, output *O, apiResp *components.ApiResponse) error {
	input := userInput
	var lastRetry *tools.RetryError
	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		toolInput := new(T)
		if err := t.planner.Run(ctx, input, toolInput, apiResp); err != nil {
			return err
		}
		t.attempts.Inc()
		result, err := t.tool.RunAnonymous(ctx, toolInput)
		if err != nil {
			var retryErr *tools.RetryError
			if errors.As(err, &retryErr) {
				lastRetry = retryErr
				input = schema.NewInput(correctionPrompt(retryErr))
				continue
			}
			return err
		}
		if out, ok := result.(schema.Schema); ok {
			t.responder.NewMessage(components.SystemRole, out)
		}
		return t.responder.Run(ctx, userInput, output, apiResp)
	}
	return &RetryExhaustedError{
		Attempts: t.maxAttempts,
		Last:     lastRetry,
	}
}

// correctionPrompt turns a retryable tool failure into the follow-up prompt
// asking the model for a corrected input
func correctionPrompt(retryErr *tools.RetryError) string {
	return fmt.Sprintf("The query %q failed: %s. Provide a corrected query expression answering the same question.", retryErr.Query, retryErr.Diagnostic)
}
