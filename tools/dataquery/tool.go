package dataquery

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/atomic"

	"github.com/bububa/dataframe-agents/dataframe"
	"github.com/bububa/dataframe-agents/schema"
	"github.com/bububa/dataframe-agents/tools"
)

// Input is the query expression to evaluate against the bound dataset.
// The expression must stay inside the restricted query grammar; it is never
// executed as code.
type Input struct {
	schema.Base
	// Query Expression to evaluate against the dataset. For example, "mean('Price')".
	Query string `json:"query" jsonschema:"title=query,description=Query expression to evaluate against the dataset. For example mean('Price')." validate:"required"`
}

func NewInput(query string) *Input {
	return &Input{
		Query: query,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output is the textual result of a query evaluation
type Output struct {
	schema.Base
	// Result Textual result of the query evaluation
	Result string `json:"result,omitempty" jsonschema:"title=result,description=Textual result of the query evaluation."`
}

func NewOutput(result string) *Output {
	return &Output{
		Result: result,
	}
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Tool evaluates restricted query expressions against a Frame. Any
// evaluation failure is converted into a *tools.RetryError carrying the
// original query text and a diagnostic, never surfaced raw, so an upstream
// agent can feed it back to the model as guidance for a corrected query.
// Deterministic given (query, frame).
type Tool struct {
	tools.Config
	frame    *dataframe.Frame
	validate *validator.Validate
	calls    *atomic.Int64
}

var _ tools.AnonymousTool = (*Tool)(nil)

func New(frame *dataframe.Frame, opts ...tools.Option) *Tool {
	ret := &Tool{
		frame:    frame,
		validate: validator.New(),
		calls:    atomic.NewInt64(0),
	}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("DataQueryTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Evaluates a restricted query expression against the in-memory dataset and returns the textual result.")
	}
	return ret
}

// Calls returns the number of Run invocations so far
func (t *Tool) Calls() int64 {
	return t.calls.Load()
}

// Run executes the query tool with the given input
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	t.calls.Inc()
	t.OnStart(ctx, t, input)
	if err := t.validate.Struct(input); err != nil {
		retryErr := tools.NewRetryError(input.Query, err)
		t.OnError(ctx, t, input, retryErr)
		return nil, retryErr
	}
	result, err := t.frame.Eval(input.Query)
	if err != nil {
		retryErr := tools.NewRetryError(input.Query, err)
		t.OnError(ctx, t, input, retryErr)
		return nil, retryErr
	}
	output := NewOutput(result)
	t.OnEnd(ctx, t, input, output)
	return output, nil
}

// RunAnonymous implements tools.AnonymousTool
func (t *Tool) RunAnonymous(ctx context.Context, input any) (any, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, errors.New("invalid tool input schema")
	}
	return t.Run(ctx, in)
}
