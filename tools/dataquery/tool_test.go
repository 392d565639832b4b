package dataquery

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/bububa/dataframe-agents/dataframe"
	"github.com/bububa/dataframe-agents/tools"
)

func TestRowCountQuery(t *testing.T) {
	ctx := context.Background()
	frame := dataframe.GenerateCarSales(120, 42)
	tool := New(frame)
	ret, err := tool.Run(ctx, NewInput("count()"))
	if err != nil {
		t.Fatal(err)
	}
	if expect := strconv.Itoa(frame.NumRows()); ret.Result != expect {
		t.Errorf("expect %s, got %s", expect, ret.Result)
	}
}

func TestRetrySignal(t *testing.T) {
	ctx := context.Background()
	frame := dataframe.GenerateCarSales(50, 42)
	tool := New(frame)
	query := "mean('price')"
	_, err := tool.Run(ctx, NewInput(query))
	if err == nil {
		t.Fatal("expect retryable failure for lower-cased column")
	}
	var retryErr *tools.RetryError
	if !errors.As(err, &retryErr) {
		t.Fatalf("expect *tools.RetryError, got %T: %v", err, err)
	}
	if retryErr.Query != query {
		t.Errorf("expect offending query %q, got %q", query, retryErr.Query)
	}
	if !strings.Contains(retryErr.Diagnostic, `"price"`) {
		t.Errorf("expect diagnostic to name the column, got: %s", retryErr.Diagnostic)
	}
}

func TestCaseSensitivityScenario(t *testing.T) {
	ctx := context.Background()
	frame := dataframe.GenerateCarSales(80, 7)
	tool := New(frame)
	if _, err := tool.Run(ctx, NewInput("mean('price')")); err == nil {
		t.Fatal("expect failure for mean('price')")
	}
	ret, err := tool.Run(ctx, NewInput("mean('Price')"))
	if err != nil {
		t.Fatal(err)
	}
	expect, err := frame.Eval("sum('Price') / count()")
	if err != nil {
		t.Fatal(err)
	}
	if ret.Result != expect {
		t.Errorf("expect mean %s, got %s", expect, ret.Result)
	}
}

func TestEmptyQuery(t *testing.T) {
	ctx := context.Background()
	tool := New(dataframe.GenerateCarSales(10, 1))
	_, err := tool.Run(ctx, NewInput(""))
	var retryErr *tools.RetryError
	if !errors.As(err, &retryErr) {
		t.Fatalf("expect *tools.RetryError for empty query, got %T: %v", err, err)
	}
}

func TestHooksAndCallCounter(t *testing.T) {
	ctx := context.Background()
	tool := New(dataframe.GenerateCarSales(10, 1))
	var attempted []string
	var failed int
	tool.SetStartHook(func(_ context.Context, _ tools.AnonymousTool, input any) {
		attempted = append(attempted, input.(*Input).Query)
	})
	tool.SetErrorHook(func(_ context.Context, _ tools.AnonymousTool, _ any, _ error) {
		failed++
	})
	tool.Run(ctx, NewInput("count()"))
	tool.Run(ctx, NewInput("mean('missing')"))
	if tool.Calls() != 2 {
		t.Errorf("expect 2 calls, got %d", tool.Calls())
	}
	if len(attempted) != 2 || attempted[0] != "count()" || attempted[1] != "mean('missing')" {
		t.Errorf("expect every attempted query traced, got %v", attempted)
	}
	if failed != 1 {
		t.Errorf("expect 1 error hook invocation, got %d", failed)
	}
}
