package dataframe

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Knetic/govaluate"
)

// QueryGrammar documents the restricted query expression grammar for model
// prompts. Queries are govaluate expressions over aggregate functions bound
// to the dataset, never arbitrary code.
const QueryGrammar = "- count([filter]) returns the number of rows, optionally matching a filter\n" +
	"- sum(column[, filter]), mean(column[, filter]), min(column[, filter]), max(column[, filter]), median(column[, filter]) aggregate a numeric column\n" +
	"- unique(column) lists the distinct values of a column\n" +
	"- top(column[, filter]) returns the most frequent value of a column\n" +
	"- rows is the total row count\n" +
	"- aggregates combine with arithmetic and comparison operators, e.g. sum('Price') / count()\n" +
	"- filters are quoted boolean expressions over column names, e.g. \"Make == `Toyota` && Year >= 2020\"\n" +
	"- date columns compare against date literals, e.g. \"Date >= `2023-06-01`\"\n" +
	"- inside a filter, string and date literals use backticks; outside, string literals use single quotes\n" +
	"- column names are case sensitive"

// Eval evaluates a restricted query expression against the frame and returns
// the textual rendering of the produced value. Evaluation is deterministic
// and touches nothing outside the frame.
func (f *Frame) Eval(query string) (string, error) {
	exp, err := govaluate.NewEvaluableExpressionWithFunctions(query, f.functions())
	if err != nil {
		return "", fmt.Errorf("invalid query syntax: %w", err)
	}
	params := map[string]interface{}{
		"rows": float64(f.NumRows()),
	}
	result, err := exp.Evaluate(params)
	if err != nil {
		return "", err
	}
	return formatResult(result), nil
}

func formatResult(v interface{}) string {
	switch value := v.(type) {
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case string:
		return value
	}
	return fmt.Sprint(v)
}

// functions returns the aggregate functions bound to the frame
func (f *Frame) functions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"count": func(args ...interface{}) (interface{}, error) {
			filter, err := optionalFilter(args, 0)
			if err != nil {
				return nil, err
			}
			records, err := f.filtered(filter)
			if err != nil {
				return nil, err
			}
			return float64(len(records)), nil
		},
		"sum": f.aggregate("sum", func(values []float64) (float64, error) {
			var total float64
			for _, v := range values {
				total += v
			}
			return total, nil
		}),
		"mean": f.aggregate("mean", func(values []float64) (float64, error) {
			if len(values) == 0 {
				return 0, fmt.Errorf("no rows to aggregate")
			}
			var total float64
			for _, v := range values {
				total += v
			}
			return total / float64(len(values)), nil
		}),
		"min": f.aggregate("min", func(values []float64) (float64, error) {
			if len(values) == 0 {
				return 0, fmt.Errorf("no rows to aggregate")
			}
			ret := values[0]
			for _, v := range values[1:] {
				if v < ret {
					ret = v
				}
			}
			return ret, nil
		}),
		"max": f.aggregate("max", func(values []float64) (float64, error) {
			if len(values) == 0 {
				return 0, fmt.Errorf("no rows to aggregate")
			}
			ret := values[0]
			for _, v := range values[1:] {
				if v > ret {
					ret = v
				}
			}
			return ret, nil
		}),
		"median": f.aggregate("median", func(values []float64) (float64, error) {
			if len(values) == 0 {
				return 0, fmt.Errorf("no rows to aggregate")
			}
			sorted := make([]float64, len(values))
			copy(sorted, values)
			sort.Float64s(sorted)
			mid := len(sorted) / 2
			if len(sorted)%2 == 0 {
				return (sorted[mid-1] + sorted[mid]) / 2, nil
			}
			return sorted[mid], nil
		}),
		"unique": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("unique expects 1 argument, got %d", len(args))
			}
			idx, err := f.columnArg(args[0])
			if err != nil {
				return nil, err
			}
			seen := make(map[string]struct{}, 16)
			values := make([]string, 0, 16)
			for _, rec := range f.records {
				v := formatCell(rec[idx])
				if _, found := seen[v]; found {
					continue
				}
				seen[v] = struct{}{}
				values = append(values, v)
			}
			sort.Strings(values)
			return strings.Join(values, ", "), nil
		},
		"top": func(args ...interface{}) (interface{}, error) {
			if len(args) < 1 || len(args) > 2 {
				return nil, fmt.Errorf("top expects 1 or 2 arguments, got %d", len(args))
			}
			idx, err := f.columnArg(args[0])
			if err != nil {
				return nil, err
			}
			filter, err := optionalFilter(args, 1)
			if err != nil {
				return nil, err
			}
			records, err := f.filtered(filter)
			if err != nil {
				return nil, err
			}
			counts := make(map[string]int, 16)
			for _, rec := range records {
				counts[formatCell(rec[idx])]++
			}
			var (
				best     string
				bestHits int
			)
			for v, hits := range counts {
				if hits > bestHits || (hits == bestHits && v < best) {
					best = v
					bestHits = hits
				}
			}
			if bestHits == 0 {
				return nil, fmt.Errorf("no rows to aggregate")
			}
			return best, nil
		},
	}
}

type reducer func(values []float64) (float64, error)

// aggregate builds a numeric aggregate function over (column[, filter]) args
func (f *Frame) aggregate(name string, reduce reducer) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, fmt.Errorf("%s expects 1 or 2 arguments, got %d", name, len(args))
		}
		idx, err := f.columnArg(args[0])
		if err != nil {
			return nil, err
		}
		filter, err := optionalFilter(args, 1)
		if err != nil {
			return nil, err
		}
		records, err := f.filtered(filter)
		if err != nil {
			return nil, err
		}
		values, err := f.numericValues(idx, records)
		if err != nil {
			return nil, err
		}
		ret, err := reduce(values)
		if err != nil {
			return nil, fmt.Errorf("%s(%q): %w", name, f.columns[idx].Name, err)
		}
		return ret, nil
	}
}

// columnArg resolves a function argument into a column position. Column
// names are matched case sensitively.
func (f *Frame) columnArg(arg interface{}) (int, error) {
	name, ok := arg.(string)
	if !ok {
		return 0, fmt.Errorf("column name must be a quoted string, got %v", arg)
	}
	idx, found := f.index[name]
	if !found {
		return 0, fmt.Errorf("unknown column %q, available columns are: %s", name, strings.Join(f.ColumnNames(), ", "))
	}
	return idx, nil
}

func optionalFilter(args []interface{}, pos int) (string, error) {
	if len(args) <= pos {
		return "", nil
	}
	filter, ok := args[pos].(string)
	if !ok {
		return "", fmt.Errorf("filter must be a quoted boolean expression, got %v", args[pos])
	}
	return filter, nil
}

// filtered returns the records matching the filter expression, or all
// records for an empty filter. Column names act as per-row parameters.
// Filters arrive as string arguments of the outer query, and the expression
// parser ends a string at either quote character, so literals inside a
// filter use backticks and are rewritten to quotes before compiling.
func (f *Frame) filtered(filter string) ([]Record, error) {
	if filter == "" {
		return f.records, nil
	}
	exp, err := govaluate.NewEvaluableExpression(strings.ReplaceAll(filter, "`", "'"))
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", filter, err)
	}
	matched := make([]Record, 0, len(f.records))
	for _, rec := range f.records {
		v, err := exp.Evaluate(f.rowParams(rec))
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", filter, err)
		}
		ok, isBool := v.(bool)
		if !isBool {
			return nil, fmt.Errorf("filter %q must produce a boolean", filter)
		}
		if ok {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// rowParams exposes one record as filter parameters keyed by column name.
// Ints and dates become float64 so they compare against numeric and date
// literals the way govaluate expects.
func (f *Frame) rowParams(rec Record) map[string]interface{} {
	params := make(map[string]interface{}, len(f.columns))
	for idx, col := range f.columns {
		switch col.Kind {
		case IntKind:
			params[col.Name] = float64(rec[idx].(int))
		case DateKind:
			params[col.Name] = float64(rec[idx].(time.Time).Unix())
		default:
			params[col.Name] = rec[idx]
		}
	}
	return params
}

// numericValues extracts a numeric column from the given records
func (f *Frame) numericValues(idx int, records []Record) ([]float64, error) {
	col := f.columns[idx]
	values := make([]float64, 0, len(records))
	switch col.Kind {
	case IntKind:
		for _, rec := range records {
			values = append(values, float64(rec[idx].(int)))
		}
	case FloatKind:
		for _, rec := range records {
			values = append(values, rec[idx].(float64))
		}
	default:
		return nil, fmt.Errorf("column %q is not numeric (%s)", col.Name, col.Kind)
	}
	return values, nil
}
