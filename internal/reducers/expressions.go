package reducers

import (
	"slices"

	"github.com/roach88/dbgstate/internal/action"
)

// Expression is a watch expression and its latest evaluation.
type Expression struct {
	Input    string `json:"input"`
	Value    string `json:"value,omitempty"`
	Error    string `json:"error,omitempty"`
	Updating bool   `json:"updating,omitempty"`
}

type ExpressionsState struct {
	Expressions []Expression `json:"expressions"`
}

func InitialExpressionsState() *ExpressionsState {
	return &ExpressionsState{Expressions: []Expression{}}
}

func (s *ExpressionsState) index(input string) int {
	return slices.IndexFunc(s.Expressions, func(e Expression) bool { return e.Input == input })
}

func ReduceExpressions(s *ExpressionsState, a action.Action) (*ExpressionsState, error) {
	switch a := a.(type) {
	case action.AddExpression:
		if a.Input == "" {
			return s, invalidKey("expressions", "input", a.Input)
		}
		if s.index(a.Input) >= 0 {
			return s, nil
		}
		exprs := make([]Expression, len(s.Expressions), len(s.Expressions)+1)
		copy(exprs, s.Expressions)
		return &ExpressionsState{Expressions: append(exprs, Expression{Input: a.Input})}, nil

	case action.UpdateExpression:
		if a.NewInput == "" {
			return s, invalidKey("expressions", "input", a.NewInput)
		}
		i := s.index(a.Input)
		if i < 0 || a.Input == a.NewInput || s.index(a.NewInput) >= 0 {
			return s, nil
		}
		exprs := slices.Clone(s.Expressions)
		exprs[i] = Expression{Input: a.NewInput}
		return &ExpressionsState{Expressions: exprs}, nil

	case action.DeleteExpression:
		i := s.index(a.Input)
		if i < 0 {
			return s, nil
		}
		return &ExpressionsState{Expressions: slices.Delete(slices.Clone(s.Expressions), i, i+1)}, nil

	case action.EvaluateExpressions:
		if len(s.Expressions) == 0 {
			return s, nil
		}
		return evaluateExpressions(s, a), nil
	}
	return s, nil
}

func evaluateExpressions(s *ExpressionsState, a action.EvaluateExpressions) *ExpressionsState {
	exprs := slices.Clone(s.Expressions)
	switch a.Status {
	case action.StatusStart:
		for i := range exprs {
			exprs[i].Updating = true
		}
	case action.StatusError:
		for i := range exprs {
			exprs[i].Updating = false
			exprs[i].Error = a.Error
		}
	default:
		results := make(map[string]action.ExpressionResult, len(a.Results))
		for _, r := range a.Results {
			results[r.Input] = r
		}
		for i := range exprs {
			exprs[i].Updating = false
			if r, ok := results[exprs[i].Input]; ok {
				exprs[i].Value = r.Value
				exprs[i].Error = r.Error
			}
		}
	}
	if slices.Equal(exprs, s.Expressions) {
		return s
	}
	return &ExpressionsState{Expressions: exprs}
}
