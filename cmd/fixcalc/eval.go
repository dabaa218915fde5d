package main

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/govalues/fixed"
)

// arity holds the number of operands of every operator.
var arity = map[string]int{
	"+":    2,
	"-":    2,
	"*":    2,
	"/":    2,
	"avg":  2,
	"pow":  2,
	"neg":  1,
	"abs":  1,
	"sqrt": 1,
	"sq":   1,
	"inv":  1,
}

// evaluator computes expressions written in prefix (Polish) notation,
// such as "* 10 + 1.23 4.56", with a single engine.
// It has no state of its own and can be shared between goroutines.
type evaluator struct {
	a *fixed.Arithmetic
}

func newEvaluator(a *fixed.Arithmetic) *evaluator {
	return &evaluator{a: a}
}

// evaluate returns the unscaled value of the expression.
func (e *evaluator) evaluate(input string) (int64, error) {
	tokens, err := parseTokens(input)
	if err != nil {
		return 0, errors.Wrap(err, "parsing tokens")
	}
	stack, err := e.processTokens(tokens)
	if err != nil {
		return 0, errors.Wrap(err, "processing tokens")
	}
	if len(stack) != 1 {
		return 0, errors.Errorf("post-processed stack contains %v items, expected exactly one", len(stack))
	}
	return stack[0], nil
}

func parseTokens(input string) ([]string, error) {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return nil, errors.New("no tokens")
	}
	return tokens, nil
}

func (e *evaluator) processTokens(tokens []string) ([]int64, error) {
	stack := make([]int64, 0, len(tokens))
	var err error
	for i := len(tokens) - 1; i >= 0; i-- {
		token := tokens[i]
		switch arity[token] {
		case 2:
			stack, err = e.processBinary(stack, token)
		case 1:
			stack, err = e.processUnary(stack, token)
		default:
			stack, err = e.processOperand(stack, token)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "processing token %q", token)
		}
	}
	return stack, nil
}

func (e *evaluator) processBinary(stack []int64, token string) ([]int64, error) {
	if len(stack) < 2 {
		return nil, errors.New("not enough operands")
	}
	left := stack[len(stack)-1]
	right := stack[len(stack)-2]
	stack = stack[:len(stack)-2]
	var result int64
	var err error
	switch token {
	case "+":
		result, err = e.a.Add(left, right)
	case "-":
		result, err = e.a.Sub(left, right)
	case "*":
		result, err = e.a.Mul(left, right)
	case "/":
		result, err = e.a.Quo(left, right)
	case "avg":
		result, err = e.a.Avg(left, right)
	case "pow":
		var n int
		n, err = e.exponent(right)
		if err == nil {
			result, err = e.a.Pow(left, n)
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "evaluating \"%s %s %s\"", token, e.a.Text(left), e.a.Text(right))
	}
	return append(stack, result), nil
}

func (e *evaluator) processUnary(stack []int64, token string) ([]int64, error) {
	if len(stack) < 1 {
		return nil, errors.New("not enough operands")
	}
	x := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	var result int64
	var err error
	switch token {
	case "neg":
		result, err = e.a.Neg(x)
	case "abs":
		result, err = e.a.Abs(x)
	case "sqrt":
		result, err = e.a.Sqrt(x)
	case "sq":
		result, err = e.a.Square(x)
	case "inv":
		result, err = e.a.Inv(x)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "evaluating \"%s %s\"", token, e.a.Text(x))
	}
	return append(stack, result), nil
}

func (e *evaluator) processOperand(stack []int64, token string) ([]int64, error) {
	x, err := e.a.Parse(token)
	if err != nil {
		return nil, err
	}
	return append(stack, x), nil
}

// exponent converts an unscaled whole number into a power exponent.
func (e *evaluator) exponent(x int64) (int, error) {
	m := e.a.Metrics()
	if m.ModByFactor(x) != 0 {
		return 0, errors.Wrapf(fixed.ErrInvalidOperation, "exponent %v is not an integer", e.a.Text(x))
	}
	return int(m.QuoByFactor(x)), nil
}
