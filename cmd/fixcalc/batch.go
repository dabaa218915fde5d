package main

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// expression is a non-blank line of a batch input.
type expression struct {
	line int
	text string
}

// result is the outcome of one expression.
type result struct {
	expression
	value int64
	err   error
}

// readExpressions collects non-blank lines that are not comments.
// Lines starting with '#' are comments.
func readExpressions(r io.Reader) ([]expression, error) {
	var exprs []expression
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		exprs = append(exprs, expression{line: line, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read expressions")
	}
	return exprs, nil
}

// evaluateBatch evaluates expressions concurrently with at most workers
// goroutines, results are in input order.
// A failing expression does not stop the others, only the cancellation of
// the context does.
func evaluateBatch(
	ctx context.Context,
	logger *zap.Logger,
	e *evaluator,
	exprs []expression,
	workers int,
) ([]result, error) {
	results := make([]result, len(exprs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, expr := range exprs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			value, err := e.evaluate(expr.text)
			if err != nil {
				logger.Warn(
					"evaluation failed",
					zap.Int("line", expr.line),
					zap.String("expression", expr.text),
					zap.Error(err),
				)
			}
			results[i] = result{expression: expr, value: value, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "evaluate batch")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "evaluate batch")
	}
	return results, nil
}
