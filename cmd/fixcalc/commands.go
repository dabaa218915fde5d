package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/govalues/fixed"
)

func newEvalCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval EXPR",
		Short: "Evaluate one expression",
		Long: `Evaluate one expression written in prefix notation.

Binary operators: + - * / avg pow (the exponent must be a whole number).
Unary operators: neg abs sqrt sq inv.`,
		Example: "  fixcalc eval -- '* 10 + 1.23 4.56'\n  fixcalc eval -s 4 -r half-even -- / 1 3",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")
			z, err := newEvaluator(app.a).evaluate(expr)
			if err != nil {
				app.logger.Error("evaluation failed", zap.String("expression", expr), zap.Error(err))
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.a.Text(z))
			return nil
		},
	}
}

func newBatchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch [FILE]",
		Short: "Evaluate one expression per line",
		Long: `Evaluate one expression per line of FILE, or of the standard input
if FILE is omitted or "-". Blank lines and lines starting with '#' are
skipped. Results are printed in input order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "open input")
				}
				defer f.Close()
				r = f
			}
			return runBatch(cmd, app, r)
		},
	}
}

func runBatch(cmd *cobra.Command, app *app, r io.Reader) error {
	exprs, err := readExpressions(r)
	if err != nil {
		return err
	}
	results, err := evaluateBatch(cmd.Context(), app.logger, newEvaluator(app.a), exprs, app.cfg.Workers)
	if err != nil {
		return err
	}
	failed := 0
	out := cmd.OutOrStdout()
	for _, res := range results {
		if res.err != nil {
			failed++
			fmt.Fprintf(out, "error: line %v: %v\n", res.line, res.err)
			continue
		}
		fmt.Fprintln(out, app.a.Text(res.value))
	}
	app.logger.Info("batch finished", zap.Int("expressions", len(results)), zap.Int("failed", failed))
	if failed > 0 {
		return errors.Errorf("%v of %v expressions failed", failed, len(results))
	}
	return nil
}

func newMetricsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print the constants of every scale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "\tSCALE\tFACTOR\tSQRT FACTOR\tMIN INTEGER\tMAX INTEGER\tMIN FLOAT\tMAX FLOAT\t")
			for s := 0; s <= fixed.MaxScale; s++ {
				m := fixed.MustMetrics(s)
				mark := ""
				if s == app.a.Scale() {
					mark = "*"
				}
				a := m.DefaultArithmetic()
				fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\t%v\t%v\t\n",
					mark, m.Scale(), m.Factor(), m.SqrtFactor(),
					m.MinIntegerValue(), m.MaxIntegerValue(),
					a.MinFloat64(), a.MaxFloat64(),
				)
			}
			return w.Flush()
		},
	}
}
