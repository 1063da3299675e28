package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/numerik/internal/calc"
)

func newEvalCmd(opts *rootOptions) *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an arithmetic expression",
		Long: `Evaluates an expression with + - * / ^ and parentheses.
Division keeps two decimal places (half up). Anything that does not
parse, including division by zero, is reported as unparseable.

Examples:
  numerik eval "1/3*3"            # 0.99
  numerik eval "(2+3)^2" --style dress`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.svc.Evaluate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printResult(cmd, opts, result, style)
		},
	}
	cmd.Flags().StringVar(&style, "style", "plain", "text rendering: plain, stringify or dress")
	return cmd
}

func newReduceCmd(opts *rootOptions) *cobra.Command {
	var (
		policy string
		style  string
	)

	cmd := &cobra.Command{
		Use:   "reduce <sum|product|depercent|blend> <operand>...",
		Short: "Combine operands under a null policy",
		Long: `Sums or multiplies operands. Operands that do not parse are handled
by the policy: wrap_zero treats them as zero (one for products),
reserve_null makes the result unparseable, notice_null makes it
unparseable only when every operand is.

Examples:
  numerik reduce sum 1.5 2.25 x               # 3.75
  numerik reduce sum 1 x --policy reserve_null
  numerik reduce depercent 200 50             # 100.00`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			operands := make([]any, len(args)-1)
			for i, arg := range args[1:] {
				operands[i] = arg
			}
			result, err := a.svc.Reduce(cmd.Context(), calc.ReduceRequest{
				Op:       strings.ToLower(args[0]),
				Policy:   policy,
				Operands: operands,
			})
			if err != nil {
				return err
			}
			return printResult(cmd, opts, result, style)
		},
	}
	cmd.Flags().StringVar(&policy, "policy", "", "null policy: wrap_zero, reserve_null or notice_null (default from config)")
	cmd.Flags().StringVar(&style, "style", "plain", "text rendering: plain, stringify or dress")
	return cmd
}

func newQuotientCmd(opts *rootOptions) *cobra.Command {
	var (
		req   calc.DivideRequest
		scale int32
		style string
	)

	cmd := &cobra.Command{
		Use:     "quotient <dividend> <divisor>",
		Aliases: []string{"div"},
		Short:   "Divide at a fixed scale",
		Long: `Divides dividend by divisor and rounds to the scale. With --percent
the quotient is taken as a percentage (dividend * 100 / divisor), with
--mod the remainder is returned instead.

Examples:
  numerik quotient 10 3                  # 3.33
  numerik quotient 10 3 --scale 4        # 3.3333
  numerik quotient 1 8 --percent         # 12.50
  numerik quotient -7 3 --mod            # -1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			req.Dividend, req.Divisor = args[0], args[1]
			if cmd.Flags().Changed("scale") {
				req.Scale = &scale
			}
			result, err := a.svc.Divide(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printResult(cmd, opts, result, style)
		},
	}
	cmd.Flags().Int32Var(&scale, "scale", 2, "decimal places of the quotient (default from config)")
	cmd.Flags().StringVar(&req.Mode, "mode", "", "rounding mode, e.g. half_up, half_even, down (default from config)")
	cmd.Flags().StringVar(&req.Policy, "policy", "", "null policy (default from config)")
	cmd.Flags().BoolVar(&req.Percent, "percent", false, "percentage quotient")
	cmd.Flags().BoolVar(&req.Mod, "mod", false, "remainder instead of quotient")
	cmd.Flags().StringVar(&style, "style", "plain", "text rendering: plain, stringify or dress")
	return cmd
}

func newFormatCmd(opts *rootOptions) *cobra.Command {
	var (
		req    calc.FormatRequest
		places int
	)

	cmd := &cobra.Command{
		Use:   "format <value>",
		Short: "Render a value",
		Long: `Renders a value in one of the display styles:
  plain      canonical form keeping the scale
  stringify  shortest form without trailing zeros
  dress      thousands separators
  dress2dp   thousands separators, two places
  percent    value * 100 with a percent sign
  pattern    a number pattern such as "#,##0.00;(#,##0.00)"

Examples:
  numerik format 1234.5 --style dress2dp          # 1,234.50
  numerik format 0.125 --style percent --places 1 # 12.5%`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			req.Value = args[0]
			if cmd.Flags().Changed("places") {
				req.Places = &places
			}
			if req.Pattern != "" && !cmd.Flags().Changed("style") {
				req.Style = "pattern"
			}
			out, err := a.svc.Format(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), opts.output, map[string]string{"formatted": out}, out)
		},
	}
	cmd.Flags().StringVar(&req.Style, "style", "dress", "plain, stringify, dress, dress2dp, percent or pattern")
	cmd.Flags().StringVar(&req.Pattern, "pattern", "", "number pattern (implies --style pattern)")
	cmd.Flags().IntVar(&places, "places", 2, "decimal places for percent (default from config)")
	cmd.Flags().BoolVar(&req.W0, "w0", false, "render unparseable input as zero")
	return cmd
}

// printResult prints a single result; unparseable results fail the command
func printResult(cmd *cobra.Command, opts *rootOptions, result calc.Result, style string) error {
	text := result.Value
	switch style {
	case "stringify":
		text = result.Stringified
	case "dress":
		text = result.Dressed
	}
	if !result.Valid {
		text = VoidText
	}
	if err := printValue(cmd.OutOrStdout(), opts.output, result, text); err != nil {
		return err
	}
	if !result.Valid {
		return errUnparseable
	}
	return nil
}
