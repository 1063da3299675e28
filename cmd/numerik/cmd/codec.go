package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/numerik/internal/calc"
)

// codecFlags are shared by encode and decode
type codecFlags struct {
	dims       []string
	ignoreCase bool
}

func (f *codecFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.dims, "dim", "d", nil, "comma separated options of one dimension, lowest first (repeatable)")
	cmd.Flags().BoolVarP(&f.ignoreCase, "ignore-case", "i", false, "match options case-insensitively")
	_ = cmd.MarkFlagRequired("dim")
}

func (f *codecFlags) request() calc.CodecRequest {
	req := calc.CodecRequest{IgnoreCase: f.ignoreCase}
	for _, dim := range f.dims {
		var options []string
		for _, option := range strings.Split(dim, ",") {
			options = append(options, strings.TrimSpace(option))
		}
		req.Dimensions = append(req.Dimensions, options)
	}
	return req
}

func newCodecCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codec",
		Short: "Encode and decode combinatorial identifiers",
		Long: `Maps one option per dimension onto a single integer and back.
Dimension 0 (the first --dim) is the least significant digit.

Examples:
  numerik codec encode -d a,b,c -d x,y,z b z     # 7
  numerik codec decode -d a,b,c -d x,y,z 7       # b z`,
	}
	cmd.AddCommand(newCodecEncodeCmd(opts), newCodecDecodeCmd(opts))
	return cmd
}

func newCodecEncodeCmd(opts *rootOptions) *cobra.Command {
	var flags codecFlags

	cmd := &cobra.Command{
		Use:   "encode <option>...",
		Short: "Encode a selection, one option per dimension (\"\" skips one)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			req := flags.request()
			req.Selection = args
			id, count, err := a.svc.Encode(cmd.Context(), req)
			if err != nil {
				return err
			}
			text := strconv.Itoa(id)
			if opts.verbose {
				text = fmt.Sprintf("%d of %d", id, count)
			}
			return printValue(cmd.OutOrStdout(), opts.output, map[string]int{"id": id, "count": count}, text)
		},
	}
	flags.register(cmd)
	return cmd
}

func newCodecDecodeCmd(opts *rootOptions) *cobra.Command {
	var flags codecFlags

	cmd := &cobra.Command{
		Use:   "decode <id>",
		Short: "Decode an identifier into one option per dimension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}

			a, err := opts.open(openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			req := flags.request()
			req.ID = id
			selection, err := a.svc.Decode(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), opts.output, map[string][]string{"selection": selection}, strings.Join(selection, " "))
		},
	}
	flags.register(cmd)
	return cmd
}
