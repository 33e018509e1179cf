package cli

import (
	"fmt"

	"github.com/rgolang/cprintf/internal/logger"
	"github.com/rgolang/cprintf/lex"
	"github.com/rgolang/cprintf/libcutils"
	"github.com/rgolang/cprintf/printf"
	"github.com/rgolang/cprintf/va"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var escapes, newline bool
	cmd := &cobra.Command{
		Use:   "render <format> [arg...]",
		Short: "Render a format string",
		Long: `Render a format string with the given arguments.

Each argument is converted to the C type its placeholder reads: integers
accept 0x and 0 prefixes, a single character such as a or 'a gives its
byte value, %s takes the word as is and %p takes a number.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := args[0]
			if escapes {
				var err error
				if format, err = unescape(format); err != nil {
					return err
				}
			}
			if err := render(cmd, []byte(format), args[1:]); err != nil {
				return err
			}
			if newline {
				_, err := fmt.Fprintln(cmd.OutOrStdout())
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&escapes, "escapes", "e", false, "interpret backslash escapes in the format")
	cmd.Flags().BoolVarP(&newline, "newline", "n", false, "print a newline after the output")
	// arguments such as -4 are values, not flags
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func render(cmd *cobra.Command, format []byte, raw []string) error {
	tokens := lex.Parse(format)
	if off, bad := lex.FirstError(tokens); bad {
		logger.Warn("malformed placeholder, output is truncated", logger.Fields{"offset": off})
	}

	values, err := va.ParseArgs(libcutils.ArgKinds(tokens), raw)
	if err != nil {
		return err
	}
	args := va.New(values...)
	n, err := printf.Interpret(cmd.OutOrStdout(), tokens, args)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Debug("rendered", logger.Fields{"bytes": n, "args": len(values)})
	return nil
}

func newTokensCmd() *cobra.Command {
	var escapes bool
	cmd := &cobra.Command{
		Use:   "tokens <format>",
		Short: "Show how a format string is parsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := args[0]
			if escapes {
				var err error
				if format, err = unescape(format); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), lex.Dump(lex.Parse([]byte(format))))
			return err
		},
	}
	cmd.Flags().BoolVarP(&escapes, "escapes", "e", false, "interpret backslash escapes in the format")
	return cmd
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds <format>",
		Short: "List the C argument types a format string reads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, k := range libcutils.ArgKinds(lex.Parse([]byte(args[0]))) {
				if _, err := fmt.Fprintf(out, "%d\t%s\n", i+1, k); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
