package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rgolang/cprintf/fixtures"
	"github.com/rgolang/cprintf/internal/logger"
	"github.com/rgolang/cprintf/llvm"
	"github.com/spf13/cobra"
)

var ErrCheckFailed = errors.New("fixtures failed")

func newCheckCmd(opts *options) *cobra.Command {
	var quiet, native bool
	cmd := &cobra.Command{
		Use:   "check [fixtures.yaml]",
		Short: "Run printf fixtures",
		Long: `Render every case of a fixtures file and compare it with the expected
output. Without a file the configured fixtures, or the built in suite, are
used.

With --native the cases are also compiled with the configured llc and cc
and every rendering is compared with what the C library prints.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			cases, err := opts.loadFixtures(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			cases.Each(func(name string, c fixtures.Case) {
				if _, err := c.Run(); err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", name, err)
					return
				}
				if !quiet {
					fmt.Fprintf(out, "ok   %s\n", name)
				}
			})
			if native {
				n, err := checkNative(cmd, opts, cases.Index)
				if err != nil {
					return err
				}
				failed += n
			}
			logger.Info("fixtures checked", logger.Fields{"cases": len(cases.Index), "failed": failed})
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", ErrCheckFailed, failed, len(cases.Index))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print failures")
	cmd.Flags().BoolVar(&native, "native", false, "compare against the C library as well")
	return cmd
}

func checkNative(cmd *cobra.Command, opts *options, cases []fixtures.Case) (int, error) {
	tc := llvm.Toolchain{LLC: opts.cfg.Toolchain.LLC, CC: opts.cfg.Toolchain.CC}
	ran, want, err := tc.Outputs(cmd.Context(), cases)
	if err != nil {
		return 0, err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for i, c := range ran {
		c.Want = want[i]
		if got, err := c.Run(); err != nil {
			failed++
			fmt.Fprintf(out, "DIFF %s: got %q, libc printed %q\n", c.Name, got, want[i])
		}
	}
	return failed, nil
}

func newIRCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "ir [fixtures.yaml]",
		Short: "Emit an LLVM IR program that runs fixtures through libc printf",
		Long: `Emit an LLVM IR program whose main calls the C library printf once for
every case, each output followed by an ASCII record separator. Build it with

  llc -filetype=obj -relocation-model=pic cases.ll
  cc cases.o -o cases

to see what libc prints for the same formats and arguments.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			cases, err := opts.loadFixtures(path)
			if err != nil {
				return err
			}
			mod, err := llvm.Harness(cases.Index)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = mod.WriteTo(cmd.OutOrStdout())
				return err
			}
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := os.WriteFile(output, []byte(mod.String()), 0o644); err != nil {
				return fmt.Errorf("write IR: %w", err)
			}
			logger.Info("IR written", logger.Fields{"path": output})
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the IR to this file")
	return cmd
}
