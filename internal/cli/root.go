// Package cli implements the cprintf command line.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rgolang/cprintf/fixtures"
	"github.com/rgolang/cprintf/internal/config"
	"github.com/rgolang/cprintf/internal/logger"
	"github.com/rgolang/cprintf/omap"
	"github.com/spf13/cobra"
)

// options is shared by every subcommand. cfg is set once flags are parsed.
type options struct {
	configPath string
	logLevel   string
	logFormat  string
	cfg        *config.Config
}

// NewRootCmd creates the cprintf command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "cprintf",
		Short: "Render and inspect C printf format strings",
		Long: `cprintf parses C printf format strings and renders them the way glibc
does, without calling into C:
- render, tokens, kinds: work on a single format string
- check: run a fixtures file through the interpreter
- ir: emit an LLVM program that runs the same fixtures through libc`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (text, json)")

	cmd.AddCommand(
		newRenderCmd(),
		newTokensCmd(),
		newKindsCmd(),
		newCheckCmd(opts),
		newIRCmd(opts),
	)
	return cmd
}

func (o *options) load(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	// flags win over the file
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.InitLogger(cfg.LogLevel, logger.OutputFormat(cfg.LogFormat))
	logger.Debug("config loaded", logger.Fields{"path": o.configPath, "log_level": cfg.LogLevel})
	o.cfg = cfg
	return nil
}

// loadFixtures reads path, or the configured fixtures file, or the built in
// suite, in that order.
func (o *options) loadFixtures(path string) (*omap.Map[string, fixtures.Case], error) {
	if path == "" && o.cfg != nil {
		path = o.cfg.Fixtures
	}
	if path == "" {
		return fixtures.Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer func() { _ = f.Close() }()

	cases, err := fixtures.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("fixtures loaded", logger.Fields{"path": path, "cases": len(cases.Index)})
	return cases, nil
}

// unescape interprets backslash escapes the way a C string literal would.
func unescape(s string) (string, error) {
	var sb strings.Builder
	for len(s) > 0 {
		if len(s) > 1 && s[0] == '\\' && (s[1] == '"' || s[1] == '\'') {
			sb.WriteByte(s[1])
			s = s[2:]
			continue
		}
		r, multibyte, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			return "", fmt.Errorf("bad escape in %q: %w", s, err)
		}
		if r < 0x100 && !multibyte {
			sb.WriteByte(byte(r))
		} else {
			sb.WriteRune(r)
		}
		s = tail
	}
	return sb.String(), nil
}
