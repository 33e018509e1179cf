package llvm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/llir/llvm/ir"
	"github.com/rgolang/cprintf/fixtures"
	"github.com/rgolang/cprintf/internal/logger"
)

var (
	ErrToolchainMissing = errors.New("toolchain not found")
	ErrOutputMismatch   = errors.New("harness output does not match its cases")
)

// Toolchain compiles IR into a native program.
type Toolchain struct {
	LLC string
	CC  string
}

// Available reports whether both programs are on the PATH.
func (t Toolchain) Available() bool {
	for _, p := range []string{t.LLC, t.CC} {
		if _, err := exec.LookPath(p); err != nil {
			return false
		}
	}
	return true
}

// Build compiles mod in dir and returns the path of the executable.
func (t Toolchain) Build(ctx context.Context, mod *ir.Module, dir string) (string, error) {
	if !t.Available() {
		return "", fmt.Errorf("%w: %s, %s", ErrToolchainMissing, t.LLC, t.CC)
	}
	name := filepath.Join(dir, "harness")
	if err := os.WriteFile(name+".ll", []byte(mod.String()), 0o644); err != nil {
		return "", fmt.Errorf("write IR: %w", err)
	}

	commands := [][]string{
		{t.LLC, "-filetype=obj", "-relocation-model=pic", name + ".ll", "-o", name + ".o"},
		{t.CC, name + ".o", "-o", name},
	}
	for _, args := range commands {
		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		output, err := cmd.CombinedOutput()
		if err != nil {
			return "", fmt.Errorf("error running command %q: %w, output: %s", cmd, err, output)
		}
	}
	return name, nil
}

// Outputs builds and runs the harness for cases. It returns the cases the
// harness ran, with what libc printed for each of them.
func (t Toolchain) Outputs(ctx context.Context, cases []fixtures.Case) ([]fixtures.Case, []string, error) {
	mod, err := Harness(cases)
	if err != nil {
		return nil, nil, err
	}

	dir, err := os.MkdirTemp("", "cprintf-harness-")
	if err != nil {
		return nil, nil, fmt.Errorf("create build dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	bin, err := t.Build(ctx, mod, dir)
	if err != nil {
		return nil, nil, err
	}
	out, err := exec.CommandContext(ctx, bin).Output()
	if err != nil {
		return nil, nil, fmt.Errorf("run harness: %w", err)
	}

	ran := Supported(cases)
	got := SplitOutput(string(out))
	if len(got) != len(ran) {
		return nil, nil, fmt.Errorf("%w: %d cases, %d outputs", ErrOutputMismatch, len(ran), len(got))
	}
	logger.Debug("harness ran", logger.Fields{"cases": len(ran), "bytes": len(out)})
	return ran, got, nil
}
