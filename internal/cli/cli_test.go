package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgolang/cprintf/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logger.SetTestOutput(io.Discard)
	t.Cleanup(logger.UnsetTestOutput)

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		want string
	}{
		{"int", []string{"render", "%05d", "42"}, "00042"},
		{"negative width", []string{"render", "[%*d]", "-4", "7"}, "[7   ]"},
		{"chars", []string{"render", "%c%c", "a", "66"}, "aB"},
		{"string", []string{"render", "%-4s|", "ab"}, "ab  |"},
		{"float", []string{"render", "%.2f", "3.14159"}, "3.14"},
		{"escapes", []string{"render", "-e", `%d\t\x41\n`, "1"}, "1\tA\n"},
		{"newline", []string{"render", "-n", "hi"}, "hi\n"},
		{"truncated", []string{"render", "ab%.d cd"}, "ab"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestRenderArgumentErrors(t *testing.T) {
	_, err := execute(t, "render", "%d %d", "1")
	require.ErrorContains(t, err, "missing argument")

	_, err = execute(t, "render", "%d", "1", "2")
	require.ErrorContains(t, err, "too many arguments")

	_, err = execute(t, "render", "%f", "pi")
	require.ErrorContains(t, err, "bad argument")
}

func TestTokens(t *testing.T) {
	out, err := execute(t, "tokens", "a%-5d")
	require.NoError(t, err)
	assert.Contains(t, out, `"a"`)
	assert.Contains(t, out, "%-5d")
}

func TestKinds(t *testing.T) {
	out, err := execute(t, "kinds", "%*.*lu %s %p")
	require.NoError(t, err)
	assert.Equal(t, "1\tint\n2\tint\n3\tunsigned long\n4\tchar *\n5\tvoid *\n", out)
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   helper/radices")

	out, err = execute(t, "check", "-q")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCheckFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	content := `- name: good
  format: "%x"
  args: ["255"]
  want: "ff"
- name: bad
  format: "%x"
  args: ["255"]
  want: "FF"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out, err := execute(t, "check", path)
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, out, "ok   good")
	assert.Contains(t, out, "FAIL bad")
}

func TestConfigFixtures(t *testing.T) {
	dir := t.TempDir()
	cases := `- name: only
  format: "%s"
  args: ["x"]
  want: "x"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cases.yaml"), []byte(cases), 0o600))
	cfg := "log_level: error\nfixtures: cases.yaml\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cprintf.yaml"), []byte(cfg), 0o600))

	out, err := execute(t, "--config", filepath.Join(dir, "cprintf.yaml"), "check")
	require.NoError(t, err)
	assert.Equal(t, "ok   only\n", out)
}

func TestBadFlags(t *testing.T) {
	_, err := execute(t, "--log-format", "xml", "kinds", "%d")
	require.Error(t, err)

	_, err = execute(t, "check", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to open fixtures")
}

func TestIR(t *testing.T) {
	out, err := execute(t, "ir")
	require.NoError(t, err)
	assert.Contains(t, out, "define i32 @main()")

	path := filepath.Join(t.TempDir(), "out", "cases.ll")
	out, err = execute(t, "ir", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "declare i32 @printf(i8*")
}

func TestUnescape(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{`plain`, "plain"},
		{`a\nb`, "a\nb"},
		{`\xff`, "\xff"},
		{`\"q\'`, `"q'`},
		{`é`, "é"},
		{`50%`, "50%"},
	} {
		got, err := unescape(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
	_, err := unescape(`bad\`)
	require.Error(t, err)
}
