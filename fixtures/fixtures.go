// Package fixtures loads named printf test vectors from YAML.
package fixtures

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rgolang/cprintf/lex"
	"github.com/rgolang/cprintf/libcutils"
	"github.com/rgolang/cprintf/omap"
	"github.com/rgolang/cprintf/printf"
	"github.com/rgolang/cprintf/va"
	"gopkg.in/yaml.v3"
)

var (
	ErrDuplicateCase = errors.New("duplicate case")
	ErrUnnamedCase   = errors.New("case has no name")
	ErrMismatch      = errors.New("output mismatch")
)

//go:embed default.yaml
var defaultSuite []byte

type Case struct {
	Name   string   `yaml:"name"`
	Format string   `yaml:"format"`
	Args   []string `yaml:"args,omitempty"`
	Want   string   `yaml:"want"`
}

// Load decodes a YAML list of cases, keeping file order.
func Load(r io.Reader) (*omap.Map[string, Case], error) {
	var list []Case
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&list); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	cases := omap.New[string, Case]()
	for i, c := range list {
		if c.Name == "" {
			return nil, fmt.Errorf("case %d: %w", i+1, ErrUnnamedCase)
		}
		if _, ok := cases.Get(c.Name); ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCase, c.Name)
		}
		cases.Set(c.Name, c)
	}
	return cases, nil
}

// Default returns the built in suite.
func Default() *omap.Map[string, Case] {
	cases, err := Load(bytes.NewReader(defaultSuite))
	if err != nil {
		panic(fmt.Sprintf("embedded fixtures: %v", err))
	}
	return cases
}

// Malformed reports whether the format contains a placeholder we refuse to
// parse. C libraries disagree on those, so they are only checked against
// this package's own rendering.
func (c Case) Malformed() bool {
	_, bad := lex.FirstError(lex.Parse([]byte(c.Format)))
	return bad
}

// Values converts Args to the C types the format reads.
func (c Case) Values() ([]libcutils.Kind, []any, error) {
	kinds := libcutils.ArgKinds(lex.Parse([]byte(c.Format)))
	values, err := va.ParseArgs(kinds, c.Args)
	if err != nil {
		return nil, nil, fmt.Errorf("case %q: %w", c.Name, err)
	}
	return kinds, values, nil
}

// Run renders the case. The rendered output is returned even when it does
// not match Want.
func (c Case) Run() (string, error) {
	_, values, err := c.Values()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if _, err := printf.Fprintf(&sb, []byte(c.Format), va.New(values...)); err != nil {
		return "", fmt.Errorf("case %q: %w", c.Name, err)
	}
	got := sb.String()
	if got != c.Want {
		return got, fmt.Errorf("case %q: %w: got %q, want %q", c.Name, ErrMismatch, got, c.Want)
	}
	return got, nil
}
