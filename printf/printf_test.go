package printf

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/rgolang/cprintf/lex"
	"github.com/rgolang/cprintf/libcutils"
	"github.com/rgolang/cprintf/va"
	"github.com/rgolang/cprintf/va/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sprintf(format string, args ...any) string {
	return string(Sprintf([]byte(format), va.New(args...)))
}

// The dispatch cases of the original C test helper.
func TestHelperCases(t *testing.T) {
	for _, tc := range []struct {
		format string
		args   []any
		want   string
	}{
		{"testing printf format: %d\n", []any{1}, "testing printf format: 1\n"},
		{"Characters: %c %c", []any{'a', 65}, "Characters: a A"},
		{"Decimals: %d %ld", []any{1977, int64(650000)}, "Decimals: 1977 650000"},
		{"Preceding with blanks: %10d", []any{1977}, "Preceding with blanks:       1977"},
		{"Preceding with zeros: %010d", []any{1977}, "Preceding with zeros: 0000001977"},
		{"Some different radices: %d %x %o %#x %#o", []any{100, 100, 100, 100, 100}, "Some different radices: 100 64 144 0x64 0144"},
		{"floats: %4.2f %+.0e %E", []any{3.1416, 3.1416, 3.1416}, "floats: 3.14 +3e+00 3.141600E+00"},
		{"Width trick: %*d", []any{5, 10}, "Width trick:    10"},
		{"%s", []any{"A string"}, "A string"},
	} {
		t.Run(tc.format, func(t *testing.T) {
			require.Equal(t, tc.want, sprintf(tc.format, tc.args...))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	require.Equal(t, "00042", sprintf("%05d", 42))
	require.Equal(t, "42   |", sprintf("%-5d|", 42))
	require.Equal(t, "+7", sprintf("%+d", 7))
	require.Equal(t, "0x64", sprintf("%#x", 100))
	require.Equal(t, "3.14", sprintf("%.2f", 3.14159))
	require.Equal(t, "A", sprintf("%c", 65))
}

func TestLiteralOnly(t *testing.T) {
	for _, s := range []string{"", "hello", "tab\tnew\nline", "\x01\x7f"} {
		require.Equal(t, s, sprintf(s))
	}
}

func TestIntegers(t *testing.T) {
	for _, tc := range []struct {
		format string
		arg    any
		want   string
	}{
		{"%d", -5, "-5"},
		{"%+d", -5, "-5"},
		{"% d", -5, "-5"},
		{"% d", 5, " 5"},
		{"%+ d", 5, "+5"},
		{"%i", 12, "12"},
		{"%-05d|", 42, "42   |"},
		{"%0-5d|", 42, "42   |"},
		{"%5.3d", 7, "  007"},
		{"%05.3d", 7, "  007"},
		{"%.0d", 0, ""},
		{"%5.0d|", 0, "     |"},
		{"% 05d", 7, " 0007"},
		{"%+05d", -7, "-0007"},
		{"%-+6d|", 7, "+7    |"},
		{"%u", -1, "4294967295"},
		{"%+u", 3, "3"},
		{"%lu", -1, "18446744073709551615"},
		{"%hhu", 257, "1"},
		{"%hhd", 255, "-1"},
		{"%hd", 40000, "-25536"},
		{"%d", int64(math.MaxUint32), "-1"},
		{"%ld", int64(math.MinInt64), "-9223372036854775808"},
		{"%lld", int64(math.MaxInt64), "9223372036854775807"},
		{"%zu", uint64(math.MaxUint64), "18446744073709551615"},
		{"%jd", -3, "-3"},
		{"%td", -4, "-4"},
		{"%x", 255, "ff"},
		{"%X", 255, "FF"},
		{"%#X", 255, "0XFF"},
		{"%#x", 0, "0"},
		{"%#08x", 255, "0x0000ff"},
		{"%#o", 8, "010"},
		{"%#o", 0, "0"},
		{"%#.0o", 0, "0"},
		{"%#5o", 8, "  010"},
		{"%o", 8, "10"},
		{"%Lu", 5, "5"},
	} {
		t.Run(tc.format, func(t *testing.T) {
			require.Equal(t, tc.want, sprintf(tc.format, tc.arg))
		})
	}
}

func TestFloats(t *testing.T) {
	for _, tc := range []struct {
		format string
		arg    float64
		want   string
	}{
		{"%f", 1.5, "1.500000"},
		{"%.0f", 2.5, "2"},
		{"%.0f", 3.5, "4"},
		{"%#.0f", 3, "3."},
		{"%10.4f|", -3.14159, "   -3.1416|"},
		{"%010.2f", -3.14159, "-000003.14"},
		{"%-10.2f|", 3.14159, "3.14      |"},
		{"%+.1f", 0, "+0.0"},
		{"% .1f", 1, " 1.0"},
		{"%f", math.Copysign(0, -1), "-0.000000"},
		{"%F", 1, "1.000000"},
		{"%e", 12345.678, "1.234568e+04"},
		{"%E", 0.000123, "1.230000E-04"},
		{"%.0e", 5, "5e+00"},
		{"%#.0e", 5, "5.e+00"},
		{"%g", 100000, "100000"},
		{"%g", 1e6, "1e+06"},
		{"%g", 0.0001, "0.0001"},
		{"%g", 0.00001, "1e-05"},
		{"%G", 1e-10, "1E-10"},
		{"%g", 3.14159, "3.14159"},
		{"%.3g", 3.14159, "3.14"},
		{"%.0g", 3.7, "4"},
		{"%g", 0, "0"},
		{"%g", 9.9999999, "10"},
		{"%#g", 1, "1.00000"},
		{"%#.1g", 10, "1.e+01"},
		{"%a", 1, "0x1p+0"},
		{"%a", 3, "0x1.8p+1"},
		{"%a", 0, "0x0p+0"},
		{"%a", -2, "-0x1p+1"},
		{"%A", 0.5, "0X1P-1"},
		{"%.2a", 1, "0x1.00p+0"},
		{"%#a", 1, "0x1.p+0"},
		{"%a", 1024, "0x1p+10"},
		{"%012a", 1, "0x0000001p+0"},
		{"%f", math.Inf(1), "inf"},
		{"%F", math.Inf(-1), "-INF"},
		{"%+e", math.Inf(1), "+inf"},
		{"%05f", math.NaN(), "  nan"},
		{"%G", math.NaN(), "NAN"},
		{"%Lf", 2.25, "2.250000"},
	} {
		t.Run(tc.format, func(t *testing.T) {
			require.Equal(t, tc.want, sprintf(tc.format, tc.arg))
		})
	}
}

func TestCharsAndStrings(t *testing.T) {
	require.Equal(t, "  x|", sprintf("%3c|", 'x'))
	require.Equal(t, "x  |", sprintf("%-3c|", 'x'))
	require.Equal(t, "  x", sprintf("%03c", 'x'))
	require.Equal(t, "A", sprintf("%c", 0x141))
	require.Equal(t, "A", sprintf("%lc", 65))
	require.Equal(t, "abc", sprintf("%.3s", "abcdef"))
	require.Equal(t, "ab      |", sprintf("%-8s|", "ab"))
	require.Equal(t, "  abc", sprintf("%5s", "abc"))
	require.Equal(t, "(null)", sprintf("%s", nil))
	require.Equal(t, "", sprintf("%.3s", nil))
	require.Equal(t, "\xff\x00z", sprintf("%s", []byte{0xff, 0, 'z'}))
}

func TestPointers(t *testing.T) {
	require.Equal(t, "0x1234", sprintf("%p", uintptr(0x1234)))
	require.Equal(t, "(nil)", sprintf("%p", nil))
	require.Equal(t, "      0x10", sprintf("%10p", uintptr(0x10)))
	require.Equal(t, "0x00000010", sprintf("%010p", uintptr(0x10)))
}

func TestStoreCharsIsInert(t *testing.T) {
	n := 7
	args := va.New(&n, 3)
	out := Sprintf([]byte("a%nb%d"), args)
	require.Equal(t, "ab3", string(out))
	require.Equal(t, 7, n)
	require.Equal(t, 0, args.Remaining())
}

func TestPercentLiteral(t *testing.T) {
	args := va.New(1)
	require.Equal(t, "100%", string(Sprintf([]byte("100%%"), args)))
	require.Equal(t, "%", string(Sprintf([]byte("%5%"), args)))
	require.Equal(t, "%", string(Sprintf([]byte("%-*%"), args)))
	require.Equal(t, 1, args.Remaining())
}

func TestDynamicWidth(t *testing.T) {
	require.Equal(t, "7   |", sprintf("%*d|", -4, 7))
	require.Equal(t, "1.500000", sprintf("%.*f", -1, 1.5))
	require.Equal(t, "  0012", sprintf("%*.*d", 6, 4, 12))
	require.Equal(t, "ab   |", sprintf("%-*s|", 5, "ab"))
}

func TestDynamicOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	args := mocks.NewMockCursor(ctrl)
	gomock.InOrder(
		args.EXPECT().Int(libcutils.Int).Return(int64(8)),
		args.EXPECT().Int(libcutils.Int).Return(int64(3)),
		args.EXPECT().Float(libcutils.Double).Return(3.14159),
	)
	require.Equal(t, "   3.142", string(Sprintf([]byte("%*.*f"), args)))
}

func TestArgumentKinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	args := mocks.NewMockCursor(ctrl)
	gomock.InOrder(
		args.EXPECT().Uint(libcutils.ULong).Return(uint64(9)),
		args.EXPECT().Int(libcutils.SChar).Return(int64(-2)),
		args.EXPECT().Uint(libcutils.Size).Return(uint64(10)),
		args.EXPECT().Float(libcutils.LongDouble).Return(0.5),
		args.EXPECT().CString().Return([]byte("s"), true),
		args.EXPECT().Int(libcutils.Int).Return(int64('c')),
		args.EXPECT().Pointer().Return(uintptr(0)),
	)
	out := Sprintf([]byte("%lu %hhd %zx %Lg %ls %c%n"), args)
	require.Equal(t, "9 -2 a 0.5 s c", string(out))
}

func TestMalformedStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nothing after the bad placeholder may read an argument.
	args := mocks.NewMockCursor(ctrl)
	args.EXPECT().Int(libcutils.Int).Return(int64(1)).Times(1)

	require.Equal(t, "a1b", string(Sprintf([]byte("a%db%q%dc"), args)))
	require.Equal(t, "ab", sprintf("ab%.d cd", 1))
	require.Equal(t, "x", sprintf("x%"))
}

type failWriter struct {
	after int
}

var errSink = errors.New("sink closed")

func (f *failWriter) Write(b []byte) (int, error) {
	if len(b) <= f.after {
		f.after -= len(b)
		return len(b), nil
	}
	n := f.after
	f.after = 0
	return n, errSink
}

func TestSinkError(t *testing.T) {
	n, err := Fprintf(&failWriter{}, []byte("hello %d"), va.New(1))
	require.ErrorIs(t, err, errSink)
	require.Equal(t, 0, n)

	n, err = Fprintf(&failWriter{after: 3}, []byte("hello"), va.New())
	require.ErrorIs(t, err, errSink)
	require.Equal(t, 3, n)
}

func TestInterpretCount(t *testing.T) {
	var sb strings.Builder
	n, err := Interpret(&sb, lex.Parse([]byte("%100d")), va.New(1))
	require.NoError(t, err)
	require.Equal(t, 100, n)
	require.Equal(t, strings.Repeat(" ", 99)+"1", sb.String())
}

func TestPrintfLossy(t *testing.T) {
	require.Equal(t, "�1", Printf([]byte("\xff%d"), va.New(1)))
	require.Equal(t, "plain", Printf([]byte("plain"), va.New()))
}
