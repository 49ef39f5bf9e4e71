package khitex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/khilang/khi/pkg/khi"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, in string) khi.Value {
	t.Helper()
	v, perr := khi.ParseValueString(in)
	if perr != nil {
		t.Fatalf("ParseValueString(%q): unexpected error: %v", in, perr)
	}
	return v
}

func checkWrite(t *testing.T, in, want string) {
	t.Helper()
	v := mustParse(t, in)
	got, err := Write(v)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Write(%q) mismatch (-want +got):\n%s", in, diff)
	}
}

func TestWritePlainText(t *testing.T) {
	checkWrite(t, "hello", "\nhello")
}

func TestWriteCommandNoArgs(t *testing.T) {
	checkWrite(t, "<section>", "\n\\section")
}

func TestWriteCommandOneArg(t *testing.T) {
	checkWrite(t, "<section>:Introduction", "\n\\section{Introduction}")
}

func TestWriteCommandOptionalArg(t *testing.T) {
	checkWrite(t, "<section>:*:short:Introduction", "\n\\section[short]{Introduction}")
}

func TestWriteCommandEmptyArg(t *testing.T) {
	// The parser has no bare "::" empty-argument syntax: an explicit "{}"
	// reaches the writer as a Nil argument instead (see parse.go's
	// parseTagFormAArgs, which requires a colon before every argument).
	checkWrite(t, "<frac>:{}:2", "\n\\frac{}{2}")
}

func TestWriteNoOpAnnotation(t *testing.T) {
	checkWrite(t, "<@note>:ignored", "")
}

func TestWriteInlineMath(t *testing.T) {
	checkWrite(t, "<$>:x", "$\nx$")
}

func TestWriteLineBreak(t *testing.T) {
	checkWrite(t, `<\\>`, "\n\\\\")
}

func TestWriteNestedCommandArgument(t *testing.T) {
	// The "<>:" precedence escape hands the rest of the argument position
	// to a single chained tag, so emph's sole argument is the full
	// textbf tag (with its own body), not a bare header.
	checkWrite(t, "<emph>:<>:<textbf:>bold</>", "\n\\emph{\n \\textbf{bold}}")
}

func TestWriteBareNestedTagArgument(t *testing.T) {
	// A bare "<name>" inside a Form-A argument position is parsed as a
	// header-only tag (no body), a distinct argument from any text that
	// follows it.
	checkWrite(t, "<emph>:<textbf>:bold", "\n\\emph{\n \\textbf}{bold}")
}

func TestWriteErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		in   string
		kind ErrorKind
	}{
		{"list top level", "[a;b]", ErrIllegalSequence},
		{"dictionary top level", "{a:1}", ErrIllegalDictionary},
		{"list as arg", "<cmd>:[a;b]", ErrIllegalSequence},
		{"missing math argument", "<$>", ErrMissingArgument},
	} {
		t.Run(tt.name, func(t *testing.T) {
			v := mustParse(t, tt.in)
			_, err := Write(v)
			require.Error(t, err)
			terr, ok := err.(*Error)
			require.True(t, ok, "error type %T, want *Error", err)
			require.Equal(t, tt.kind, terr.Kind)
		})
	}
}
