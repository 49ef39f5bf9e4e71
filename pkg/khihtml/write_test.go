package khihtml

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

func TestWriteText(t *testing.T) {
	checkWrite(t, "hello world", "hello world")
}

func TestWriteSimpleTag(t *testing.T) {
	checkWrite(t, `<p>:hello`, "<p>hello</p>")
}

func TestWriteSelfClosingTag(t *testing.T) {
	checkWrite(t, `<br>`, "<br>")
}

func TestWriteAttributes(t *testing.T) {
	checkWrite(t, `<a href:index.html>:home`, `<a href="index.html">home</a>`)
}

func TestWriteFlagAttribute(t *testing.T) {
	checkWrite(t, `<input disabled>`, "<input disabled>")
}

func TestWriteNestedTags(t *testing.T) {
	// The "<>:" precedence escape hands the argument position to a single
	// chained tag, so div's sole argument is the full span tag with its
	// own body.
	checkWrite(t, `<div>:<>:<span:>text</>`, "<div><span>text</span></div>")
}

func TestWriteBareNestedTagHeaderArgumentTooMany(t *testing.T) {
	// A bare "<name>" inside a Form-A argument position is a header-only
	// tag (no body): a second, separate argument from any text after it,
	// which HTML has no room for since an element has exactly one body.
	v := mustParse(t, `<div>:<span>:text`)
	_, err := Write(v)
	require.Error(t, err)
	herr, ok := err.(*Error)
	require.True(t, ok, "error type %T, want *Error", err)
	require.Equal(t, ErrTooManyArguments, herr.Kind)
}

func TestWriteDictionaryAsElements(t *testing.T) {
	checkWrite(t, `{ title: hi; body: bye }`, "<title>hi</title><body>bye</body>")
}

func TestWriteCompoundWhitespace(t *testing.T) {
	checkWrite(t, `hello <b>:world`, "hello <b>world</b>")
}

func TestWriteDoctypeMacro(t *testing.T) {
	checkWrite(t, `<doctype!>:html`, "<!DOCTYPE html>")
}

func TestWriteRawMacro(t *testing.T) {
	checkWrite(t, `<raw!>:"<b>not escaped</b>"`, "<b>not escaped</b>")
}

func TestWriteErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		in   string
		kind ErrorKind
	}{
		{"list", `[a;b;c]`, ErrIllegalTable},
		{"too many args", `<p>:a:b`, ErrTooManyArguments},
		{"list attribute value", `<p attr:[a;b]>`, ErrIllegalAttributeValue},
		{"unknown macro", `<foo!>`, ErrMacroError},
	} {
		t.Run(tt.name, func(t *testing.T) {
			v := mustParse(t, tt.in)
			_, err := Write(v)
			require.Error(t, err)
			herr, ok := err.(*Error)
			require.True(t, ok, "error type %T, want *Error", err)
			require.Equal(t, tt.kind, herr.Kind)
		})
	}
}

func TestWriteSoftWrap(t *testing.T) {
	// newline threshold is 60 by default; a short line never wraps.
	checkWrite(t, "one two three four", "one two three four")
}
