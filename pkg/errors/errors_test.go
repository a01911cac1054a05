package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingHandler struct {
	errors []*SwipeError
	panics []*PanicError
}

func (h *recordingHandler) HandleError(err *SwipeError) { h.errors = append(h.errors, err) }
func (h *recordingHandler) HandlePanic(err *PanicError) { h.panics = append(h.panics, err) }

func useRecorder(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	prev := SetHandler(h)
	t.Cleanup(func() { SetHandler(prev) })
	return h
}

func TestSwipeErrorString(t *testing.T) {
	err := &SwipeError{
		Op:   "icons.Rasterize",
		Kind: KindIcon,
		Key:  "star.fill",
		Err:  stderrors.New("bad path"),
	}
	want := "icons.Rasterize [icon] key=star.fill: bad path"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSwipeErrorUnwrap(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := Wrap("config.Load", KindConfig, sentinel)
	if !stderrors.Is(err, sentinel) {
		t.Error("wrapped error should match sentinel")
	}
	var swipeErr *SwipeError
	if !stderrors.As(err, &swipeErr) || swipeErr.Kind != KindConfig {
		t.Errorf("As() = %v", swipeErr)
	}
	if Wrap("noop", KindConfig, nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindRender, "render"},
		{KindIcon, "icon"},
		{KindInput, "input"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Op: "demo.frame", Value: "boom", Timestamp: time.Now()}
	if got, want := err.Error(), "panic in demo.frame: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	err.Op = ""
	if got, want := err.Error(), "panic: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestReport_SetsTimestamp(t *testing.T) {
	h := useRecorder(t)
	Report(&SwipeError{Op: "render.Rasterize", Kind: KindRender, Err: stderrors.New("x")})
	if len(h.errors) != 1 {
		t.Fatalf("got %d errors", len(h.errors))
	}
	if h.errors[0].Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
	Report(nil)
	if len(h.errors) != 1 {
		t.Error("nil report should be ignored")
	}
}

func TestRecover(t *testing.T) {
	h := useRecorder(t)
	func() {
		defer Recover("test.op")
		panic("kaboom")
	}()
	if len(h.panics) != 1 {
		t.Fatalf("got %d panics", len(h.panics))
	}
	p := h.panics[0]
	if p.Op != "test.op" || p.Value != "kaboom" {
		t.Errorf("panic = %+v", p)
	}
	if p.StackTrace == "" {
		t.Error("expected stack trace")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	useRecorder(t)
	var got any
	func() {
		defer RecoverWithCallback("test.op", func(r any) { got = r })
		panic(42)
	}()
	if got != 42 {
		t.Errorf("callback value = %v", got)
	}
}

func TestLogHandler_WritesStructuredEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	h := NewLogHandler(&logger)
	h.HandleError(&SwipeError{Op: "icons.Lookup", Kind: KindIcon, Key: "nope", Err: stderrors.New("unknown icon")})
	h.HandlePanic(&PanicError{Op: "demo.frame", Value: "boom"})

	out := buf.String()
	for _, want := range []string{`"op":"icons.Lookup"`, `"kind":"icon"`, `"key":"nope"`, `"error":"unknown icon"`, `"message":"swipe panic"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}
