package gojson

import (
	"errors"
	"testing"
)

// abortingHandler aborts as soon as it sees the first scalar, reporting
// a custom detail error through HandlerErr.
type abortingHandler struct {
	detail error
}

func (h *abortingHandler) OnDocumentBegin() bool     { return true }
func (h *abortingHandler) OnDocumentEnd() bool       { return true }
func (h *abortingHandler) OnObjectBegin() bool       { return true }
func (h *abortingHandler) OnObjectEnd(int) bool      { return true }
func (h *abortingHandler) OnArrayBegin() bool        { return true }
func (h *abortingHandler) OnArrayEnd(int) bool       { return true }
func (h *abortingHandler) OnKeyPart([]byte) bool     { return true }
func (h *abortingHandler) OnKey([]byte) bool         { return true }
func (h *abortingHandler) OnStringPart([]byte) bool  { return true }
func (h *abortingHandler) OnString([]byte) bool      { return false }
func (h *abortingHandler) OnInt64(int64) bool        { return false }
func (h *abortingHandler) OnUint64(uint64) bool      { return false }
func (h *abortingHandler) OnDouble(float64) bool     { return false }
func (h *abortingHandler) OnBool(bool) bool          { return false }
func (h *abortingHandler) OnNull() bool              { return false }
func (h *abortingHandler) HandlerErr() error         { return h.detail }

func TestHandlerAbortWrapsCustomDetail(t *testing.T) {
	wantDetail := errors.New("nope, not interested")
	h := &abortingHandler{detail: wantDetail}
	p := NewParser(h, Options{})
	_, err := p.Write([]byte(`42`), false)
	if err == nil {
		t.Fatal("expected an error from an aborting handler")
	}
	var ge *Error
	if !errors.As(err, &ge) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if ge.Kind != KindSyntax {
		t.Errorf("Kind = %v, want KindSyntax", ge.Kind)
	}
	if !errors.Is(err, wantDetail) {
		t.Error("errors.Is did not see the handler's own detail error")
	}
}

func TestHandlerAbortWithNilDetail(t *testing.T) {
	h := &abortingHandler{}
	p := NewParser(h, Options{})
	if _, err := p.Write([]byte(`true`), false); err == nil {
		t.Fatal("expected an error from an aborting handler")
	}
}
