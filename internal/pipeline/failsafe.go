package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"

	"golang.org/x/text/encoding/charmap"
)

const (
	errorView        = "500"
	errorContentType = "text/html; charset=iso-8859-1"
)

// Renderer produces the markup of a named view. *view.Engine satisfies it.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// Failsafe answers with a generic 500 page when the handler it wraps fails,
// either by panicking or by returning an error from a HandlerFunc.
type Failsafe struct {
	renderer Renderer
	reporter atomic.Pointer[FailureReporter]
}

// FailsafeOption customises a Failsafe.
type FailsafeOption func(*Failsafe)

// WithReporter sets the reporter notified of failures.
func WithReporter(r FailureReporter) FailsafeOption {
	return func(f *Failsafe) {
		f.ReportErrorsTo(r)
	}
}

// NewFailsafe returns a Failsafe rendering its error page with renderer.
// Failures are ignored unless a reporter is configured.
func NewFailsafe(renderer Renderer, opts ...FailsafeOption) *Failsafe {
	f := &Failsafe{renderer: renderer}
	f.ReportErrorsTo(IgnoreFailures)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ReportErrorsTo replaces the failure reporter. It may be called while
// requests are in flight.
func (f *Failsafe) ReportErrorsTo(r FailureReporter) {
	if r == nil {
		r = IgnoreFailures
	}
	f.reporter.Store(&r)
}

// Wrap returns next guarded by the failsafe.
func (f *Failsafe) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buffered := newBufferedResponse(w)
		ctx, slot := withFailureSlot(r.Context())

		internalError := forward(next, buffered, r.WithContext(ctx), slot)
		if internalError == nil {
			_ = buffered.commit()
			return
		}

		f.reportInternalError(r.Context(), internalError)
		if err := f.failsafeResponse(internalError, buffered); err != nil {
			panic(fmt.Errorf("render error page: %w", err))
		}
	})
}

func forward(next http.Handler, w *bufferedResponse, r *http.Request, slot *failureSlot) (internalError error) {
	defer func() {
		if v := recover(); v != nil {
			if v == http.ErrAbortHandler {
				panic(v)
			}
			internalError = asError(v)
		}
	}()
	next.ServeHTTP(w, r)
	return slot.err
}

func asError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", v)
}

func (f *Failsafe) reportInternalError(ctx context.Context, err error) {
	(*f.reporter.Load()).InternalErrorOccurred(ctx, err)
}

func (f *Failsafe) failsafeResponse(internalError error, response *bufferedResponse) error {
	response.reset()
	body, err := f.renderer.Render(errorView, internalError)
	if err != nil {
		return err
	}
	payload := encodeLatin1(body)

	response.Header().Set("Content-Type", errorContentType)
	response.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	response.WriteHeader(http.StatusInternalServerError)
	_, _ = response.Write(payload)
	return response.commit()
}

// encodeLatin1 encodes s as ISO-8859-1, writing '?' for runes outside it.
func encodeLatin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

type failureKey struct{}

type failureSlot struct {
	err error
}

func withFailureSlot(ctx context.Context) (context.Context, *failureSlot) {
	slot := &failureSlot{}
	return context.WithValue(ctx, failureKey{}, slot), slot
}

// Fail hands err to the Failsafe enclosing the request. It reports whether
// a Failsafe received it. Only the first failure of a request is kept.
func Fail(r *http.Request, err error) bool {
	slot, ok := r.Context().Value(failureKey{}).(*failureSlot)
	if !ok {
		return false
	}
	if slot.err == nil {
		slot.err = err
	}
	return true
}

// HandlerFunc is a handler that can fail. A returned error is passed to the
// enclosing Failsafe, or answered with a bare 500 when there is none.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

func (h HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h(w, r); err != nil {
		if !Fail(r, err) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}
