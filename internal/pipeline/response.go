package pipeline

import (
	"bytes"
	"net/http"
)

// bufferedResponse holds a downstream response until it is either committed
// to the client or discarded.
type bufferedResponse struct {
	dst    http.ResponseWriter
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedResponse(dst http.ResponseWriter) *bufferedResponse {
	return &bufferedResponse{dst: dst, header: make(http.Header)}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// Status returns the status written so far, or 200 if none was.
func (b *bufferedResponse) Status() int {
	if b.status == 0 {
		return http.StatusOK
	}
	return b.status
}

// reset discards everything written downstream.
func (b *bufferedResponse) reset() {
	b.header = make(http.Header)
	b.status = 0
	b.body.Reset()
}

// commit copies the buffered response to the client.
func (b *bufferedResponse) commit() error {
	dst := b.dst.Header()
	for k, v := range b.header {
		dst[k] = v
	}
	b.dst.WriteHeader(b.Status())
	_, err := b.dst.Write(b.body.Bytes())
	return err
}
