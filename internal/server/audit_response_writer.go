package server

import (
	"bytes"
	"net/http"
)

// responseWriterWrapper records the status code and, up to a limit, the body.
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
	buffer     bytes.Buffer
	limit      int
}

func newResponseWriterWrapper(w http.ResponseWriter, limit int) *responseWriterWrapper {
	return &responseWriterWrapper{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
		limit:          limit,
	}
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(b []byte) (int, error) {
	if room := w.limit - w.buffer.Len(); room > 0 {
		w.buffer.Write(b[:min(room, len(b))])
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriterWrapper) StatusCode() int {
	return w.statusCode
}

func (w *responseWriterWrapper) Body() []byte {
	return w.buffer.Bytes()
}
