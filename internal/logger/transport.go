// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package logger

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	requestIDHeaderName = "x-request-id"

	outgoingRequestMessage  = "outgoing request"
	requestCompletedMessage = "request completed"
)

// httpLog is the struct of the request log formatter.
type httpLog struct {
	Request  *requestLog  `json:"request,omitempty"`
	Response *responseLog `json:"response,omitempty"`
}

// requestLog contains the items of the request info log.
type requestLog struct {
	Method string `json:"method,omitempty"`
	Host   string `json:"host,omitempty"`
	Path   string `json:"path,omitempty"`
}

// responseLog contains the items of the response info log.
type responseLog struct {
	StatusCode int `json:"statusCode,omitempty"`
}

// loggingTransport wraps an http.RoundTripper and logs every outgoing
// request together with its response status and latency.
type loggingTransport struct {
	next http.RoundTripper
}

// NewTransport returns an http.RoundTripper that logs requests flowing
// through next using the logger found in the request context. Every request
// is tagged with a generated x-request-id header when one is not set.
func NewTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &loggingTransport{next: next}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := req.Header.Get(requestIDHeaderName)
	if requestID == "" {
		requestID = newRequestID()
		req.Header.Set(requestIDHeaderName, requestID)
	}

	log := FromContext(req.Context()).WithName("request").WithName(requestID)

	request := &requestLog{
		Method: req.Method,
		Host:   req.URL.Host,
		Path:   req.URL.Path,
	}
	log.Trace(outgoingRequestMessage, "http", httpLog{Request: request})

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		log.Debug(requestCompletedMessage, "http", httpLog{Request: request}, "error", err.Error())
		return resp, err
	}

	log.Debug(requestCompletedMessage,
		"http", httpLog{
			Request:  request,
			Response: &responseLog{StatusCode: resp.StatusCode},
		},
		"responseTime", float64(time.Since(start).Milliseconds()),
	)

	return resp, err
}

// newRequestID generates a random uuid string. e.g. 16c9c1f2-c001-40d3-bbfe-48857367e7b5
func newRequestID() string {
	requestID, err := uuid.NewRandom()
	if err != nil {
		panic(fmt.Errorf("error generating request id: %w", err))
	}
	return requestID.String()
}
