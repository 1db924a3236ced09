// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportLogsRequests(t *testing.T) {
	t.Parallel()

	var receivedRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedRequestID = r.Header.Get(requestIDHeaderName)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	buffer := new(bytes.Buffer)
	log := NewLogger(buffer)
	log.SetLevel(DEBUG)

	client := &http.Client{Transport: NewTransport(nil)}

	req, err := http.NewRequestWithContext(WithContext(t.Context(), log), http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotEmpty(t, receivedRequestID)
	assert.Contains(t, buffer.String(), requestCompletedMessage)
	assert.Contains(t, buffer.String(), receivedRequestID)
}

func TestTransportKeepsExistingRequestID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fixed-id", r.Header.Get(requestIDHeaderName))
	}))
	defer server.Close()

	client := &http.Client{Transport: NewTransport(nil)}

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeaderName, "fixed-id")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.False(t, strings.Contains(resp.Status, "error"))
}
