// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosovotools/kasfetch/internal/pxweb"
)

const inspectTestMeta = `{
	"title": "External trade by months",
	"variables": [
		{"code": "Viti/muaji", "text": "Year/month", "values": ["2025M3", "2025M2", "2025M1"], "valueTexts": ["2025M3", "2025M2", "2025M1"], "time": true},
		{"code": "Variabla", "text": "Variables", "values": ["1", "3"], "valueTexts": ["Exports (FOB)", "Imports (CIF)"]}
	]
}`

const inspectTestCube = `{
	"id": ["Variabla", "Viti/muaji"],
	"size": [2, 2],
	"dimension": {
		"Variabla": {"category": {"index": {"1": 0, "3": 1}}},
		"Viti/muaji": {"category": {"index": {"2025M2": 0, "2025M3": 1}}}
	},
	"value": [100, 200, 300, 400]
}`

func TestInspectTrade(t *testing.T) {
	var postedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(inspectTestMeta))
		case http.MethodPost:
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			postedBody = body
			_, _ = w.Write([]byte(inspectTestCube))
		}
	}))
	defer server.Close()

	t.Setenv("KAS_API_BASES", server.URL)

	out := t.TempDir()
	buffer := new(bytes.Buffer)
	options := &inspectOptions{
		table:  "trade",
		out:    out,
		months: 2,
		lang:   "en",
		writer: buffer,
	}

	require.NoError(t, options.validate())
	require.NoError(t, options.execute(t.Context()))

	for _, name := range []string{"trade_monthly_meta.json", "trade_monthly_body.json", "trade_monthly_raw.json"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}

	// the posted query selects all indicator codes and the trailing months
	var request pxweb.DataRequest
	require.NoError(t, json.Unmarshal(postedBody, &request))
	require.Len(t, request.Query, 2)
	assert.Equal(t, "Variabla", request.Query[0].Code)
	assert.Equal(t, []string{"1", "3"}, request.Query[0].Selection.Values)
	assert.Equal(t, "Viti/muaji", request.Query[1].Code)
	assert.Equal(t, []string{"2025M2", "2025M3"}, request.Query[1].Selection.Values)
	assert.Equal(t, "JSON", request.Response.Format)

	output := buffer.String()
	assert.Contains(t, output, "== trade_monthly ==")
	assert.Contains(t, output, "time dim: Viti/muaji")
	assert.Contains(t, output, "total months in table: 3; picking 2")
	assert.Contains(t, output, "total raw values: 4")
}

func TestInspectPartnerQuery(t *testing.T) {
	t.Parallel()

	meta := &pxweb.Meta{
		Title: "Imports by partner country",
		Variables: []pxweb.Variable{
			{Code: "Viti/muaji", Text: "Year/month", Values: []string{"2025M1"}, ValueTexts: []string{"2025M1"}, Time: true},
			{
				Code:       "PartnerC",
				Text:       "Partner",
				Values:     []string{"AL", "DE", "RS", "MK", "TR", "US"},
				ValueTexts: []string{"Albania", "Germany", "Serbia", "North Macedonia", "Turkey", "United States"},
			},
			{
				Code:       "Njesia",
				Text:       "Unit",
				Values:     []string{"k", "m"},
				ValueTexts: []string{"(000 €)", "million euro"},
			},
		},
	}

	t.Run("explicit partners match codes and labels", func(t *testing.T) {
		t.Parallel()

		options := &inspectOptions{partners: []string{"AL", "germany"}, writer: io.Discard}
		query, err := options.partnerQuery(meta)
		require.NoError(t, err)
		require.Len(t, query, 2)
		assert.Equal(t, []string{"AL", "DE"}, query[0].Selection.Values)
		assert.Equal(t, "Njesia", query[1].Code)
		assert.Equal(t, []string{"k"}, query[1].Selection.Values)
	})

	t.Run("no partners defaults to a 5 code preview", func(t *testing.T) {
		t.Parallel()

		options := &inspectOptions{writer: io.Discard}
		query, err := options.partnerQuery(meta)
		require.NoError(t, err)
		assert.Equal(t, []string{"AL", "DE", "RS", "MK", "TR"}, query[0].Selection.Values)
	})

	t.Run("ALL selects every code", func(t *testing.T) {
		t.Parallel()

		options := &inspectOptions{partners: []string{"all"}, writer: io.Discard}
		query, err := options.partnerQuery(meta)
		require.NoError(t, err)
		assert.Len(t, query[0].Selection.Values, 6)
	})

	t.Run("no matches is an error", func(t *testing.T) {
		t.Parallel()

		options := &inspectOptions{partners: []string{"XX"}, writer: io.Discard}
		_, err := options.partnerQuery(meta)
		assert.ErrorIs(t, err, errNoPartnerMatch)
	})
}
