// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package fetch

import (
	"context"
	"strings"

	"github.com/kosovotools/kasfetch/internal/pxweb"
)

// fakeClient serves canned metadata and cubes keyed by the joined table path
// and records the last posted query per table.
type fakeClient struct {
	metas map[string]*pxweb.Meta
	cubes map[string]*pxweb.Cube

	metaErrs map[string]error
	dataErrs map[string]error

	lastQueries map[string][]pxweb.QueryItem
	lastLang    string
}

var _ Client = &fakeClient{}

func newFakeClient() *fakeClient {
	return &fakeClient{
		metas:       make(map[string]*pxweb.Meta),
		cubes:       make(map[string]*pxweb.Cube),
		metaErrs:    make(map[string]error),
		dataErrs:    make(map[string]error),
		lastQueries: make(map[string][]pxweb.QueryItem),
	}
}

func (f *fakeClient) Bases() []string {
	return []string{"https://askdata.example/api/v1"}
}

func (f *fakeClient) GetMeta(_ context.Context, parts []string, lang string) (*pxweb.Meta, error) {
	f.lastLang = lang
	key := strings.Join(parts, "/")
	if err := f.metaErrs[key]; err != nil {
		return nil, err
	}

	return f.metas[key], nil
}

func (f *fakeClient) PostData(_ context.Context, parts []string, query []pxweb.QueryItem, lang string) (*pxweb.Cube, error) {
	f.lastLang = lang
	key := strings.Join(parts, "/")
	f.lastQueries[key] = query
	if err := f.dataErrs[key]; err != nil {
		return nil, err
	}

	return f.cubes[key], nil
}

// monthsMeta builds a time dimension listing the given codes newest first,
// the way ASKdata tables do.
func monthsMeta(code, text string, months ...string) pxweb.Variable {
	reversed := make([]string, len(months))
	for i, month := range months {
		reversed[len(months)-1-i] = month
	}

	return pxweb.Variable{
		Code:       code,
		Text:       text,
		Values:     reversed,
		ValueTexts: reversed,
		Time:       true,
	}
}

// classicCubeFor builds a classic rows cube over two dimensions, filling each
// cell from values keyed as "<first>|<second>".
func classicCubeFor(firstDim, secondDim string, firstCodes, secondCodes []string, values map[string]any) *pxweb.Cube {
	cube := &pxweb.Cube{
		Columns: []pxweb.Column{
			{Code: firstDim, Type: "d"},
			{Code: secondDim, Type: "t"},
			{Code: "value", Type: "c"},
		},
	}

	for _, first := range firstCodes {
		for _, second := range secondCodes {
			value, ok := values[first+"|"+second]
			if !ok {
				continue
			}
			cube.Data = append(cube.Data, pxweb.Row{
				Key:    []string{first, second},
				Values: []any{value},
			})
		}
	}

	return cube
}
