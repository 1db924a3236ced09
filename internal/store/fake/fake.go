// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

// Package fake provides an in-memory store implementation for tests.
package fake

import (
	"context"
	"testing"

	"github.com/kosovotools/kasfetch/internal/store"
)

var _ store.Store = &FakeStore{}

type FakeStore struct {
	tb testing.TB

	Datasets map[string]any
	Order    []string
	Err      error
}

func NewFakeStore(tb testing.TB) *FakeStore {
	tb.Helper()
	return &FakeStore{
		tb:       tb,
		Datasets: make(map[string]any),
	}
}

func (f *FakeStore) WriteDataset(_ context.Context, name string, payload any) error {
	f.tb.Helper()
	if f.Err != nil {
		return f.Err
	}

	f.Datasets[name] = payload
	f.Order = append(f.Order, name)
	return nil
}
