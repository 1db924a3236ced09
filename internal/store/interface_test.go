// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package store_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosovotools/kasfetch/internal/store"
	"github.com/kosovotools/kasfetch/internal/store/fake"
)

func TestMultiStore(t *testing.T) {
	t.Parallel()

	first := fake.NewFakeStore(t)
	second := fake.NewFakeStore(t)
	multi := store.Multi(first, second)

	require.NoError(t, multi.WriteDataset(t.Context(), "dataset", []int{1, 2, 3}))

	assert.Equal(t, []int{1, 2, 3}, first.Datasets["dataset"])
	assert.Equal(t, []int{1, 2, 3}, second.Datasets["dataset"])
}

func TestMultiStoreStopsOnError(t *testing.T) {
	t.Parallel()

	failure := errors.New("disk full")
	first := fake.NewFakeStore(t)
	first.Err = failure
	second := fake.NewFakeStore(t)

	multi := store.Multi(first, second)

	assert.ErrorIs(t, multi.WriteDataset(t.Context(), "dataset", "payload"), failure)
	assert.Empty(t, second.Datasets)
}
