// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package logger

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextRoundtrip(t *testing.T) {
	t.Parallel()

	log := NewLogger(os.Stderr)
	ctx := WithContext(context.Background(), log)
	assert.Equal(t, log, FromContext(ctx))
}

func TestContextFallbacks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, nullLogger, FromContext(context.Background()))
	assert.Equal(t, nullLogger, FromContext(nil)) //nolint:staticcheck
}
