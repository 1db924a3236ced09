// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package fetch

import "errors"

var (
	// ErrMissingDimension reports a table without a dimension a fetcher needs.
	ErrMissingDimension = errors.New("missing table dimension")

	// ErrMissingIndicator reports that no value code matched the wanted indicator.
	ErrMissingIndicator = errors.New("indicator not found")
)
