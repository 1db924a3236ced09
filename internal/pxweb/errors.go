// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package pxweb

import "errors"

var (
	// ErrConfiguration reports invalid client configuration values.
	ErrConfiguration = errors.New("pxweb configuration not valid")

	// ErrRequestFailed reports that every configured API base refused a request.
	ErrRequestFailed = errors.New("pxweb request failed")

	// ErrUnexpectedFormat reports a response body that matches neither the
	// JSON-stat nor the classic rows shape.
	ErrUnexpectedFormat = errors.New("unexpected pxweb response format")
)
