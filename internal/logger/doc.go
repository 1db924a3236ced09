// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

// Package logger wraps the underlying logging stack behind a consistent interface.
// It centralizes configuration and makes loggers available through context helpers.
package logger
