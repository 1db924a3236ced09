// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

// Package pxweb implements a minimal client for the PxWeb statistics API
// exposed by ASKdata. It resolves table metadata, posts data queries, and
// decodes the two response shapes the API is known to return: JSON-stat
// cubes and classic key/value rows.
package pxweb
