// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

// Package store defines where fetched datasets end up. The dir store writes
// one pretty-printed JSON file per dataset, the sqlite store keeps every
// dataset in a single database file, and fake provides an in-memory
// implementation for tests.
package store
