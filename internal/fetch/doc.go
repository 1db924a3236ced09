// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

// Package fetch turns PxWeb tables into tidy per-period datasets. Each
// fetcher resolves the table metadata, locates the dimensions it needs by
// matching display texts across language variants, posts a data query, and
// flattens the returned cube into flat records before handing them to the
// configured store.
package fetch
