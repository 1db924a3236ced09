// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

// Package dir implements a store that writes each dataset as a JSON file
// inside an output directory.
package dir

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/kosovotools/kasfetch/internal/logger"
	"github.com/kosovotools/kasfetch/internal/store"
)

const logName = "kasfetch:store:dir"

var _ store.Store = &dirStore{}

type dirStore struct {
	root string
}

// NewStore returns a store that writes <name>.json files inside root,
// creating the directory on first use.
func NewStore(root string) store.Store {
	return &dirStore{root: root}
}

func (d *dirStore) WriteDataset(ctx context.Context, name string, payload any) error {
	log := logger.FromContext(ctx).WithName(logName)

	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return err
	}

	buffer := new(bytes.Buffer)
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	path := filepath.Join(d.root, name+".json")
	if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
		return err
	}

	log.Info("wrote dataset", "path", path)
	return nil
}
