// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package store

import "context"

// Store persists a named dataset payload, overwriting any previous version.
type Store interface {
	WriteDataset(ctx context.Context, name string, payload any) error
}

// multiStore fans every dataset out to all wrapped stores.
type multiStore struct {
	stores []Store
}

// Multi returns a store that writes each dataset to every given store in
// order, stopping at the first failure.
func Multi(stores ...Store) Store {
	return &multiStore{stores: stores}
}

func (m *multiStore) WriteDataset(ctx context.Context, name string, payload any) error {
	for _, store := range m.stores {
		if err := store.WriteDataset(ctx, name, payload); err != nil {
			return err
		}
	}

	return nil
}
