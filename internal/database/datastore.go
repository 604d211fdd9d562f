package database

import (
	"context"
	"fmt"

	"github.com/keshon/datastore"
)

func init() {
	RegisterDriver("datastore", func(name string, spec Spec) (Handle, error) {
		if spec.Path == "" {
			return nil, fmt.Errorf("datastore section %s: path is required", name)
		}
		return &JSONStore{name: name, path: spec.Path}, nil
	})
}

// JSONStore is a keshon/datastore backed section: an auto-saving JSON file
// with an in-memory key/value view.
type JSONStore struct {
	name string
	path string
	ds   *datastore.DataStore
}

func (s *JSONStore) Name() string   { return s.name }
func (s *JSONStore) Driver() string { return "datastore" }

// Connect opens the backing file, creating it when missing.
func (s *JSONStore) Connect(ctx context.Context) error {
	ds, err := datastore.New(ctx, s.path)
	if err != nil {
		return fmt.Errorf("open datastore %s: %w", s.path, err)
	}
	s.ds = ds
	return nil
}

func (s *JSONStore) Close() error {
	if s.ds == nil {
		return nil
	}
	return s.ds.Close()
}

// Get decodes the value stored under key into dest and reports whether the
// key was present.
func (s *JSONStore) Get(key string, dest any) (bool, error) {
	if s.ds == nil {
		return false, fmt.Errorf("datastore %s is not connected", s.name)
	}
	return s.ds.Get(key, dest)
}

// Set stores a value under key.
func (s *JSONStore) Set(key string, value any) error {
	if s.ds == nil {
		return fmt.Errorf("datastore %s is not connected", s.name)
	}
	return s.ds.Set(key, value)
}

// Delete removes a key.
func (s *JSONStore) Delete(key string) error {
	if s.ds == nil {
		return fmt.Errorf("datastore %s is not connected", s.name)
	}
	return s.ds.Delete(key)
}
