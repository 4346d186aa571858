package testutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"
)

// MemBackend is an in-memory asset backend. Keys listed in FailRemove
// fail on Remove.
type MemBackend struct {
	mu         sync.Mutex
	Objects    map[string][]byte
	FailRemove map[string]bool
}

func NewMemBackend() *MemBackend {
	return &MemBackend{Objects: map[string][]byte{}, FailRemove: map[string]bool{}}
}

func (m *MemBackend) Write(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemBackend) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailRemove[key] {
		return errors.New("remove refused")
	}
	delete(m.Objects, key)
	return nil
}

func (m *MemBackend) Stat(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Objects[key]
	return ok, nil
}

func (m *MemBackend) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Objects[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Has reports whether key is stored
func (m *MemBackend) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Objects[key]
	return ok
}

// Len returns the number of stored objects
func (m *MemBackend) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}

// JPEG returns n bytes that sniff as image/jpeg.
func JPEG(n int) []byte {
	data := make([]byte, n)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	return data
}

// PNG returns n bytes that sniff as image/png.
func PNG(n int) []byte {
	data := make([]byte, n)
	copy(data, []byte("\x89PNG\r\n\x1a\n"))
	return data
}
