// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/creditx/internal/models"
)

// FakeLocator is a test double for name-to-identifier resolution.
type FakeLocator struct {
	IDs   map[string]string
	Err   error // returned when a name is missing (nil yields a plain error)
	Calls []string
}

func (f *FakeLocator) Locate(ctx context.Context, name string) (string, error) {
	f.Calls = append(f.Calls, name)
	if id, ok := f.IDs[name]; ok {
		return id, nil
	}
	if f.Err != nil {
		return "", f.Err
	}
	return "", errors.New("not found")
}

// FakeLookup is a test double for remote relationship lookups.
type FakeLookup struct {
	Relations map[string][]models.Relationship
	Err       error
	Calls     []string
}

func (f *FakeLookup) Relationships(ctx context.Context, mbid string) ([]models.Relationship, error) {
	f.Calls = append(f.Calls, mbid)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Relations[mbid], nil
}

// MemorySettings is an in-memory key-value settings store.
type MemorySettings struct {
	mu     sync.Mutex
	values map[string]string
	Err    error
}

func NewMemorySettings(kv map[string]string) *MemorySettings {
	values := make(map[string]string, len(kv))
	for k, v := range kv {
		values[k] = v
	}
	return &MemorySettings{values: values}
}

func (m *MemorySettings) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", false, m.Err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemorySettings) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
