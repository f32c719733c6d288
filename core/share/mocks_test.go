package share

import (
	"context"
	"iter"
	"sync"

	coreerrors "shoplist-api/core/errors"
	"shoplist-api/core/interfaces"
)

// mockStore is a mock implementation of the Store interface
type mockStore struct {
	getFunc         func(ctx context.Context, key string) ([]byte, error)
	setFunc         func(ctx context.Context, key string, value []byte) error
	setIfAbsentFunc func(ctx context.Context, key string, value []byte) (bool, error)
	deleteFunc      func(ctx context.Context, key string) error
	scanFunc        func(ctx context.Context, prefix string) iter.Seq2[interfaces.Entry, error]
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, coreerrors.ErrKeyNotFound
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value)
	}
	return nil
}

func (m *mockStore) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	if m.setIfAbsentFunc != nil {
		return m.setIfAbsentFunc(ctx, key, value)
	}
	return true, nil
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return nil
}

func (m *mockStore) Scan(ctx context.Context, prefix string) iter.Seq2[interfaces.Entry, error] {
	if m.scanFunc != nil {
		return m.scanFunc(ctx, prefix)
	}
	return func(yield func(interfaces.Entry, error) bool) {}
}

// recordingLogger keeps every message for assertions
type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+": "+msg)
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.record("debug", msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.record("info", msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.record("warn", msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.record("error", msg) }

func (l *recordingLogger) has(entry string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e == entry {
			return true
		}
	}
	return false
}
