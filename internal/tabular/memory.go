package tabular

import (
	"context"
	"sync"
)

// MemoryStore keeps sheets in process memory. It backs local runs without a
// database and the tests of everything built on top of the adapter.
type MemoryStore struct {
	mu     sync.RWMutex
	sheets map[string]*Sheet
}

func NewMemoryStore(sheets ...*Sheet) *MemoryStore {
	m := &MemoryStore{sheets: make(map[string]*Sheet, len(sheets))}
	for _, s := range sheets {
		m.sheets[s.Name] = cloneSheet(s)
	}
	return m
}

// EnsureSheet creates an empty sheet with the given header unless it already exists.
func (m *MemoryStore) EnsureSheet(_ context.Context, name string, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sheets[name]; !ok {
		m.sheets[name] = &Sheet{Name: name, Header: append([]string(nil), header...)}
	}
	return nil
}

func (m *MemoryStore) ReadSheet(_ context.Context, name string) (*Sheet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sheets[name]
	if !ok {
		return nil, ErrSheetNotFound
	}
	return cloneSheet(s), nil
}

func (m *MemoryStore) AppendRow(_ context.Context, name string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sheets[name]
	if !ok {
		return ErrSheetNotFound
	}
	row := make([]string, len(s.Header))
	copy(row, values)
	s.Rows = append(s.Rows, row)
	return nil
}

func (m *MemoryStore) UpdateCell(_ context.Context, name string, rowNumber, column int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sheets[name]
	if !ok {
		return ErrSheetNotFound
	}
	i := rowNumber - firstDataRow
	if i < 0 || i >= len(s.Rows) {
		return ErrRowNotFound
	}
	if column < 0 || column >= len(s.Header) {
		return ErrUnknownColumn
	}
	for len(s.Rows[i]) <= column {
		s.Rows[i] = append(s.Rows[i], "")
	}
	s.Rows[i][column] = value
	return nil
}

func cloneSheet(s *Sheet) *Sheet {
	out := &Sheet{
		Name:   s.Name,
		Header: append([]string(nil), s.Header...),
		Rows:   make([][]string, len(s.Rows)),
	}
	for i, r := range s.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}
