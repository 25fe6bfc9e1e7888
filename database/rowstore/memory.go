package rowstore

import (
	"context"
	"fmt"
	"sync"

	"slotboard/models"
)

// MemoryStore keeps the three tables in process memory. Used as the default
// store in development and as the substrate for tests.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[Table][][]string
}

func NewMemoryStore() *MemoryStore {
	tables := make(map[Table][][]string, len(Tables))
	for _, t := range Tables {
		tables[t] = nil
	}
	return &MemoryStore{tables: tables}
}

func (s *MemoryStore) ReadTable(ctx context.Context, table Table) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.tables[table]
	if !ok {
		return nil, &models.PersistenceError{Op: "read", Table: string(table), Err: fmt.Errorf("unknown table")}
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		cp := make([]string, len(r))
		copy(cp, r)
		out[i] = cp
	}
	return out, nil
}

func (s *MemoryStore) AppendRow(ctx context.Context, table Table, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[table]; !ok {
		return &models.PersistenceError{Op: "append", Table: string(table), Err: fmt.Errorf("unknown table")}
	}
	cp := make([]string, len(row))
	copy(cp, row)
	s.tables[table] = append(s.tables[table], cp)
	return nil
}

func (s *MemoryStore) UpdateRow(ctx context.Context, table Table, index int, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.tables[table]
	if !ok || index < 0 || index >= len(rows) {
		return &models.NotFoundError{Kind: "row", Key: fmt.Sprintf("%s[%d]", table, index)}
	}
	cp := make([]string, len(row))
	copy(cp, row)
	rows[index] = cp
	return nil
}

func (s *MemoryStore) DeleteRow(ctx context.Context, table Table, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.tables[table]
	if !ok || index < 0 || index >= len(rows) {
		return &models.NotFoundError{Kind: "row", Key: fmt.Sprintf("%s[%d]", table, index)}
	}
	s.tables[table] = append(rows[:index], rows[index+1:]...)
	return nil
}
