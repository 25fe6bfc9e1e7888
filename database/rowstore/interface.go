package rowstore

import "context"

// Table names the three logical tables in the backing store.
type Table string

const (
	TableSlots  Table = "slots"
	TablePeople Table = "people"
	TableNotes  Table = "notes"
)

// Tables lists every logical table, in load order.
var Tables = []Table{TableSlots, TablePeople, TableNotes}

// RowStore exposes the only operations the backing store supports: reading
// a table whole, appending a row, and updating or deleting a row by its
// current position. There is no native lookup by key; the repository layer
// builds that on top by scanning.
//
// Implementations perform real I/O and must surface throttling responses as
// *models.PersistenceError with RateLimited set, never retry them.
type RowStore interface {
	ReadTable(ctx context.Context, table Table) ([][]string, error)
	AppendRow(ctx context.Context, table Table, row []string) error
	UpdateRow(ctx context.Context, table Table, index int, row []string) error
	DeleteRow(ctx context.Context, table Table, index int) error
}
