package readstore

import (
	"context"

	"bistro-reserve/internal/domain/table"
	"bistro-reserve/internal/infra"
	"bistro-reserve/internal/infra/db"
)

// TableReadStore exposes the fixed table registry. Tables are seed data;
// ordering follows insertion order for stable display.
type TableReadStore struct {
	db db.DBTX
}

func NewTableReadStore(dbtx db.DBTX) *TableReadStore {
	return &TableReadStore{db: dbtx}
}

func (s *TableReadStore) ListAll(ctx context.Context) ([]table.Table, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, seq
		FROM tables
		ORDER BY seq`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tables", err)
	}
	defer rows.Close()

	var tables []table.Table
	for rows.Next() {
		var t table.Table
		if err := rows.Scan(&t.ID, &t.Seq); err != nil {
			return nil, infra.WrapRepoErr("failed to scan table", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read tables", err)
	}

	return tables, nil
}
