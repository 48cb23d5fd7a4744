package stores

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"restaurant-system/models"
)

const tableCollection = "tables"

// TableStore reads the static dining-room inventory seeded by migration.
type TableStore interface {
	All() ([]*models.Table, error)
}

type pbTableStore struct {
	app core.App
}

func NewTableStore(app core.App) TableStore {
	return &pbTableStore{app: app}
}

func (s *pbTableStore) All() ([]*models.Table, error) {
	records, err := s.app.FindRecordsByFilter(tableCollection, "tableId != ''", "tableId", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	tables := make([]*models.Table, 0, len(records))
	for _, record := range records {
		tables = append(tables, &models.Table{
			TableID:  record.GetString("tableId"),
			Name:     record.GetString("tableName"),
			Location: record.GetString("location"),
			Segment:  record.GetString("segment"),
			Capacity: record.GetInt("capacity"),
		})
	}
	return tables, nil
}
