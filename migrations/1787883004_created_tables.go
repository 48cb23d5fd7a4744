package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

// Static dining-room inventory. Table numbers 1..12 used by reservation
// auto-assignment map to tableId T001..T012.
var seedTables = []struct {
	id       string
	name     string
	location string
	segment  string
	capacity int
}{
	{"T001", "VIP Table 1", "VIP Hall", "Front", 4},
	{"T002", "VIP Table 2", "VIP Hall", "Middle", 6},
	{"T003", "VIP Table 3", "VIP Hall", "Back", 8},
	{"T004", "AC Table 1", "AC Hall", "Front", 4},
	{"T005", "AC Table 2", "AC Hall", "Middle", 4},
	{"T006", "AC Table 3", "AC Hall", "Middle", 6},
	{"T007", "AC Table 4", "AC Hall", "Back", 2},
	{"T008", "Main Table 1", "Main Hall", "Front", 4},
	{"T009", "Main Table 2", "Main Hall", "Front", 6},
	{"T010", "Main Table 3", "Main Hall", "Middle", 8},
	{"T011", "Main Table 4", "Main Hall", "Back", 2},
	{"T012", "Main Table 5", "Main Hall", "Back", 4},
}

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("tables")

		collection.Fields.Add(
			&core.TextField{Name: "tableId", Required: true},
			&core.TextField{Name: "tableName", Required: true},
			&core.SelectField{Name: "location", Values: []string{"VIP Hall", "AC Hall", "Main Hall"}, MaxSelect: 1},
			&core.SelectField{Name: "segment", Values: []string{"Front", "Middle", "Back"}, MaxSelect: 1},
			&core.NumberField{Name: "capacity", OnlyInt: true, Required: true},
		)

		collection.AddIndex("idx_tables_table_id", true, "tableId", "")

		if err := app.Save(collection); err != nil {
			return err
		}

		for _, t := range seedTables {
			record := core.NewRecord(collection)
			record.Set("tableId", t.id)
			record.Set("tableName", t.name)
			record.Set("location", t.location)
			record.Set("segment", t.segment)
			record.Set("capacity", t.capacity)
			if err := app.Save(record); err != nil {
				return err
			}
		}
		return nil
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("tables")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
