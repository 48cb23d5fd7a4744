package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("reservation_waiting_queue")

		collection.Fields.Add(
			&core.TextField{Name: "queueId", Required: true},
			&core.TextField{Name: "userId", Required: true},
			&core.TextField{Name: "date", Required: true},
			&core.TextField{Name: "timeSlot", Required: true},
			&core.NumberField{Name: "guests", OnlyInt: true, Required: true},
			&core.NumberField{Name: "position", OnlyInt: true},
			&core.TextField{Name: "estimatedWait"},
		)

		collection.AddIndex("idx_waiting_queue_id", true, "queueId", "")
		collection.AddIndex("idx_waiting_date_slot", false, "date, timeSlot", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("reservation_waiting_queue")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
