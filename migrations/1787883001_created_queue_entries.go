package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("queue_entries")

		collection.Fields.Add(
			&core.TextField{Name: "entryId", Required: true},
			&core.TextField{Name: "userId"},
			&core.TextField{Name: "name", Required: true},
			&core.NumberField{Name: "guests", OnlyInt: true, Required: true},
			&core.SelectField{Name: "notificationMethod", Values: []string{"sms", "email"}, MaxSelect: 1},
			&core.TextField{Name: "contact", Required: true},
			&core.SelectField{Name: "hall", Values: []string{"AC", "Main", "VIP", "Any"}, MaxSelect: 1},
			&core.SelectField{Name: "segment", Values: []string{"Front", "Middle", "Back", "Any"}, MaxSelect: 1},
			&core.NumberField{Name: "position", OnlyInt: true},
			&core.NumberField{Name: "estimatedWaitMinutes"},
			&core.DateField{Name: "joinedAt"},
			&core.TextField{Name: "queueDate", Required: true},
			&core.TextField{Name: "timeSlot", Required: true},
			&core.TextField{Name: "timeSlotDisplay"},
			&core.BoolField{Name: "notifiedAt15Min"},
			&core.BoolField{Name: "tableAvailable"},
			&core.DateField{Name: "notificationExpiresAt"},
			&core.BoolField{Name: "fromReservationCancellation"},
		)

		collection.AddIndex("idx_queue_entries_entry_id", true, "entryId", "")
		collection.AddIndex("idx_queue_entries_user_id", false, "userId", "")
		collection.AddIndex("idx_queue_entries_queue_date", false, "queueDate", "")
		collection.AddIndex("idx_queue_entries_cohort", false, "queueDate, timeSlot, guests, hall, segment", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("queue_entries")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
