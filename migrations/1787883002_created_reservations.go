package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("reservations")

		collection.Fields.Add(
			&core.TextField{Name: "reservationId", Required: true},
			&core.TextField{Name: "userId", Required: true},
			&core.NumberField{Name: "tableNumber", OnlyInt: true, Required: true},
			&core.TextField{Name: "date", Required: true},
			&core.TextField{Name: "timeSlot", Required: true},
			&core.NumberField{Name: "guests", OnlyInt: true, Required: true},
			&core.TextField{Name: "location"},
			&core.TextField{Name: "segment"},
			&core.TextField{Name: "userName"},
			&core.TextField{Name: "userPhone"},
			&core.TextField{Name: "status"},
		)

		collection.AddIndex("idx_reservations_reservation_id", true, "reservationId", "")
		collection.AddIndex("idx_reservations_user_id", false, "userId", "")
		collection.AddIndex("idx_reservations_date_slot", false, "date, timeSlot", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("reservations")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
