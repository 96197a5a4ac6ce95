package seeds

import (
	asrama "asramaku_backend/internals/seeds/asramas"
	user "asramaku_backend/internals/seeds/users"

	"gorm.io/gorm"
)

// RunAllSeeds dijalankan manual lewat InitSeederDB (bukan saat boot server).
func RunAllSeeds(db *gorm.DB) {
	asrama.SeedAsramasFromJSON(db, "internals/seeds/asramas/data_asramas.json")
	user.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
}
