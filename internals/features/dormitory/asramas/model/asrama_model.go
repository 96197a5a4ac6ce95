// file: internals/features/dormitory/asramas/model/asrama_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

/*
  asramas = lokasi asrama (tenant)
  - Semua entitas lain (student, user, meal_transaction, dst.) milik tepat 1 asrama
*/

type AsramaModel struct {
	AsramaID   uuid.UUID `gorm:"column:asrama_id;type:uuid;default:gen_random_uuid();primaryKey" json:"asrama_id"`
	AsramaName string    `gorm:"column:asrama_name;not null" json:"asrama_name"`
	AsramaSlug string    `gorm:"column:asrama_slug;uniqueIndex;not null" json:"asrama_slug"`

	AsramaAddress  *string        `gorm:"column:asrama_address" json:"asrama_address"`
	AsramaCity     *string        `gorm:"column:asrama_city" json:"asrama_city"`
	AsramaTimezone string         `gorm:"column:asrama_timezone;not null;default:'Asia/Jakarta'" json:"asrama_timezone"`
	AsramaFacilities pq.StringArray `gorm:"column:asrama_facilities;type:text[]" json:"asrama_facilities"`

	AsramaIsActive bool `gorm:"column:asrama_is_active;not null;default:true" json:"asrama_is_active"`

	AsramaCreatedAt time.Time  `gorm:"column:asrama_created_at;not null;default:now()" json:"asrama_created_at"`
	AsramaUpdatedAt time.Time  `gorm:"column:asrama_updated_at;not null;default:now()" json:"asrama_updated_at"`
	AsramaDeletedAt *time.Time `gorm:"column:asrama_deleted_at;index" json:"asrama_deleted_at"`
}

func (AsramaModel) TableName() string {
	return "asramas"
}
