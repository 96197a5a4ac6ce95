package model

import (
	"time"

	"github.com/google/uuid"
)

/*
  users = akun staf pengelola
  - Role: owner (lintas asrama), admin & staff (terikat 1 asrama)
  - Akun dibuat oleh admin/owner, bukan self-register
*/

type UserModel struct {
	UserID       uuid.UUID  `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	UserAsramaID *uuid.UUID `gorm:"column:user_asrama_id;type:uuid;index" json:"user_asrama_id"` // nil untuk owner

	UserName     string `gorm:"column:user_name;size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	UserEmail    string `gorm:"column:user_email;size:255;uniqueIndex;not null" json:"user_email" validate:"required,email"`
	UserPassword string `gorm:"column:user_password;not null" json:"-" validate:"required,min=8"`
	UserRole     string `gorm:"column:user_role;type:varchar(20);not null;default:'staff'" json:"user_role"`

	UserIsActive bool `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserCreatedAt time.Time  `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time  `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt *time.Time `gorm:"column:user_deleted_at;index" json:"user_deleted_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}
