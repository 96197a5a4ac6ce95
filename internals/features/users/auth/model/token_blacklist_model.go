package model

import (
	"time"
)

type TokenBlacklistModel struct {
	TokenBlacklistID        uint       `gorm:"column:token_blacklist_id;primaryKey" json:"token_blacklist_id"`
	TokenBlacklistToken     string     `gorm:"column:token_blacklist_token;type:text;not null;unique" json:"token_blacklist_token"`
	TokenBlacklistExpiredAt time.Time  `gorm:"column:token_blacklist_expired_at" json:"token_blacklist_expired_at"`
	TokenBlacklistCreatedAt time.Time  `gorm:"column:token_blacklist_created_at;autoCreateTime" json:"token_blacklist_created_at"`
	TokenBlacklistDeletedAt *time.Time `gorm:"column:token_blacklist_deleted_at;index" json:"token_blacklist_deleted_at,omitempty"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (TokenBlacklistModel) TableName() string {
	return "token_blacklist"
}
