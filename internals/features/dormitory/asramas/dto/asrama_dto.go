// file: internals/features/dormitory/asramas/dto/asrama_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"asramaku_backend/internals/features/dormitory/asramas/model"
)

type CreateAsramaRequest struct {
	AsramaName string   `json:"asrama_name" validate:"required,max=100"`
	Address    *string  `json:"asrama_address" validate:"omitempty,max=255"`
	City       *string  `json:"asrama_city" validate:"omitempty,max=100"`
	Timezone   *string  `json:"asrama_timezone" validate:"omitempty,max=50"`
	Facilities []string `json:"asrama_facilities" validate:"omitempty,dive,max=50"`
}

type UpdateAsramaRequest struct {
	AsramaName *string   `json:"asrama_name" validate:"omitempty,max=100"`
	Address    *string   `json:"asrama_address" validate:"omitempty,max=255"`
	City       *string   `json:"asrama_city" validate:"omitempty,max=100"`
	Timezone   *string   `json:"asrama_timezone" validate:"omitempty,max=50"`
	Facilities *[]string `json:"asrama_facilities" validate:"omitempty,dive,max=50"`
	IsActive   *bool     `json:"asrama_is_active"`
}

type AsramaResponse struct {
	AsramaID   uuid.UUID      `json:"asrama_id"`
	AsramaName string         `json:"asrama_name"`
	AsramaSlug string         `json:"asrama_slug"`
	Address    *string        `json:"asrama_address"`
	City       *string        `json:"asrama_city"`
	Timezone   string         `json:"asrama_timezone"`
	Facilities pq.StringArray `json:"asrama_facilities"`
	IsActive   bool           `json:"asrama_is_active"`
	CreatedAt  time.Time      `json:"asrama_created_at"`
}

func NewAsramaResponse(m *model.AsramaModel) *AsramaResponse {
	return &AsramaResponse{
		AsramaID:   m.AsramaID,
		AsramaName: m.AsramaName,
		AsramaSlug: m.AsramaSlug,
		Address:    m.AsramaAddress,
		City:       m.AsramaCity,
		Timezone:   m.AsramaTimezone,
		Facilities: m.AsramaFacilities,
		IsActive:   m.AsramaIsActive,
		CreatedAt:  m.AsramaCreatedAt,
	}
}

// BuildingItem = agregat nomor gedung dari data penghuni (asrama tidak
// menyimpan master gedung terpisah)
type BuildingItem struct {
	BuildingNumber string `json:"building_number"`
	TotalStudents  int    `json:"total_students"`
}
