package asrama

import (
	"encoding/json"
	"log"
	"os"

	"asramaku_backend/internals/features/dormitory/asramas/model"
	helper "asramaku_backend/internals/helpers"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AsramaSeed struct {
	Name       string   `json:"asrama_name"`
	Address    string   `json:"asrama_address"`
	City       string   `json:"asrama_city"`
	Timezone   string   `json:"asrama_timezone"`
	Facilities []string `json:"asrama_facilities"`
}

func SeedAsramasFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file asrama:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []AsramaSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		var existing model.AsramaModel
		if err := db.Where("asrama_name = ?", data.Name).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Asrama '%s' sudah ada, dilewati.", data.Name)
			continue
		}

		slug, err := helper.EnsureUniqueSlug(db, helper.GenerateSlug(data.Name), "asramas", "asrama_slug")
		if err != nil {
			log.Printf("❌ Gagal membuat slug untuk '%s': %v", data.Name, err)
			continue
		}

		newAsrama := model.AsramaModel{
			AsramaID:       uuid.New(),
			AsramaName:     data.Name,
			AsramaSlug:     slug,
			AsramaTimezone: data.Timezone,
			AsramaIsActive: true,
		}
		if data.Address != "" {
			newAsrama.AsramaAddress = &data.Address
		}
		if data.City != "" {
			newAsrama.AsramaCity = &data.City
		}
		if newAsrama.AsramaTimezone == "" {
			newAsrama.AsramaTimezone = "Asia/Jakarta"
		}
		if len(data.Facilities) > 0 {
			newAsrama.AsramaFacilities = data.Facilities
		}

		if err := db.Create(&newAsrama).Error; err != nil {
			log.Printf("❌ Gagal insert asrama '%s': %v", data.Name, err)
		} else {
			log.Printf("✅ Berhasil insert asrama '%s'", data.Name)
		}
	}
}
