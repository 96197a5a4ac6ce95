// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Nama locals mengikuti yg di-set di middleware auth
const (
	LocAsramaTimezone = "asrama_timezone" // string, misal "Asia/Jakarta"
	LocAsramaLoc      = "asrama_loc"      // *time.Location
)

// Ambil *time.Location berdasarkan token:
// 1) Prioritas: c.Locals("asrama_loc") yang diisi middleware
// 2) Kalau belum ada: coba baca "asrama_timezone" (string) lalu LoadLocation
// 3) Fallback: Asia/Jakarta
// 4) Fallback terakhir: time.UTC
func GetAsramaLocation(c *fiber.Ctx) *time.Location {
	if c == nil {
		return time.UTC
	}

	if v := c.Locals(LocAsramaLoc); v != nil {
		if loc, ok := v.(*time.Location); ok && loc != nil {
			return loc
		}
	}

	if v := c.Locals(LocAsramaTimezone); v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			s = strings.TrimSpace(s)
			if loc, err := time.LoadLocation(s); err == nil {
				// cache ke locals biar next call lebih murah
				c.Locals(LocAsramaLoc, loc)
				return loc
			}
		}
	}

	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		c.Locals(LocAsramaLoc, loc)
		return loc
	}

	return time.UTC
}

// ToAsramaTime mengonversi waktu (biasanya dari DB = UTC) ke timezone asrama.
// Kalau t.IsZero() → dikembalikan apa adanya.
func ToAsramaTime(c *fiber.Ctx, t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	loc := GetAsramaLocation(c)
	if loc == nil {
		return t
	}
	return t.In(loc)
}

// Versi pointer, biar gampang dipakai di DTO yg pakai *time.Time
func ToAsramaTimePtr(c *fiber.Ctx, t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ToAsramaTime(c, *t)
	return &v
}

// Helper kecil untuk "sekarang di timezone asrama"
func NowInAsrama(c *fiber.Ctx) time.Time {
	return time.Now().In(GetAsramaLocation(c))
}

// Signature ini yang dipakai di controller:
// now, err := dbtime.GetDBTime(c)
func GetDBTime(c *fiber.Ctx) (time.Time, error) {
	return NowInAsrama(c), nil
}

// DateOnly menormalkan timestamp ke tengah malam UTC (kolom DATE).
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
