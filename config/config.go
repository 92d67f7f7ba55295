package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Restaurant holds the process-wide restaurant settings. It is loaded once
// from the environment and passed explicitly into the availability engine,
// so tests can vary operating hours and limits per case.
type Restaurant struct {
	Name         string
	Description  string
	ContactEmail string
	ContactPhone string
	Address      string

	OpenTime  string // "HH:MM"
	CloseTime string // "HH:MM"

	MaxDurationHours    int
	MaxBookingDaysAhead int
	MaxTableCapacity    int
	MinLead             time.Duration
}

func Load() Restaurant {
	return Restaurant{
		Name:         envOr("RESTAURANT_NAME", "La Tavola"),
		Description:  envOr("RESTAURANT_DESCRIPTION", "Family restaurant in the city center"),
		ContactEmail: envOr("CONTACT_EMAIL", "info@latavola.example"),
		ContactPhone: envOr("CONTACT_PHONE", "+1 555 0100"),
		Address:      envOr("ADDRESS", "1 Main Street"),

		OpenTime:  envOr("OPEN_TIME", "10:00"),
		CloseTime: envOr("CLOSE_TIME", "22:00"),

		MaxDurationHours:    envIntOr("MAX_BOOKING_DURATION_HOURS", 4),
		MaxBookingDaysAhead: envIntOr("MAX_BOOKING_DAYS_AHEAD", 30),
		MaxTableCapacity:    envIntOr("MAX_TABLE_CAPACITY", 12),
		MinLead:             time.Duration(envIntOr("MIN_BOOKING_LEAD_MINUTES", 60)) * time.Minute,
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// InitDB opens the MySQL connection described by the environment.
func InitDB() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			envOr("DB_USER", "root"),
			os.Getenv("DB_PASSWORD"),
			envOr("DB_HOST", "127.0.0.1"),
			envOr("DB_PORT", "3306"),
			envOr("DB_NAME", "table_booking"),
		)
	}
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}
