package database

import (
	"gorm.io/gorm"

	"github.com/roman-z-solik/table-booking/models"
	"github.com/roman-z-solik/table-booking/utils"
)

// SeedDefaults fills an empty database with the default content pages and
// table set so a fresh install is bookable immediately. Existing data is
// never touched.
func SeedDefaults(db *gorm.DB) error {
	if err := seedPages(db); err != nil {
		return err
	}
	return seedTables(db)
}

func seedPages(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Page{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	pages := []models.Page{
		{PageType: models.PageAbout, Title: "About us", Content: "Our story.", IsActive: true, SortOrder: 1},
		{PageType: models.PageMenu, Title: "Menu", Content: "What we serve.", IsActive: true, SortOrder: 2},
		{PageType: models.PageGallery, Title: "Gallery", Content: "A look inside.", IsActive: true, SortOrder: 3},
		{PageType: models.PageTeam, Title: "Our team", Content: "The people behind the kitchen.", IsActive: true, SortOrder: 4},
	}
	if err := db.Create(&pages).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded %d default pages", len(pages))
	return nil
}

func seedTables(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Table{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	capacities := []int{2, 2, 4, 4, 6, 6, 8}
	tables := make([]models.Table, 0, len(capacities)+1)
	for i, capacity := range capacities {
		tables = append(tables, models.Table{
			Number:   i + 1,
			Capacity: capacity,
			IsActive: true,
		})
	}
	tables = append(tables, models.Table{
		Number:      len(capacities) + 1,
		Capacity:    8,
		IsVIP:       true,
		IsActive:    true,
		Description: "VIP room",
	})

	if err := db.Create(&tables).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded %d default tables", len(tables))
	return nil
}
