package models

import "time"

const (
	PageAbout   = "about"
	PageGallery = "gallery"
	PageMenu    = "menu"
	PageTeam    = "team"
)

// Page is a content page rendered by the site (about, gallery, menu, team).
// The attached records below belong to one page and are returned in their
// configured order.
type Page struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PageType  string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"page_type"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	GalleryImages []GalleryImage `gorm:"foreignKey:PageID" json:"gallery_images,omitempty"`
	MenuItems     []MenuItem     `gorm:"foreignKey:PageID" json:"menu_items,omitempty"`
	TeamMembers   []TeamMember   `gorm:"foreignKey:PageID" json:"team_members,omitempty"`
}

type GalleryImage struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PageID      uint   `gorm:"not null;index" json:"page_id"`
	Image       string `gorm:"type:varchar(500);not null" json:"image"`
	Title       string `gorm:"type:varchar(200)" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	SortOrder   int    `gorm:"not null;default:0" json:"sort_order"`
}

type MenuItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	PageID      uint    `gorm:"not null;index" json:"page_id"`
	Name        string  `gorm:"type:varchar(200);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string  `gorm:"type:varchar(500)" json:"image"`
	Category    string  `gorm:"type:varchar(100)" json:"category"`
	IsSpecial   bool    `gorm:"not null;default:false" json:"is_special"`
	SortOrder   int     `gorm:"not null;default:0" json:"sort_order"`
}

type TeamMember struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	PageID    uint   `gorm:"not null;index" json:"page_id"`
	Name      string `gorm:"type:varchar(200);not null" json:"name"`
	Position  string `gorm:"type:varchar(200)" json:"position"`
	Bio       string `gorm:"type:text" json:"bio"`
	Photo     string `gorm:"type:varchar(500)" json:"photo"`
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
}
