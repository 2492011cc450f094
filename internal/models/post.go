// Package models contains the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Blog categories accepted by the platform.
const (
	CategoryTechnology = "Technology"
	CategoryStartup    = "Startup"
	CategoryLifestyle  = "Lifestyle"
	CategoryFinance    = "Finance"
)

// Categories is the fixed set of valid blog categories.
var Categories = []string{
	CategoryTechnology,
	CategoryStartup,
	CategoryLifestyle,
	CategoryFinance,
}

// ValidCategory reports whether c is one of the accepted categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Post is a blog article. Unpublished posts are only reachable through the
// admin listing and by direct id lookup.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Category    string    `gorm:"not null;index" json:"category"`
	ImageURL    string    `gorm:"not null" json:"image_url"`
	IsPublished bool      `gorm:"not null;default:false;index" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeSave keeps UpdatedAt monotonic when the wall clock jumps backwards.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}
	return nil
}
