package models

import "time"

// Comment is reader feedback attached to a post. Comments are created
// unapproved and only appear in the public feed once moderated.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	Name       string    `gorm:"not null" json:"name"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsApproved bool      `gorm:"not null;default:false;index" json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// PostTitle is resolved at query time for the admin listing; it is not a
	// column. A deleted parent is rendered as "Deleted Blog".
	PostTitle string `gorm:"->;-:migration" json:"post_title,omitempty"`
}

// DeletedPostTitle is the placeholder shown in the admin comment listing when
// the parent post no longer exists.
const DeletedPostTitle = "Deleted Blog"
