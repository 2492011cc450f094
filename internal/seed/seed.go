// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumPosts       int
	CommentsPerMax int
	ShouldClean    bool
}

// Seeder populates the database with fake blog content.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded content. Comments go first so no row is ever
// left pointing at a deleted post.
func (s *Seeder) ClearAll() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("clear comments: %w", err)
	}
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error; err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	log.Println("Cleared existing posts and comments")
	return nil
}

// BuildPost constructs a post without persisting it.
func (s *Seeder) BuildPost(overrides ...func(*models.Post)) *models.Post {
	category := models.Categories[s.rand.Intn(len(models.Categories))]
	post := &models.Post{
		Title:       gofakeit.Sentence(6),
		Subtitle:    gofakeit.Sentence(10),
		Content:     gofakeit.Paragraph(3, 5, 12, "\n\n"),
		Category:    category,
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/1280/720", gofakeit.UUID()),
		IsPublished: s.rand.Intn(4) != 0, // roughly a quarter stay drafts
	}

	// realistic created_at spread across the last 90 days
	daysBack := s.rand.Intn(90)
	hoursBack := s.rand.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// BuildComment constructs a comment for the given post without persisting it.
func (s *Seeder) BuildComment(postID uint, overrides ...func(*models.Comment)) *models.Comment {
	comment := &models.Comment{
		PostID:     postID,
		Name:       gofakeit.Name(),
		Content:    gofakeit.Sentence(12),
		IsApproved: s.rand.Intn(3) != 0, // some stay in the moderation queue
	}
	for _, override := range overrides {
		override(comment)
	}
	return comment
}

// Run seeds posts and a spread of comments per post.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		posts = append(posts, s.BuildPost())
	}
	if err := s.db.Create(&posts).Error; err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}

	var comments []*models.Comment
	for _, post := range posts {
		n := s.rand.Intn(opts.CommentsPerMax + 1)
		for i := 0; i < n; i++ {
			comments = append(comments, s.BuildComment(post.ID))
		}
	}
	if len(comments) > 0 {
		if err := s.db.Create(&comments).Error; err != nil {
			return fmt.Errorf("seed comments: %w", err)
		}
	}

	log.Printf("Seeded %d posts and %d comments", len(posts), len(comments))
	return nil
}
