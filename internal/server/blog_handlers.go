package server

import (
	"encoding/json"
	"io"
	"log/slog"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateBlog handles POST /api/blogs. The request is multipart: a "blog"
// field carrying the post JSON and an "image" file for the cover.
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Title       string `json:"title"`
		Subtitle    string `json:"subtitle"`
		Content     string `json:"content"`
		Category    string `json:"category"`
		IsPublished bool   `json:"is_published"`
	}
	blogField := c.FormValue("blog")
	if blogField == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := json.Unmarshal([]byte(blogField), &req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	input := service.CreatePostInput{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Content:     req.Content,
		Category:    req.Category,
		IsPublished: req.IsPublished,
	}

	// Validate before the upload so a bad request never leaves an orphaned
	// image behind at the CDN.
	_, fileErr := c.FormFile("image")
	if err := service.ValidateCreatePostInput(input, fileErr == nil); err != nil {
		return respondServiceError(c, err)
	}

	imageURL, err := s.storeCoverImage(c)
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return respondServiceError(c, err)
	}
	input.ImageURL = imageURL

	post, err := s.postService.CreatePost(ctx, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// storeCoverImage reads the uploaded "image" file and pushes it through the
// image pipeline. Callers validate presence first; a missing file here
// returns "" rather than an error.
func (s *Server) storeCoverImage(c *fiber.Ctx) (string, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	if s.uploader == nil {
		return "", models.NewMisconfiguredError("Image uploads are not configured")
	}

	file, err := header.Open()
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid image upload"))
		return "", errResponseWritten
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid image upload"))
		return "", errResponseWritten
	}

	url, err := s.uploader.Store(c.UserContext(), data, header.Filename)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "image upload failed",
			slog.String("file", header.Filename), slog.String("error", err.Error()))
		return "", models.NewDependencyError("image service", err)
	}
	return url, nil
}

// GetPublishedBlogs handles GET /api/blogs
func (s *Server) GetPublishedBlogs(c *fiber.Ctx) error {
	posts, err := s.postService.ListPublished(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetBlog handles GET /api/blogs/:id. Drafts are returned too so the editor
// can preview unpublished work.
func (s *Server) GetBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// TogglePublish handles POST /api/blogs/:id/toggle-publish
func (s *Server) TogglePublish(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.TogglePublish(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeleteBlog handles DELETE /api/blogs/:id. The post's comments go with it.
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Blog deleted"})
}

// GenerateContent handles POST /api/generate
func (s *Server) GenerateContent(c *fiber.Ctx) error {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Prompt == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewMissingFieldsError("prompt"))
	}

	if s.generator == nil {
		return respondServiceError(c,
			models.NewMisconfiguredError("Content generation is not configured"))
	}

	content, err := s.generator.Generate(c.UserContext(), req.Prompt)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "content generation failed",
			slog.String("error", err.Error()))
		return respondServiceError(c, models.NewDependencyError("generation service", err))
	}

	return c.JSON(fiber.Map{"content": content})
}
