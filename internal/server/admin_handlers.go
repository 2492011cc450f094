package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Login handles POST /api/admin/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	token, err := s.authService.Login(req.Email, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}

// GetAllBlogs handles GET /api/admin/blogs. Drafts are included.
func (s *Server) GetAllBlogs(c *fiber.Ctx) error {
	posts, err := s.postService.ListAll(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetAllComments handles GET /api/admin/comments. An optional ?approved=
// query narrows the moderation queue to approved or pending comments.
func (s *Server) GetAllComments(c *fiber.Ctx) error {
	var approved *bool
	switch c.Query("approved") {
	case "true":
		v := true
		approved = &v
	case "false":
		v := false
		approved = &v
	case "":
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid approved filter"))
	}

	comments, err := s.commentService.ListForAdmin(c.UserContext(), approved)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// ApproveComment handles POST /api/admin/comments/:id/approve
func (s *Server) ApproveComment(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	comment, err := s.commentService.ApproveComment(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/admin/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// GetDashboard handles GET /api/admin/dashboard
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	summary, err := s.dashboardService.Summarize(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(summary)
}
