package server

import (
	"savora/internal/models"
	"savora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title           string   `json:"title"`
		Image           string   `json:"image"`
		Ingredients     []string `json:"ingredients"`
		Categories      []string `json:"categories"`
		Description     string   `json:"description"`
		Servings        string   `json:"servings"`
		Instructions    []string `json:"instructions"`
		PreparationTime string   `json:"preparation_time"`
		CookingTime     string   `json:"cooking_time"`
		VideoLink       string   `json:"video_link"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:          currentUserID(c),
		Title:           req.Title,
		Image:           req.Image,
		Ingredients:     req.Ingredients,
		Categories:      req.Categories,
		Description:     req.Description,
		Servings:        req.Servings,
		Instructions:    req.Instructions,
		PreparationTime: req.PreparationTime,
		CookingTime:     req.CookingTime,
		VideoLink:       req.VideoLink,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), id, currentUserID(c)); err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ToggleLike handles POST /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.postService.ToggleLike(c.Context(), id, currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{"likes": likes})
}

// CreateComment handles POST /api/posts/:id/comment
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CommentOnPost(c.Context(), id, currentUserID(c), req.Text)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	posts, err := s.feedService.GlobalFeed(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(posts)
}

// GetFollowingFeed handles GET /api/posts/following
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	posts, err := s.feedService.FollowingFeed(c.Context(), currentUserID(c), page.Limit, page.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(posts)
}

// GetUserFeed handles GET /api/posts/user/:username
func (s *Server) GetUserFeed(c *fiber.Ctx) error {
	username := c.Params("username")
	page := parsePagination(c, 20)

	posts, err := s.feedService.UserFeed(c.Context(), username, page.Limit, page.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(posts)
}

// GetLikedFeed handles GET /api/posts/liked/:userId
func (s *Server) GetLikedFeed(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	posts, err := s.feedService.LikedFeed(c.Context(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(posts)
}
