package server

import (
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListComments handles GET /api/comments?postId=N
// @Summary List comments
// @Tags comments
// @Produce json
// @Param postId query int false "Only comments on this post"
// @Success 200 {array} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Router /comments [get]
func (s *Server) ListComments(c *fiber.Ctx) error {
	postID, ok, err := parseOptionalIDQuery(c, "postId")
	if err != nil {
		return nil
	}

	var filter repository.CommentFilter
	if ok {
		filter.PostID = &postID
	}

	comments, err := s.commentService.ListComments(c.UserContext(), filter)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusInternalServerError, "Failed to fetch comments")
	}
	return c.JSON(comments)
}

// GetComment handles GET /api/comments/:id
// @Summary Get comment
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [get]
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusInternalServerError, "Failed to fetch comment")
	}
	return c.JSON(comment)
}

// CreateComment handles POST /api/comments
// @Summary Create comment
// @Description The post is checked before the author.
// @Tags comments
// @Accept json
// @Produce json
// @Param request body service.CreateCommentInput true "New comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req service.CreateCommentInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest, "Failed to create comment")
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateCommentInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), id, req)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest, "Failed to update comment")
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), id); err != nil {
		return respondServiceError(c, err, fiber.StatusInternalServerError, "Failed to delete comment")
	}
	return c.JSON(models.MessageResponse{Message: "Comment deleted successfully"})
}
