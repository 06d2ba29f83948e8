package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"
)

type CommentService struct {
	repos repository.Repositories
}

type CreateCommentInput struct {
	Content  string `json:"content" validate:"notblank"`
	PostID   uint   `json:"postId"`
	AuthorID uint   `json:"authorId"`
}

type UpdateCommentInput struct {
	Content *string `json:"content" validate:"omitnil,notblank"`
}

func NewCommentService(repos repository.Repositories) *CommentService {
	return &CommentService{repos: repos}
}

func (s *CommentService) ListComments(ctx context.Context, filter repository.CommentFilter) ([]models.Comment, error) {
	return s.repos.Comments.List(ctx, filter)
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.repos.Comments.GetByID(ctx, id)
}

// CreateComment checks the post, then the author; the first missing
// reference is reported.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (_ *models.Comment, err error) {
	ctx, done := instrument(ctx, "comment", "create")
	defer done(&err)

	if _, err := s.repos.Posts.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	if _, err := s.repos.Users.GetByID(ctx, in.AuthorID); err != nil {
		return nil, renameNotFound(err, "User", "Author", in.AuthorID)
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  in.Content,
		PostID:   in.PostID,
		AuthorID: in.AuthorID,
	}
	if err := s.repos.Comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, id uint, in UpdateCommentInput) (_ *models.Comment, err error) {
	ctx, done := instrument(ctx, "comment", "update")
	defer done(&err)

	if _, err := s.repos.Comments.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Content != nil {
		fields["content"] = *in.Content
	}
	return s.repos.Comments.Update(ctx, id, fields)
}

func (s *CommentService) DeleteComment(ctx context.Context, id uint) (err error) {
	ctx, done := instrument(ctx, "comment", "delete")
	defer done(&err)

	return s.repos.Comments.Delete(ctx, id)
}
