package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"
)

type PostService struct {
	repos repository.Repositories
	uow   repository.UnitOfWork
}

type CreatePostInput struct {
	Title     string  `json:"title" validate:"notblank"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
	AuthorID  uint    `json:"authorId"`
}

type UpdatePostInput struct {
	Title     *string `json:"title" validate:"omitnil,notblank"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
	// ClearContent sets content to NULL; the body carried "content": null.
	ClearContent bool `json:"-"`
}

func NewPostService(repos repository.Repositories, uow repository.UnitOfWork) *PostService {
	return &PostService{repos: repos, uow: uow}
}

func (s *PostService) ListPosts(ctx context.Context, filter repository.PostFilter) ([]models.Post, error) {
	return s.repos.Posts.List(ctx, filter)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.PostDetail, error) {
	return s.repos.Posts.GetDetail(ctx, id)
}

// CreatePost checks the author before anything else, so a missing author is
// reported even when the rest of the input is invalid.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (_ *models.Post, err error) {
	ctx, done := instrument(ctx, "post", "create")
	defer done(&err)

	if _, err := s.repos.Users.GetByID(ctx, in.AuthorID); err != nil {
		return nil, renameNotFound(err, "User", "Author", in.AuthorID)
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: in.AuthorID,
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
	if err := s.repos.Posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, id uint, in UpdatePostInput) (_ *models.Post, err error) {
	ctx, done := instrument(ctx, "post", "update")
	defer done(&err)

	if _, err := s.repos.Posts.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	switch {
	case in.Content != nil:
		fields["content"] = *in.Content
	case in.ClearContent:
		fields["content"] = nil
	}
	if in.Published != nil {
		fields["published"] = *in.Published
	}
	return s.repos.Posts.Update(ctx, id, fields)
}

// DeletePost removes the post together with its comments.
func (s *PostService) DeletePost(ctx context.Context, id uint) (err error) {
	ctx, done := instrument(ctx, "post", "delete")
	defer done(&err)

	return s.uow.Do(ctx, func(r repository.Repositories) error {
		if _, err := r.Posts.GetByID(ctx, id); err != nil {
			return err
		}
		if _, err := r.Comments.DeleteByPostIDs(ctx, []uint{id}); err != nil {
			return err
		}
		return r.Posts.Delete(ctx, id)
	})
}
