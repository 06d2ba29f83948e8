package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

type userRepoStub struct {
	listFn       func(ctx context.Context) ([]models.User, error)
	getByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	createFn     func(ctx context.Context, user *models.User) error
	updateFn     func(ctx context.Context, id uint, fields map[string]any) (*models.User, error)
	deleteFn     func(ctx context.Context, id uint) error
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		listFn: func(context.Context) ([]models.User, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		updateFn: func(_ context.Context, id uint, _ map[string]any) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) { return s.listFn(ctx) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, id uint, fields map[string]any) (*models.User, error) {
	return s.updateFn(ctx, id, fields)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *userRepoStub) DeleteAll(context.Context) (int64, error) { return 0, nil }

type postRepoStub struct {
	repository.PostRepository
	getByIDFn        func(ctx context.Context, id uint) (*models.Post, error)
	createFn         func(ctx context.Context, post *models.Post) error
	updateFn         func(ctx context.Context, id uint, fields map[string]any) (*models.Post, error)
	idsByAuthorFn    func(ctx context.Context, authorID uint) ([]uint, error)
	deleteByAuthorFn func(ctx context.Context, authorID uint) (int64, error)
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Update(ctx context.Context, id uint, fields map[string]any) (*models.Post, error) {
	return s.updateFn(ctx, id, fields)
}
func (s *postRepoStub) IDsByAuthor(ctx context.Context, authorID uint) ([]uint, error) {
	return s.idsByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) DeleteByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.deleteByAuthorFn(ctx, authorID)
}

type commentRepoStub struct {
	repository.CommentRepository
	createFn          func(ctx context.Context, comment *models.Comment) error
	deleteByAuthorFn  func(ctx context.Context, authorID uint) (int64, error)
	deleteByPostIDsFn func(ctx context.Context, postIDs []uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) DeleteByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.deleteByAuthorFn(ctx, authorID)
}
func (s *commentRepoStub) DeleteByPostIDs(ctx context.Context, postIDs []uint) (int64, error) {
	return s.deleteByPostIDsFn(ctx, postIDs)
}

// plainHasher skips bcrypt so tests stay fast.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (plainHasher) Verify(digest, plain string) bool  { return digest == "hashed:"+plain }
