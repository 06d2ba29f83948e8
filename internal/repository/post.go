package repository

import (
	"context"

	"quill/internal/models"

	"gorm.io/gorm"
)

// PostFilter narrows List. A nil Published matches every post.
type PostFilter struct {
	Published *bool
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	List(ctx context.Context, filter PostFilter) ([]models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetDetail(ctx context.Context, id uint) (*models.PostDetail, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id uint, fields map[string]any) (*models.Post, error)
	Delete(ctx context.Context, id uint) error
	IDsByAuthor(ctx context.Context, authorID uint) ([]uint, error)
	DeleteByAuthor(ctx context.Context, authorID uint) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	query := r.db.WithContext(ctx).Preload("Author")
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}

	var posts []models.Post
	if err := query.Order("id ASC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, notFoundOr(err, "Post", id)
	}
	return &post, nil
}

func (r *postRepository) GetDetail(ctx context.Context, id uint) (*models.PostDetail, error) {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments := []models.Comment{}
	if err := r.db.WithContext(ctx).Where("post_id = ?", id).Order("id ASC").Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.PostDetail{Post: *post, Comments: comments}, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Author").Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Preload("Author").First(post, post.ID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, id uint, fields map[string]any) (*models.Post, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, models.NewNotFoundError("Post", id)
		}
	}
	return r.GetByID(ctx, id)
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

func (r *postRepository) IDsByAuthor(ctx context.Context, authorID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Pluck("id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *postRepository) DeleteByAuthor(ctx context.Context, authorID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("author_id = ?", authorID).Delete(&models.Post{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *postRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
