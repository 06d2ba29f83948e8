package service

import (
	"context"
	"log/slog"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
	"quill/internal/validation"
)

// UserService owns user accounts and the cascade that removes a user's content.
type UserService struct {
	repos  repository.Repositories
	uow    repository.UnitOfWork
	hasher PasswordHasher
}

// CreateUserInput is the payload of a user registration.
type CreateUserInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     *string `json:"name"`
	Password string  `json:"password" validate:"password"`
}

// UpdateUserInput carries a partial user update. Absent or empty fields are
// left untouched; a new password is re-hashed.
type UpdateUserInput struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name"`
	Password *string `json:"password" validate:"omitempty,password"`
}

// withoutEmpty drops fields pointing at "" so validation only sees values
// that will be written.
func (in UpdateUserInput) withoutEmpty() UpdateUserInput {
	for _, f := range []**string{&in.Email, &in.Name, &in.Password} {
		if *f != nil && **f == "" {
			*f = nil
		}
	}
	return in
}

// CascadeResult counts the rows removed by DeleteUser.
type CascadeResult struct {
	AuthoredComments int64
	CommentsOnPosts  int64
	Posts            int64
}

func NewUserService(repos repository.Repositories, uow repository.UnitOfWork, hasher PasswordHasher) *UserService {
	return &UserService{repos: repos, uow: uow, hasher: hasher}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repos.Users.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.repos.Users.GetByID(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (_ *models.User, err error) {
	ctx, done := instrument(ctx, "user", "create")
	defer done(&err)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	// The unique index is authoritative; this lookup only saves a bcrypt round.
	existing, err := s.repos.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrEmailExists
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{Email: in.Email, Name: in.Name, Password: digest}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (_ *models.User, err error) {
	ctx, done := instrument(ctx, "user", "update")
	defer done(&err)

	if _, err := s.repos.Users.GetByID(ctx, id); err != nil {
		return nil, err
	}
	in = in.withoutEmpty()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Email != nil {
		other, err := s.repos.Users.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, models.ErrEmailExists
		}
		fields["email"] = *in.Email
	}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Password != nil {
		digest, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		fields["password"] = digest
	}

	return s.repos.Users.Update(ctx, id, fields)
}

// DeleteUser removes the user's comments, every comment on the user's posts,
// the posts, and finally the user. In transactional mode the steps commit
// together; in sequential mode a failure leaves earlier steps applied.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (_ CascadeResult, err error) {
	ctx, done := instrument(ctx, "user", "delete")
	defer done(&err)

	var res CascadeResult
	err = s.uow.Do(ctx, func(r repository.Repositories) error {
		if _, err := r.Users.GetByID(ctx, id); err != nil {
			return err
		}

		n, err := r.Comments.DeleteByAuthor(ctx, id)
		if err != nil {
			return err
		}
		res.AuthoredComments = n

		postIDs, err := r.Posts.IDsByAuthor(ctx, id)
		if err != nil {
			return err
		}
		if res.CommentsOnPosts, err = r.Comments.DeleteByPostIDs(ctx, postIDs); err != nil {
			return err
		}

		if res.Posts, err = r.Posts.DeleteByAuthor(ctx, id); err != nil {
			return err
		}
		return r.Users.Delete(ctx, id)
	})
	if err != nil {
		if !models.IsNotFound(err, "") {
			middleware.Logger.ErrorContext(ctx, "user cascade failed",
				slog.Uint64("user_id", uint64(id)),
				slog.Bool("atomic", s.uow.Atomic()),
				slog.String("error", err.Error()),
			)
		}
		return CascadeResult{}, err
	}

	observability.CascadeDeletedRows.WithLabelValues("comments").Add(float64(res.AuthoredComments + res.CommentsOnPosts))
	observability.CascadeDeletedRows.WithLabelValues("posts").Add(float64(res.Posts))
	observability.CascadeDeletedRows.WithLabelValues("users").Inc()
	middleware.Logger.InfoContext(ctx, "user deleted",
		slog.Uint64("user_id", uint64(id)),
		slog.Int64("authored_comments", res.AuthoredComments),
		slog.Int64("comments_on_posts", res.CommentsOnPosts),
		slog.Int64("posts", res.Posts),
	)
	return res, nil
}
