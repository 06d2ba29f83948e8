package seed

import (
	"context"
	"fmt"
	"log/slog"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory inserts random users, posts and comments for demos and load tests.
type Factory struct {
	uow    repository.UnitOfWork
	hasher service.PasswordHasher
	faker  *gofakeit.Faker
	// MaxCommentsPerPost bounds the comments attached to each random post.
	MaxCommentsPerPost int
}

// NewFactory returns a Factory. A zero seed picks a random one.
func NewFactory(uow repository.UnitOfWork, hasher service.PasswordHasher, seed int64) *Factory {
	return &Factory{
		uow:                uow,
		hasher:             hasher,
		faker:              gofakeit.New(seed),
		MaxCommentsPerPost: 3,
	}
}

// Random appends numUsers users and numPosts posts to the store. Posts and
// comments are spread over the new users. Every user gets FixturePassword.
func (f *Factory) Random(ctx context.Context, numUsers, numPosts int) (Dataset, error) {
	if numUsers <= 0 {
		if numPosts > 0 {
			return Dataset{}, models.NewValidationError("random posts need at least one random user")
		}
		return Dataset{}, nil
	}

	// one digest for the whole batch; bcrypt dominates otherwise
	digest, err := f.hasher.Hash(FixturePassword)
	if err != nil {
		return Dataset{}, models.NewInternalError(err)
	}

	var ds Dataset
	err = f.uow.Do(ctx, func(r repository.Repositories) error {
		for i := 0; i < numUsers; i++ {
			u := f.buildUser(i, digest)
			if err := r.Users.Create(ctx, &u); err != nil {
				return fmt.Errorf("create random user: %w", err)
			}
			ds.Users = append(ds.Users, u)
		}

		for i := 0; i < numPosts; i++ {
			author := ds.Users[f.faker.Number(0, len(ds.Users)-1)]
			p := f.buildPost(author.ID)
			if err := r.Posts.Create(ctx, &p); err != nil {
				return fmt.Errorf("create random post: %w", err)
			}
			ds.Posts = append(ds.Posts, p)

			for j := f.faker.Number(0, f.MaxCommentsPerPost); j > 0; j-- {
				commenter := ds.Users[f.faker.Number(0, len(ds.Users)-1)]
				c := models.Comment{
					Content:  f.faker.Sentence(f.faker.Number(3, 12)),
					PostID:   p.ID,
					AuthorID: commenter.ID,
				}
				if err := r.Comments.Create(ctx, &c); err != nil {
					return fmt.Errorf("create random comment: %w", err)
				}
				ds.Comments = append(ds.Comments, c)
			}
		}
		return nil
	})
	if err != nil {
		return Dataset{}, err
	}

	middleware.Logger.InfoContext(ctx, "random data seeded",
		slog.Int("users", len(ds.Users)),
		slog.Int("posts", len(ds.Posts)),
		slog.Int("comments", len(ds.Comments)),
	)
	return ds, nil
}

func (f *Factory) buildUser(i int, digest string) models.User {
	name := f.faker.Name()
	return models.User{
		// the index keeps addresses unique even when the faker repeats itself
		Email:    fmt.Sprintf("%s.%d@%s", f.faker.Username(), i, f.faker.DomainName()),
		Name:     &name,
		Password: digest,
	}
}

func (f *Factory) buildPost(authorID uint) models.Post {
	content := f.faker.Paragraph(1, 3, 12, "\n\n")
	return models.Post{
		Title:     f.faker.Sentence(f.faker.Number(3, 8)),
		Content:   &content,
		Published: f.faker.Number(0, 3) > 0,
		AuthorID:  authorID,
	}
}
