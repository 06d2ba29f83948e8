// Package seed loads the fixed fixture dataset and random demo data.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"
)

// FixturePassword is the plaintext password of every seeded user.
const FixturePassword = "password123"

// Dataset is everything a seeding run inserted.
type Dataset struct {
	Users    []models.User    `json:"users"`
	Posts    []models.Post    `json:"posts"`
	Comments []models.Comment `json:"comments"`
}

type fixtureUser struct {
	email, name string
}

type fixturePost struct {
	title, content string
	published      bool
	author         int
}

type fixtureComment struct {
	content      string
	post, author int
}

var (
	fixtureUsers = []fixtureUser{
		{"john@example.com", "John Doe"},
		{"jane@example.com", "Jane Smith"},
		{"bob@example.com", "Bob Johnson"},
	}

	fixturePosts = []fixturePost{
		{"First Post", "This is the first test post content.", true, 0},
		{"Second Post", "This is the second test post content.", true, 1},
		{"Draft Post", "This is a draft post that is not published yet.", false, 0},
	}

	fixtureComments = []fixtureComment{
		{"Great post!", 0, 1},
		{"I learned a lot from this.", 0, 2},
		{"Looking forward to more content like this!", 1, 0},
	}
)

// Seeder replaces the store contents with known data.
type Seeder struct {
	uow    repository.UnitOfWork
	hasher service.PasswordHasher
}

// NewSeeder returns a Seeder writing through uow.
func NewSeeder(uow repository.UnitOfWork, hasher service.PasswordHasher) *Seeder {
	return &Seeder{uow: uow, hasher: hasher}
}

// Seed clears the store and inserts the fixture dataset.
func (s *Seeder) Seed(ctx context.Context) (Dataset, error) {
	var ds Dataset
	err := s.uow.Do(ctx, func(r repository.Repositories) error {
		if err := clearAll(ctx, r); err != nil {
			return err
		}

		for _, fu := range fixtureUsers {
			digest, err := s.hasher.Hash(FixturePassword)
			if err != nil {
				return models.NewInternalError(err)
			}
			name := fu.name
			u := models.User{Email: fu.email, Name: &name, Password: digest}
			if err := r.Users.Create(ctx, &u); err != nil {
				return fmt.Errorf("create user %s: %w", fu.email, err)
			}
			ds.Users = append(ds.Users, u)
		}

		for _, fp := range fixturePosts {
			content := fp.content
			p := models.Post{
				Title:     fp.title,
				Content:   &content,
				Published: fp.published,
				AuthorID:  ds.Users[fp.author].ID,
			}
			if err := r.Posts.Create(ctx, &p); err != nil {
				return fmt.Errorf("create post %q: %w", fp.title, err)
			}
			ds.Posts = append(ds.Posts, p)
		}

		for _, fc := range fixtureComments {
			c := models.Comment{
				Content:  fc.content,
				PostID:   ds.Posts[fc.post].ID,
				AuthorID: ds.Users[fc.author].ID,
			}
			if err := r.Comments.Create(ctx, &c); err != nil {
				return fmt.Errorf("create comment %q: %w", fc.content, err)
			}
			ds.Comments = append(ds.Comments, c)
		}
		return nil
	})
	if err != nil {
		return Dataset{}, err
	}

	middleware.Logger.InfoContext(ctx, "database seeded",
		slog.Int("users", len(ds.Users)),
		slog.Int("posts", len(ds.Posts)),
		slog.Int("comments", len(ds.Comments)),
	)
	return ds, nil
}

// Clear deletes every comment, post and user, in that order.
func (s *Seeder) Clear(ctx context.Context) error {
	if err := s.uow.Do(ctx, func(r repository.Repositories) error {
		return clearAll(ctx, r)
	}); err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "database cleared")
	return nil
}

func clearAll(ctx context.Context, r repository.Repositories) error {
	if _, err := r.Comments.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear comments: %w", err)
	}
	if _, err := r.Posts.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	if _, err := r.Users.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}
