package repository

import (
	"context"

	"quill/internal/cache"

	"gorm.io/gorm"
)

// Repositories bundles the repositories that share one database handle.
type Repositories struct {
	Users    UserRepository
	Posts    PostRepository
	Comments CommentRepository
}

// NewRepositories builds every repository over db. c may be nil.
func NewRepositories(db *gorm.DB, c *cache.Cache) Repositories {
	return Repositories{
		Users:    NewUserRepository(db, c),
		Posts:    NewPostRepository(db),
		Comments: NewCommentRepository(db),
	}
}

// UnitOfWork runs a multi-step write. Implementations decide whether the
// steps commit together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
	// Atomic reports whether a failing step rolls back the earlier ones.
	Atomic() bool
}

type txUnitOfWork struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewTxUnitOfWork runs fn inside a database transaction; any returned error
// rolls back every step.
func NewTxUnitOfWork(db *gorm.DB, c *cache.Cache) UnitOfWork {
	return &txUnitOfWork{db: db, cache: c}
}

// evictions records the user cache entries dropped inside a transaction. A
// concurrent reader can refill an entry from the still-visible row before
// commit, so they are dropped again once the transaction commits.
type evictions struct {
	users []uint
	flush bool
}

func (e *evictions) replay(ctx context.Context, c *cache.Cache) {
	if e.flush {
		c.Flush(ctx)
		return
	}
	c.InvalidateUsers(ctx, e.users)
}

func (u *txUnitOfWork) Do(ctx context.Context, fn func(repos Repositories) error) error {
	pending := &evictions{}
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := NewRepositories(tx, u.cache)
		repos.Users = &userRepository{db: tx, cache: u.cache, pending: pending}
		return fn(repos)
	})
	if err != nil {
		return err
	}
	pending.replay(ctx, u.cache)
	return nil
}

func (u *txUnitOfWork) Atomic() bool { return true }

type sequentialUnitOfWork struct {
	repos Repositories
}

// NewSequentialUnitOfWork runs fn directly on repos. Steps that completed
// before a failure stay committed.
func NewSequentialUnitOfWork(repos Repositories) UnitOfWork {
	return &sequentialUnitOfWork{repos: repos}
}

func (u *sequentialUnitOfWork) Do(_ context.Context, fn func(repos Repositories) error) error {
	return fn(u.repos)
}

func (u *sequentialUnitOfWork) Atomic() bool { return false }
