// Package service implements the entity store for users, posts and comments.
package service

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// instrument opens a span for a store operation. The returned func must be
// deferred with a pointer to the operation's named error.
func instrument(ctx context.Context, entity, op string) (context.Context, func(*error)) {
	ctx, end := observability.StartSpan(ctx, entity+"."+op,
		attribute.String("store.entity", entity),
		attribute.String("store.operation", op),
	)
	return ctx, func(errp *error) {
		var err error
		if errp != nil {
			err = *errp
		}
		outcome := outcomeOf(err)
		if outcome == "error" {
			end(err)
		} else {
			end(nil)
		}
		observability.RecordStoreOperation(entity, op, outcome)
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			return "not_found"
		case models.CodeConflict:
			return "conflict"
		case models.CodeValidation:
			return "invalid"
		}
	}
	return "error"
}

// renameNotFound turns a NOT_FOUND for resource into one for alias, keeping
// the id. Used where a user is referenced as an author.
func renameNotFound(err error, resource, alias string, id uint) error {
	if models.IsNotFound(err, resource) {
		return models.NewNotFoundError(alias, id)
	}
	return err
}
